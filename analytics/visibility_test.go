package analytics

import (
	"testing"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyLogs(days, views int) []*models.CourtVisibilityLog {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	logs := make([]*models.CourtVisibilityLog, days)
	for i := range logs {
		logs[i] = &models.CourtVisibilityLog{
			CourtID:        "c1",
			Date:           start.AddDate(0, 0, i),
			Views:          views,
			UniqueVisitors: views / 2,
		}
	}
	return logs
}

func TestSummarize_ThirtyOneDays(t *testing.T) {
	court := &models.Court{ID: "c1", Name: "Campus Central Court", SponsorVisibility: 2500}

	summary := Summarize(court, dailyLogs(31, 100))

	assert.Equal(t, 3100, summary.TotalViews)
	assert.Equal(t, 100, summary.AvgDailyViews)
	assert.Equal(t, 1550, summary.TotalUniqueVisitors)
	assert.Equal(t, 31, summary.DaysLogged)
	assert.Equal(t, 50, summary.VisibilityScore)
	assert.Len(t, summary.RecentActivity, RecentActivityDays)
}

func TestSummarize_RecentActivityIsNewestFirstRegardlessOfInputOrder(t *testing.T) {
	logs := dailyLogs(10, 10)
	// перемешиваем порядок вставки
	logs[0], logs[9] = logs[9], logs[0]
	logs[3], logs[5] = logs[5], logs[3]

	summary := Summarize(&models.Court{ID: "c1"}, logs)

	require.Len(t, summary.RecentActivity, 7)
	want := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	for i, l := range summary.RecentActivity {
		assert.True(t, l.Date.Equal(want.AddDate(0, 0, -i)), "position %d has date %s", i, l.Date)
	}
}

func TestSummarize_NoLogs(t *testing.T) {
	summary := Summarize(&models.Court{ID: "c1", SponsorVisibility: 100}, nil)

	assert.Zero(t, summary.TotalViews)
	assert.Zero(t, summary.AvgDailyViews)
	assert.Zero(t, summary.DaysLogged)
	assert.NotNil(t, summary.RecentActivity)
	assert.Empty(t, summary.RecentActivity)
	assert.Equal(t, 2, summary.VisibilityScore)
}

func TestSummarize_RoundsAverage(t *testing.T) {
	logs := []*models.CourtVisibilityLog{
		{Date: time.Now(), Views: 10},
		{Date: time.Now().AddDate(0, 0, -1), Views: 11},
	}
	assert.Equal(t, 11, Summarize(nil, logs).AvgDailyViews)
}

func TestVisibilityScore(t *testing.T) {
	cases := map[int]int{
		-10:   0,
		0:     0,
		1250:  25,
		2500:  50,
		5000:  100,
		10000: 100,
	}
	for input, want := range cases {
		assert.Equalf(t, want, VisibilityScore(input), "sponsorVisibility=%d", input)
	}
}

func TestOverview(t *testing.T) {
	overview := Overview([]VisibilitySummary{
		{CourtID: "a", VisibilityScore: 20, TotalViews: 100, TotalUniqueVisitors: 50},
		{CourtID: "b", VisibilityScore: 90, TotalViews: 300, TotalUniqueVisitors: 120},
		{CourtID: "c", VisibilityScore: 20, TotalViews: 400, TotalUniqueVisitors: 10},
	})

	require.Len(t, overview.Courts, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{overview.Courts[0].CourtID, overview.Courts[1].CourtID, overview.Courts[2].CourtID})
	assert.Equal(t, 800, overview.TotalViews)
	assert.Equal(t, 180, overview.TotalUniqueVisitors)
	assert.Equal(t, 43, overview.AvgVisibilityScore)

	empty := Overview(nil)
	assert.Empty(t, empty.Courts)
	assert.Zero(t, empty.AvgVisibilityScore)
}
