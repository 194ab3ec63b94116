// Package analytics rolls court visibility logs up into sponsor-facing metrics.
package analytics

import (
	"math"
	"sort"

	"github.com/Dosada05/league-api/models"
)

const (
	// VisibilityScoreBase задаёт месячную посещаемость, соответствующую score 100.
	VisibilityScoreBase = 5000
	RecentActivityDays  = 7
)

type VisibilitySummary struct {
	CourtID             string                      `json:"court_id"`
	CourtName           string                      `json:"court_name"`
	TotalViews          int                         `json:"total_views"`
	TotalUniqueVisitors int                         `json:"total_unique_visitors"`
	AvgDailyViews       int                         `json:"avg_daily_views"`
	DaysLogged          int                         `json:"days_logged"`
	VisibilityScore     int                         `json:"visibility_score"`
	RecentActivity      []models.CourtVisibilityLog `json:"recent_activity"`
}

// VisibilityScore maps a monthly visitor count onto 0..100.
func VisibilityScore(sponsorVisibility int) int {
	if sponsorVisibility <= 0 {
		return 0
	}
	score := int(math.Round(float64(sponsorVisibility) / VisibilityScoreBase * 100))
	if score > 100 {
		return 100
	}
	return score
}

// Summarize does not modify logs; the recent window is taken after sorting by date, newest first.
func Summarize(court *models.Court, logs []*models.CourtVisibilityLog) VisibilitySummary {
	summary := VisibilitySummary{
		RecentActivity: []models.CourtVisibilityLog{},
	}
	if court != nil {
		summary.CourtID = court.ID
		summary.CourtName = court.Name
		summary.VisibilityScore = VisibilityScore(court.SponsorVisibility)
	}

	sorted := make([]models.CourtVisibilityLog, 0, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		summary.TotalViews += l.Views
		summary.TotalUniqueVisitors += l.UniqueVisitors
		sorted = append(sorted, *l)
	}

	summary.DaysLogged = len(sorted)
	if summary.DaysLogged == 0 {
		return summary
	}
	summary.AvgDailyViews = int(math.Round(float64(summary.TotalViews) / float64(summary.DaysLogged)))

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > RecentActivityDays {
		sorted = sorted[:RecentActivityDays]
	}
	summary.RecentActivity = sorted

	return summary
}

type SponsorOverview struct {
	Courts              []VisibilitySummary `json:"courts"`
	TotalViews          int                 `json:"total_views"`
	TotalUniqueVisitors int                 `json:"total_unique_visitors"`
	AvgVisibilityScore  int                 `json:"avg_visibility_score"`
}

// Overview orders court summaries by visibility score, highest first.
func Overview(summaries []VisibilitySummary) SponsorOverview {
	overview := SponsorOverview{Courts: make([]VisibilitySummary, len(summaries))}
	copy(overview.Courts, summaries)

	sort.SliceStable(overview.Courts, func(i, j int) bool {
		if overview.Courts[i].VisibilityScore != overview.Courts[j].VisibilityScore {
			return overview.Courts[i].VisibilityScore > overview.Courts[j].VisibilityScore
		}
		return overview.Courts[i].TotalViews > overview.Courts[j].TotalViews
	})

	scoreSum := 0
	for _, s := range overview.Courts {
		overview.TotalViews += s.TotalViews
		overview.TotalUniqueVisitors += s.TotalUniqueVisitors
		scoreSum += s.VisibilityScore
	}
	if len(overview.Courts) > 0 {
		overview.AvgVisibilityScore = int(math.Round(float64(scoreSum) / float64(len(overview.Courts))))
	}
	return overview
}
