package services

import (
	"context"
	"testing"

	"github.com/Dosada05/league-api/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestStatsService_DoubleUpsertKeepsOneRow(t *testing.T) {
	f := newFixture()
	tour, teams := f.tournament(t, 2)
	ctx := context.Background()

	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Round: "Final",
	})
	require.NoError(t, err)
	p := f.player(t, teams[0].ID)

	first, err := f.stats.UpsertPlayerStats(ctx, match.ID, p.ID, StatsInput{Points: intPtr(4), Assists: intPtr(2), Rebounds: intPtr(1)})
	require.NoError(t, err)
	second, err := f.stats.UpsertPlayerStats(ctx, match.ID, p.ID, StatsInput{Points: intPtr(9)})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	rows, err := f.stats.ListStatsByMatch(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 9, rows[0].Points)
	assert.Equal(t, 2, rows[0].Assists, "omitted fields keep their previous value")
	assert.Equal(t, 1, rows[0].Rebounds)
	assert.Contains(t, f.hub.events, tour.ID+":"+live.EventMatchStatsUpdated)
}

func TestStatsService_Rejections(t *testing.T) {
	f := newFixture()
	tour, teams := f.tournament(t, 3)
	ctx := context.Background()

	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Round: "Final",
	})
	require.NoError(t, err)
	inMatch := f.player(t, teams[0].ID)
	outsider := f.player(t, teams[2].ID)

	_, err = f.stats.UpsertPlayerStats(ctx, match.ID, outsider.ID, StatsInput{Points: intPtr(3)})
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)

	_, err = f.stats.UpsertPlayerStats(ctx, match.ID, inMatch.ID, StatsInput{Points: intPtr(-3)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.stats.UpsertPlayerStats(ctx, "missing", inMatch.ID, StatsInput{})
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = f.stats.UpsertPlayerStats(ctx, match.ID, "missing", StatsInput{})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestStatsService_PatchByID(t *testing.T) {
	f := newFixture()
	tour, teams := f.tournament(t, 2)
	ctx := context.Background()

	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: tour.ID, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Round: "Final",
	})
	require.NoError(t, err)
	p := f.player(t, teams[1].ID)

	created, err := f.stats.CreateStats(ctx, CreateStatsInput{MatchID: match.ID, PlayerID: p.ID, StatsInput: StatsInput{Points: intPtr(5)}})
	require.NoError(t, err)

	patched, err := f.stats.PatchStats(ctx, created.ID, StatsInput{Rebounds: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, 5, patched.Points)
	assert.Equal(t, 6, patched.Rebounds)

	_, err = f.stats.PatchStats(ctx, "missing", StatsInput{Rebounds: intPtr(1)})
	assert.ErrorIs(t, err, ErrMatchStatsNotFound)
}
