package repositories

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/league-api/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var matchRowColumns = []string{
	"id", "tournament_id", "team1_id", "team2_id", "team1_score", "team2_score", "round", "status",
	"winner_id", "mvp_id", "court_number", "version", "created_at", "updated_at",
}

func TestMatchStatsRepository_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchStatsRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO match_stats")).
		WithArgs(sqlmock.AnyArg(), "match-1", "player-1", int64(9), int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow("existing-row", now))

	stats := &models.MatchStats{MatchID: "match-1", PlayerID: "player-1", Points: 9, Assists: 2, Rebounds: 1}
	require.NoError(t, repo.Upsert(context.Background(), nil, stats))

	assert.Equal(t, "existing-row", stats.ID, "conflicting row keeps its id")
	assert.Equal(t, now, stats.UpdatedAt)
}

func TestMatchStatsRepository_UpsertMissingReference(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO match_stats")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "match_stats_player_id_fkey"})

	err := repo.Upsert(context.Background(), nil, &models.MatchStats{MatchID: "m", PlayerID: "p"})
	assert.ErrorIs(t, err, ErrMatchStatsReferenceInvalid)
}

func TestMatchStatsRepository_GetByMatchAndPlayerNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM match_stats WHERE match_id = $1 AND player_id = $2")).
		WithArgs("m", "p").
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "player_id", "points", "assists", "rebounds", "updated_at"}))

	_, err := repo.GetByMatchAndPlayer(context.Background(), nil, "m", "p")
	assert.ErrorIs(t, err, ErrMatchStatsNotFound)
}

func TestMatchRepository_UpdateBumpsVersion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)
	winner := "team-1"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE matches SET")).
		WithArgs(int64(21), int64(15), "Round 1", "completed", "team-1", nil, nil, "match-1", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(2, time.Now()))

	m := &models.Match{
		ID: "match-1", Team1Score: 21, Team2Score: 15, Round: "Round 1",
		Status: models.MatchStatusCompleted, WinnerID: &winner, Version: 1,
	}
	require.NoError(t, repo.Update(context.Background(), nil, m))
	assert.Equal(t, 2, m.Version)
}

func TestMatchRepository_UpdateStaleVersion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE matches SET")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))

	err := repo.Update(context.Background(), nil, &models.Match{ID: "match-1", Version: 1})
	assert.ErrorIs(t, err, ErrMatchVersionConflict)
}

func TestMatchRepository_GetAndDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(matchRowColumns))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matches WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.GetByID(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	err = repo.Delete(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchRepository_ListAndDeleteInTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(matchRowColumns).
			AddRow("m1", "t1", "a", "b", 21, 15, "Round 1", "completed", "a", nil, "Court 1", 3, now, now).
			AddRow("m2", "t1", "c", "d", 0, 0, "Round 1", "scheduled", nil, nil, nil, 1, now, now))

	matches, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, models.MatchStatusCompleted, matches[0].Status)
	require.NotNil(t, matches[0].WinnerID)
	assert.Equal(t, "a", *matches[0].WinnerID)
	assert.Nil(t, matches[1].CourtNumber)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matches WHERE id = $1")).
		WithArgs("m2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := NewTransactor(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err = tx.WithinTx(context.Background(), func(exec SQLExecutor) error {
		return repo.Delete(context.Background(), exec, "m2")
	})
	require.NoError(t, err)
}

func TestMatchRepository_CreateMapsConstraintErrors(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches")).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "matches_distinct_teams"})

	m := &models.Match{TournamentID: "t", Team1ID: "a", Team2ID: "a", Round: "Round 1", Status: models.MatchStatusScheduled}
	err := repo.Create(context.Background(), nil, m)
	assert.ErrorIs(t, err, ErrMatchConstraint)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 1, m.Version)
}

func TestVisibilityLogRepository_CreateDuplicateDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresVisibilityLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO court_visibility_logs")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.CourtVisibilityLog{CourtID: "c", Date: time.Now(), Views: 10})
	assert.ErrorIs(t, err, ErrVisibilityLogDateConflict)
}

func TestVisibilityLogRepository_ListByCourtLimit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresVisibilityLogRepository(db)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date DESC LIMIT $2")).
		WithArgs("court-1", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "court_id", "date", "views", "unique_visitors", "created_at"}).
			AddRow("l2", "court-1", day.AddDate(0, 0, 1), 20, 5, day).
			AddRow("l1", "court-1", day, 10, 4, day))

	logs, err := repo.ListByCourt(context.Background(), "court-1", 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "l2", logs[0].ID)
	assert.Equal(t, 20, logs[0].Views)
}

func TestTransactor(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matches")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewTransactor(db, logger).WithinTx(context.Background(), func(exec SQLExecutor) error {
			_, err := exec.ExecContext(context.Background(), "DELETE FROM matches WHERE id = $1", "m")
			return err
		})
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := NewTransactor(db, logger).WithinTx(context.Background(), func(SQLExecutor) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
