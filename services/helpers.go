package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-api/models"
	"github.com/Dosada05/league-api/repositories"
)

// Broadcaster публикует события в комнату турнира. *live.Hub удовлетворяет интерфейсу.
type Broadcaster interface {
	BroadcastToRoom(roomID, eventType string, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToRoom(string, string, interface{}) {}

func broadcasterOrNoop(b Broadcaster) Broadcaster {
	if b == nil {
		return noopBroadcaster{}
	}
	return b
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// checkVersion сравнивает версию, присланную клиентом, с текущей.
func checkVersion(m *models.Match, expected *int) error {
	if expected != nil && *expected != m.Version {
		return fmt.Errorf("%w: expected version %d, current %d", ErrMatchVersionConflict, *expected, m.Version)
	}
	return nil
}

// applyRecordChange обновляет счётчики побед и поражений в рамках транзакции exec.
func applyRecordChange(ctx context.Context, exec repositories.SQLExecutor, teamRepo repositories.TeamRepository, change *RecordChange) error {
	if change == nil {
		return nil
	}
	if err := teamRepo.AdjustRecord(ctx, exec, change.WinnerID, change.Sign, 0); err != nil {
		return fmt.Errorf("failed to adjust record of winner %s: %w", change.WinnerID, err)
	}
	if err := teamRepo.AdjustRecord(ctx, exec, change.LoserID, 0, change.Sign); err != nil {
		return fmt.Errorf("failed to adjust record of loser %s: %w", change.LoserID, err)
	}
	return nil
}

func parseDate(field, value string, v *validator) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	v.check(err == nil, field, "must be a date in YYYY-MM-DD or RFC3339 format")
	return t
}

func logServiceError(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.Any("error", err))
	logger.ErrorContext(ctx, msg, args...)
}
