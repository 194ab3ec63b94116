package services

import (
	"github.com/Dosada05/league-api/models"
)

// WinThreshold задаёт очки, при достижении которых матч завершается.
const WinThreshold = 21

// RecordChange describes the win/loss bookkeeping a score transition requires.
// Sign is +1 when a match completes and -1 when a completed match is reopened.
type RecordChange struct {
	WinnerID string
	LoserID  string
	Sign     int
}

// ApplyScore sets both scores and derives status and winner.
// Status only moves forward; a completed match rejects the update with ErrMatchCompleted.
func ApplyScore(m *models.Match, team1Score, team2Score int) (*RecordChange, error) {
	v := newValidator()
	v.check(team1Score >= 0, "team1_score", "must not be negative")
	v.check(team2Score >= 0, "team2_score", "must not be negative")
	if err := v.err(); err != nil {
		return nil, err
	}

	if m.Status == models.MatchStatusCompleted {
		return nil, ErrMatchCompleted
	}

	if max(team1Score, team2Score) >= WinThreshold && team1Score == team2Score {
		return nil, ErrTiedAtThreshold
	}

	m.Team1Score = team1Score
	m.Team2Score = team2Score

	switch {
	case max(team1Score, team2Score) >= WinThreshold:
		winner, loser := m.Team1ID, m.Team2ID
		if team2Score > team1Score {
			winner, loser = m.Team2ID, m.Team1ID
		}
		m.Status = models.MatchStatusCompleted
		m.WinnerID = &winner
		return &RecordChange{WinnerID: winner, LoserID: loser, Sign: 1}, nil
	case team1Score > 0 || team2Score > 0:
		m.Status = models.MatchStatusInProgress
	}
	// статус не откатывается: начатый матч со счётом 0-0 остаётся in-progress
	m.WinnerID = nil
	return nil, nil
}

// Reopen переводит завершённый матч обратно в in-progress и снимает победителя.
func Reopen(m *models.Match) (*RecordChange, error) {
	if m.Status != models.MatchStatusCompleted || m.WinnerID == nil {
		return nil, ErrMatchNotCompleted
	}

	winner := *m.WinnerID
	loser := m.Team1ID
	if winner == m.Team1ID {
		loser = m.Team2ID
	}

	m.Status = models.MatchStatusInProgress
	m.WinnerID = nil
	return &RecordChange{WinnerID: winner, LoserID: loser, Sign: -1}, nil
}
