package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in-progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

type Match struct {
	ID           string      `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	Team1ID      string      `json:"team1_id" db:"team1_id"`
	Team2ID      string      `json:"team2_id" db:"team2_id"`
	Team1Score   int         `json:"team1_score" db:"team1_score"`
	Team2Score   int         `json:"team2_score" db:"team2_score"`
	Round        string      `json:"round" db:"round"`
	Status       MatchStatus `json:"status" db:"status"`
	WinnerID     *string     `json:"winner_id,omitempty" db:"winner_id"`
	MVPID        *string     `json:"mvp_id,omitempty" db:"mvp_id"`
	CourtNumber  *string     `json:"court_number,omitempty" db:"court_number"`
	Version      int         `json:"version" db:"version"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// HasTeam сообщает, участвует ли команда в матче.
func (m *Match) HasTeam(teamID string) bool {
	return teamID != "" && (m.Team1ID == teamID || m.Team2ID == teamID)
}

// MatchStats хранит статистику игрока в матче. Уникальна по (MatchID, PlayerID).
type MatchStats struct {
	ID        string    `json:"id" db:"id"`
	MatchID   string    `json:"match_id" db:"match_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	Points    int       `json:"points" db:"points"`
	Assists   int       `json:"assists" db:"assists"`
	Rebounds  int       `json:"rebounds" db:"rebounds"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
