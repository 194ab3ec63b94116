package models

import "time"

// TournamentStatus mirrors the tournaments.status column.
type TournamentStatus string

const (
	TournamentStatusUpcoming   TournamentStatus = "upcoming"
	TournamentStatusInProgress TournamentStatus = "in-progress"
	TournamentStatusCompleted  TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusInProgress, TournamentStatusCompleted:
		return true
	}
	return false
}

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single-elimination"
	FormatDoubleElimination TournamentFormat = "double-elimination"
	FormatRoundRobin        TournamentFormat = "round-robin"
	FormatPoolPlay          TournamentFormat = "pool-play"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin, FormatPoolPlay:
		return true
	}
	return false
}

const DefaultMaxTeams = 16

// Tournament представляет турнир лиги.
type Tournament struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Location  string           `json:"location" db:"location"`
	Date      time.Time        `json:"date" db:"date"`
	Format    TournamentFormat `json:"format" db:"format"`
	Status    TournamentStatus `json:"status" db:"status"`
	MaxTeams  int              `json:"max_teams" db:"max_teams"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
