package models

import "time"

type Team struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	University   *string   `json:"university,omitempty" db:"university"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}

type Player struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	TeamID       string    `json:"team_id" db:"team_id"`
	JerseyNumber *int      `json:"jersey_number,omitempty" db:"jersey_number"`
	Position     *string   `json:"position,omitempty" db:"position"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
