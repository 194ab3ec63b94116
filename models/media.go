package models

import "time"

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

type Media struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Type         MediaType `json:"type" db:"type"`
	URL          string    `json:"url" db:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	TournamentID *string   `json:"tournament_id,omitempty" db:"tournament_id"`
	TeamID       *string   `json:"team_id,omitempty" db:"team_id"`
	SponsorID    *string   `json:"sponsor_id,omitempty" db:"sponsor_id"`
	Tags         *string   `json:"tags,omitempty" db:"tags"`
	UploadedBy   *string   `json:"uploaded_by,omitempty" db:"uploaded_by"`
	StorageKey   *string   `json:"-" db:"storage_key"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
