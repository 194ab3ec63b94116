package models

import "time"

type CourtAvailability string

const (
	CourtAvailable CourtAvailability = "available"
	CourtBooked    CourtAvailability = "booked"
)

type Court struct {
	ID                string            `json:"id" db:"id"`
	Name              string            `json:"name" db:"name"`
	Location          string            `json:"location" db:"location"`
	University        *string           `json:"university,omitempty" db:"university"`
	City              string            `json:"city" db:"city"`
	Latitude          *float64          `json:"latitude,omitempty" db:"latitude"`
	Longitude         *float64          `json:"longitude,omitempty" db:"longitude"`
	Availability      CourtAvailability `json:"availability" db:"availability"`
	ContactInfo       *string           `json:"contact_info,omitempty" db:"contact_info"`
	SponsorVisibility int               `json:"sponsor_visibility" db:"sponsor_visibility"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
}

// CourtVisibilityLog хранит дневные просмотры площадки, одна запись на (CourtID, Date).
type CourtVisibilityLog struct {
	ID             string    `json:"id" db:"id"`
	CourtID        string    `json:"court_id" db:"court_id"`
	Date           time.Time `json:"date" db:"date"`
	Views          int       `json:"views" db:"views"`
	UniqueVisitors int       `json:"unique_visitors" db:"unique_visitors"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
