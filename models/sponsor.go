package models

import "time"

type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed:
		return true
	}
	return false
}

type Inquiry struct {
	ID          string        `json:"id" db:"id"`
	Type        string        `json:"type" db:"type"`
	CompanyName string        `json:"company_name" db:"company_name"`
	ContactName string        `json:"contact_name" db:"contact_name"`
	Email       string        `json:"email" db:"email"`
	Phone       *string       `json:"phone,omitempty" db:"phone"`
	Message     string        `json:"message" db:"message"`
	Status      InquiryStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

type BrandAsset struct {
	ID        string    `json:"id" db:"id"`
	SponsorID string    `json:"sponsor_id" db:"sponsor_id"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
