package models

import "time"

// Banner is a flat promotional record. Unlike Service, optional fields stay
// absent from the JSON when the document lacks them; banner consumers
// tolerate missing fields.
type Banner struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CtaText     *string   `json:"ctaText,omitempty"`
	CtaLink     *string   `json:"ctaLink,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
