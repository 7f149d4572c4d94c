package models

import "time"

// Service is a rental catalog item joined to its images and category.
// Optional document fields are always defaulted by the mapping layer, so
// consumers never see null for the string/numeric fields below.
type Service struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	RentalPrice  float64      `json:"rentalPrice"`
	Deposit      float64      `json:"deposit"`
	Quantity     int          `json:"quantity"`
	RentalPeriod int          `json:"rentalPeriod"`
	Condition    string       `json:"condition"`
	Available    bool         `json:"available"`
	CategoryID   string       `json:"categoryId"`
	Category     *CategoryRef `json:"category,omitempty"`
	Images       []Image      `json:"images"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	DeletedAt    *time.Time   `json:"deletedAt,omitempty"`
	DeletedBy    string       `json:"deletedBy,omitempty"`
}
