package models

import "time"

// Image is exclusively owned by one service, never shared.
type Image struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"serviceId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
