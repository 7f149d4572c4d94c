package models

import "time"

// Category is the mapped, trusted shape both apps consume. IDs are ObjectID
// hex strings; ParentID is nil for root categories.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *string    `json:"parentId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CategoryRef is the minimal projection nested inside a service read model.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
