package domain

import "time"

// Item is the placeholder CRUD resource. Replace with your own model.
type Item struct {
	ID          string
	Name        string
	Price       float64
	Description string // optional free text, not exposed over the API yet

	CreatedAt time.Time
	UpdatedAt time.Time
}
