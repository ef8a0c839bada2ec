package domain

import "time"

// Service optional booking category
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           *float64
	IsActive        bool
	DisplayOrder    int
	IsCallOut       bool // performed at the customer's location
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CustomerNote free-text annotation keyed by customer email
type CustomerNote struct {
	ID            int64
	CustomerEmail string
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
