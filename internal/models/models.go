package models

import "time"

// Report represents one persisted locust sighting
type Report struct {
	ID        int64
	CreatedAt time.Time
	UserID    string
	Latitude  float64
	Longitude float64
	Comment   string
	PhotoURL  string
}
