package models

import "time"

// DriverLocation is one geolocation ping from a driver's watch stream.
type DriverLocation struct {
	DriverID   string    `json:"driver_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}
