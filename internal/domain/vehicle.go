package domain

import "time"

// Vehicle is a bookable transport resource.
type Vehicle struct {
	ID        string
	Name      string
	Plate     string
	Kind      VehicleKind
	Seats     int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
