package domain

import "time"

// Employee is a crew member who can drive a booked vehicle or work a
// phase. Licensing and contract rules live outside this system; the
// scheduler only needs the lookup data.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Role      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last", tolerating empty parts.
func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}
