package model

import "time"

const (
	AppointmentConfirmed = "confirmed"
	AppointmentPending   = "pending"
	AppointmentCancelled = "cancelled"
)

type Customer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Appointment struct {
	ID              string
	HoldID          string
	ServiceID       string
	ResourceID      string
	CustomerID      string
	Customer        Customer
	Start           time.Time
	DurationMinutes int
	PriceCents      int64
	Status          string
	CancelledAt     *time.Time
	CancelReason    string
	CreatedAt       time.Time
}

func (a Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Blocking reports whether the appointment occupies its interval.
func (a Appointment) Blocking() bool {
	return a.Status != AppointmentCancelled
}
