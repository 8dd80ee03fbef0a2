package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhoneNumber is an embedded value object, both parts travel together.
type PhoneNumber struct {
	CountryCode string
	Number      string
}

type Passenger struct {
	ID          int64
	PassengerID uuid.UUID
	FirstName   string
	LastName    string
	Phone       PhoneNumber
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PassengerDetails is a passenger together with the flights they are
// currently booked on.
type PassengerDetails struct {
	Passenger
	Flights []Flight
}
