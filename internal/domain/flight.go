package domain

import "time"

type Flight struct {
	ID             int64
	FlightNumber   string
	DepartureTime  time.Time
	AvailableSeats int
	Route          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightDetails is a flight together with the passengers currently on
// it, resolved through the assignment join.
type FlightDetails struct {
	Flight
	Passengers []Passenger
}

// FlightSearchCriteria carries the optional search filters. A nil field
// contributes no predicate.
type FlightSearchCriteria struct {
	FlightNumber       *string
	DepartureTimeFrom  *time.Time
	DepartureTimeTo    *time.Time
	AvailableSeatsFrom *int
	City               *string
}

type PageRequest struct {
	Page    int
	PerPage int
}

func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
}
