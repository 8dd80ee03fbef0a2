package api

import (
	"time"

	"github.com/dmarchuk/flightroster/internal/domain"
)

type flightResource struct {
	FlightNumber   string    `json:"flightNumber"`
	DepartureTime  time.Time `json:"departureTime"`
	AvailableSeats int       `json:"availableSeats"`
	Route          []string  `json:"route"`
}

type flightDetailsResource struct {
	flightResource
	Passengers []passengerResource `json:"passengers"`
}

type passengerResource struct {
	PassengerID string `json:"passengerId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
}

type passengerDetailsResource struct {
	passengerResource
	Flights []flightResource `json:"flights"`
}

type pageResource[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
}

func toFlightResource(f domain.Flight) flightResource {
	return flightResource{
		FlightNumber:   f.FlightNumber,
		DepartureTime:  f.DepartureTime,
		AvailableSeats: f.AvailableSeats,
		Route:          f.Route,
	}
}

func toFlightDetailsResource(d *domain.FlightDetails) flightDetailsResource {
	passengers := make([]passengerResource, 0, len(d.Passengers))
	for _, p := range d.Passengers {
		passengers = append(passengers, toPassengerResource(p))
	}
	return flightDetailsResource{
		flightResource: toFlightResource(d.Flight),
		Passengers:     passengers,
	}
}

func toPassengerResource(p domain.Passenger) passengerResource {
	return passengerResource{
		PassengerID: p.PassengerID.String(),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CountryCode: p.Phone.CountryCode,
		PhoneNumber: p.Phone.Number,
	}
}

func toPassengerDetailsResource(d *domain.PassengerDetails) passengerDetailsResource {
	flights := make([]flightResource, 0, len(d.Flights))
	for _, f := range d.Flights {
		flights = append(flights, toFlightResource(f))
	}
	return passengerDetailsResource{
		passengerResource: toPassengerResource(d.Passenger),
		Flights:           flights,
	}
}

func toFlightPageResource(p *domain.Page[domain.Flight]) pageResource[flightResource] {
	items := make([]flightResource, 0, len(p.Items))
	for _, f := range p.Items {
		items = append(items, toFlightResource(f))
	}
	return pageResource[flightResource]{Items: items, Page: p.Page, PerPage: p.PerPage, Total: p.Total}
}
