package flights

import (
	"context"
	"time"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/dmarchuk/flightroster/internal/kafka"
	"github.com/dmarchuk/flightroster/internal/logging"
	"github.com/dmarchuk/flightroster/internal/metrics"
	"github.com/dmarchuk/flightroster/internal/repository"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Get(ctx context.Context, flightNumber string) (*domain.FlightDetails, error)
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error)
	Search(ctx context.Context, criteria domain.FlightSearchCriteria, page domain.PageRequest) (*domain.Page[domain.Flight], error)
	Update(ctx context.Context, flightNumber string, input UpdateFlightInput) error
	Delete(ctx context.Context, flightNumber string) error
	AddPassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error
	RemovePassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error
}

type Cache interface {
	GetFlightPage(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error)
	SetFlightPage(ctx context.Context, page domain.PageRequest, value *domain.Page[domain.Flight]) error
	GetFlightDetails(ctx context.Context, flightNumber string) (*domain.FlightDetails, error)
	SetFlightDetails(ctx context.Context, details *domain.FlightDetails) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateFlightInput struct {
	FlightNumber   string
	DepartureTime  time.Time
	AvailableSeats int
	Route          []string
}

// UpdateFlightInput is a sparse patch: nil means the field was not
// supplied. Route follows the same rule with one extra twist, an empty
// non-nil slice is a no-op rather than a clear.
type UpdateFlightInput struct {
	FlightNumber   *string
	DepartureTime  *time.Time
	AvailableSeats *int
	Route          []string
}

type FlightService struct {
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	cache              Cache
	producer           Producer
	metrics            *metrics.Registry
	rosterTopic        string
	notificationsTopic string
	assignLocks        *keyedMutex
}

type FlightServiceOption func(*FlightService)

func WithNotificationsTopic(topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(reg *metrics.Registry) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = reg
	}
}

func NewFlightService(
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	cache Cache,
	producer Producer,
	rosterTopic string,
	opts ...FlightServiceOption,
) *FlightService {
	service := &FlightService{
		flights:     flights,
		passengers:  passengers,
		cache:       cache,
		producer:    producer,
		rosterTopic: rosterTopic,
		assignLocks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if len(input.FlightNumber) < 4 {
		return nil, &domain.ValidationError{Field: "flightNumber", Message: "is too short"}
	}
	if input.AvailableSeats <= 0 {
		return nil, &domain.ValidationError{Field: "availableSeats", Message: "must be positive"}
	}
	if len(input.Route) == 0 {
		return nil, &domain.ValidationError{Field: "route", Message: "must not be empty"}
	}

	exists, err := s.flights.ExistsByNumber(ctx, input.FlightNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		logging.L().Errorw("flight number already exists", "flight_number", input.FlightNumber)
		return nil, domain.ErrFlightNumberTaken
	}

	flight := &domain.Flight{
		FlightNumber:   input.FlightNumber,
		DepartureTime:  input.DepartureTime,
		AvailableSeats: input.AvailableSeats,
		Route:          input.Route,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}

	logging.L().Infow("created flight", "flight_number", flight.FlightNumber)
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventFlightCreated, flight, "", "")
	return flight, nil
}

func (s *FlightService) Get(ctx context.Context, flightNumber string) (*domain.FlightDetails, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightDetails(ctx, flightNumber); err == nil && cached != nil {
			s.countCacheHit(true)
			return cached, nil
		}
		s.countCacheHit(false)
	}

	details, err := s.flights.GetDetails(ctx, flightNumber)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlightDetails(ctx, details)
	}
	return details, nil
}

func (s *FlightService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightPage(ctx, page); err == nil && cached != nil {
			s.countCacheHit(true)
			return cached, nil
		}
		s.countCacheHit(false)
	}

	result, err := s.flights.List(ctx, page)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlightPage(ctx, page, result)
	}
	return result, nil
}

func (s *FlightService) Search(ctx context.Context, criteria domain.FlightSearchCriteria, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	return s.flights.Search(ctx, criteria, page)
}

// Update applies a sparse patch. Every present field is validated
// before any field is applied, so a failing patch leaves the flight
// untouched.
func (s *FlightService) Update(ctx context.Context, flightNumber string, input UpdateFlightInput) error {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		logging.L().Errorw("cannot update flight", "flight_number", flightNumber, "error", err)
		return err
	}

	if input.FlightNumber != nil && len(*input.FlightNumber) < 4 {
		return &domain.ValidationError{Field: "flightNumber", Message: "is too short"}
	}
	if input.AvailableSeats != nil && *input.AvailableSeats < 0 {
		return &domain.ValidationError{Field: "availableSeats", Message: "must not be negative"}
	}

	if input.FlightNumber != nil {
		flight.FlightNumber = *input.FlightNumber
	}
	if input.DepartureTime != nil {
		flight.DepartureTime = *input.DepartureTime
	}
	if input.AvailableSeats != nil {
		flight.AvailableSeats = *input.AvailableSeats
	}
	if len(input.Route) > 0 {
		flight.Route = input.Route
	}

	if err := s.flights.Update(ctx, flight); err != nil {
		return err
	}

	logging.L().Infow("updated flight", "flight_number", flightNumber)
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventFlightUpdated, flight, "", "")
	return nil
}

func (s *FlightService) Delete(ctx context.Context, flightNumber string) error {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		logging.L().Errorw("cannot delete flight", "flight_number", flightNumber, "error", err)
		return err
	}

	if err := s.flights.Delete(ctx, flight.ID); err != nil {
		return err
	}

	logging.L().Infow("deleted flight", "flight_number", flightNumber)
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventFlightDeleted, flight, "", "")
	return nil
}

// AddPassenger books a passenger onto a flight, taking one seat. The
// membership check, the seat check and the write are serialized per
// flight number.
func (s *FlightService) AddPassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error {
	unlock := s.assignLocks.lock(flightNumber)
	defer unlock()

	flight, passenger, err := s.resolve(ctx, flightNumber, passengerID)
	if err != nil {
		return err
	}

	member, err := s.flights.IsPassengerOnFlight(ctx, flight.ID, passenger.ID)
	if err != nil {
		return err
	}
	if member {
		logging.L().Errorw("passenger is already on flight", "flight_number", flightNumber, "passenger_id", passengerID)
		return domain.ErrPassengerAlreadyOnFlight
	}
	if flight.AvailableSeats <= 0 {
		logging.L().Errorw("flight is full", "flight_number", flightNumber, "passenger_id", passengerID)
		return domain.ErrFlightFull
	}

	if err := s.flights.AddPassenger(ctx, flight.ID, passenger.ID); err != nil {
		return err
	}

	logging.L().Infow("added passenger to flight", "flight_number", flightNumber, "passenger_id", passengerID)
	if s.metrics != nil {
		s.metrics.PassengersAssignedTotal.Inc()
	}
	flight.AvailableSeats--
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventPassengerAdded, flight, passengerID.String(), passenger.Phone.Number)
	return nil
}

// RemovePassenger takes a passenger off a flight and releases the seat.
func (s *FlightService) RemovePassenger(ctx context.Context, flightNumber string, passengerID uuid.UUID) error {
	unlock := s.assignLocks.lock(flightNumber)
	defer unlock()

	flight, passenger, err := s.resolve(ctx, flightNumber, passengerID)
	if err != nil {
		return err
	}

	member, err := s.flights.IsPassengerOnFlight(ctx, flight.ID, passenger.ID)
	if err != nil {
		return err
	}
	if !member {
		logging.L().Errorw("passenger is not on flight", "flight_number", flightNumber, "passenger_id", passengerID)
		return domain.ErrPassengerNotOnFlight
	}

	if err := s.flights.RemovePassenger(ctx, flight.ID, passenger.ID); err != nil {
		return err
	}

	logging.L().Infow("removed passenger from flight", "flight_number", flightNumber, "passenger_id", passengerID)
	if s.metrics != nil {
		s.metrics.PassengersRemovedTotal.Inc()
	}
	flight.AvailableSeats++
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventPassengerRemoved, flight, passengerID.String(), passenger.Phone.Number)
	return nil
}

func (s *FlightService) resolve(ctx context.Context, flightNumber string, passengerID uuid.UUID) (*domain.Flight, *domain.Passenger, error) {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		logging.L().Errorw("flight lookup failed", "flight_number", flightNumber, "error", err)
		return nil, nil, err
	}
	passenger, err := s.passengers.GetByPassengerID(ctx, passengerID)
	if err != nil {
		logging.L().Errorw("passenger lookup failed", "passenger_id", passengerID, "error", err)
		return nil, nil, err
	}
	return flight, passenger, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func (s *FlightService) countCacheHit(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.Inc()
	} else {
		s.metrics.CacheMissesTotal.Inc()
	}
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight, passengerID, phone string) {
	if s.producer == nil || s.rosterTopic == "" {
		return
	}
	event := kafka.RosterEvent{
		Type:           eventType,
		FlightNumber:   flight.FlightNumber,
		PassengerID:    passengerID,
		Phone:          phone,
		AvailableSeats: flight.AvailableSeats,
		OccurredAt:     time.Now(),
	}
	if err := s.producer.Publish(ctx, s.rosterTopic, flight.FlightNumber, event); err != nil {
		logging.L().Warnw("failed to publish roster event", "type", eventType, "flight_number", flight.FlightNumber, "error", err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, flight.FlightNumber, event); err != nil {
			logging.L().Warnw("failed to publish notification event", "type", eventType, "flight_number", flight.FlightNumber, "error", err)
		}
	}
}

var _ FlightUseCase = (*FlightService)(nil)
