package passengers

import (
	"context"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/dmarchuk/flightroster/internal/logging"
	"github.com/dmarchuk/flightroster/internal/repository"
	"github.com/google/uuid"
)

type PassengerUseCase interface {
	Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error)
	Get(ctx context.Context, passengerID uuid.UUID) (*domain.PassengerDetails, error)
	Update(ctx context.Context, passengerID uuid.UUID, input UpdatePassengerInput) error
	Delete(ctx context.Context, passengerID uuid.UUID) error
}

type CreatePassengerInput struct {
	FirstName   string
	LastName    string
	CountryCode string
	PhoneNumber string
}

// UpdatePassengerInput is a sparse patch: nil means not supplied.
type UpdatePassengerInput struct {
	FirstName   *string
	LastName    *string
	CountryCode *string
	PhoneNumber *string
}

type PassengerService struct {
	passengers repository.PassengerRepository
}

func NewPassengerService(passengers repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengers: passengers}
}

// Create stores a new passenger under a freshly generated identifier.
// Callers never supply the identifier.
func (s *PassengerService) Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	if len(input.FirstName) < 2 {
		return nil, &domain.ValidationError{Field: "firstName", Message: "must be at least 2 characters long"}
	}
	if len(input.LastName) < 2 {
		return nil, &domain.ValidationError{Field: "lastName", Message: "must be at least 2 characters long"}
	}
	if input.CountryCode == "" {
		return nil, &domain.ValidationError{Field: "countryCode", Message: "is required"}
	}
	if input.PhoneNumber == "" {
		return nil, &domain.ValidationError{Field: "phoneNumber", Message: "is required"}
	}

	passenger := &domain.Passenger{
		PassengerID: uuid.New(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Phone: domain.PhoneNumber{
			CountryCode: input.CountryCode,
			Number:      input.PhoneNumber,
		},
	}
	if err := s.passengers.Create(ctx, passenger); err != nil {
		return nil, err
	}

	logging.L().Infow("created passenger", "passenger_id", passenger.PassengerID)
	return passenger, nil
}

func (s *PassengerService) Get(ctx context.Context, passengerID uuid.UUID) (*domain.PassengerDetails, error) {
	return s.passengers.GetDetails(ctx, passengerID)
}

// Update applies a sparse patch. Every present field is validated
// before any field is applied.
func (s *PassengerService) Update(ctx context.Context, passengerID uuid.UUID, input UpdatePassengerInput) error {
	passenger, err := s.passengers.GetByPassengerID(ctx, passengerID)
	if err != nil {
		logging.L().Errorw("cannot update passenger", "passenger_id", passengerID, "error", err)
		return err
	}

	if input.FirstName != nil && len(*input.FirstName) < 2 {
		return &domain.ValidationError{Field: "firstName", Message: "must be at least 2 characters long"}
	}
	if input.LastName != nil && len(*input.LastName) < 2 {
		return &domain.ValidationError{Field: "lastName", Message: "must be at least 2 characters long"}
	}

	if input.FirstName != nil {
		passenger.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		passenger.LastName = *input.LastName
	}
	if input.CountryCode != nil {
		passenger.Phone.CountryCode = *input.CountryCode
	}
	if input.PhoneNumber != nil {
		passenger.Phone.Number = *input.PhoneNumber
	}

	if err := s.passengers.Update(ctx, passenger); err != nil {
		return err
	}

	logging.L().Infow("updated passenger", "passenger_id", passengerID)
	return nil
}

// Delete removes a passenger. A passenger still assigned to any flight
// cannot be deleted.
func (s *PassengerService) Delete(ctx context.Context, passengerID uuid.UUID) error {
	passenger, err := s.passengers.GetByPassengerID(ctx, passengerID)
	if err != nil {
		logging.L().Errorw("cannot delete passenger", "passenger_id", passengerID, "error", err)
		return err
	}

	if err := s.passengers.Delete(ctx, passenger.ID); err != nil {
		logging.L().Errorw("passenger delete rejected", "passenger_id", passengerID, "error", err)
		return err
	}

	logging.L().Infow("deleted passenger", "passenger_id", passengerID)
	return nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
