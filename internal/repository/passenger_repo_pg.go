package repository

import (
	"context"
	"errors"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Passenger, error)
	GetDetails(ctx context.Context, passengerID uuid.UUID) (*domain.PassengerDetails, error)
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id int64) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, passenger_id, first_name, last_name, phone_country_code, phone_number, created_at, updated_at`

func scanPassenger(row pgx.Row, p *domain.Passenger) error {
	return row.Scan(&p.ID, &p.PassengerID, &p.FirstName, &p.LastName, &p.Phone.CountryCode, &p.Phone.Number, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	return r.db.QueryRow(ctx, `INSERT INTO passengers (passenger_id, first_name, last_name, phone_country_code, phone_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		passenger.PassengerID, passenger.FirstName, passenger.LastName, passenger.Phone.CountryCode, passenger.Phone.Number).
		Scan(&passenger.ID, &passenger.CreatedAt, &passenger.UpdatedAt)
}

func (r *PGPassengerRepository) GetByPassengerID(ctx context.Context, passengerID uuid.UUID) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE passenger_id=$1`, passengerID)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) GetDetails(ctx context.Context, passengerID uuid.UUID) (*domain.PassengerDetails, error) {
	passenger, err := r.GetByPassengerID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT f.id, f.flight_number, f.departure_time, f.available_seats, f.route, f.created_at, f.updated_at
		FROM flights f
		JOIN flight_passengers fp ON fp.flight_id = f.id
		WHERE fp.passenger_id=$1
		ORDER BY f.departure_time`, passenger.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.PassengerDetails{Passenger: *passenger, Flights: flights}, nil
}

func (r *PGPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	cmd, err := r.db.Exec(ctx, `UPDATE passengers SET first_name=$1, last_name=$2, phone_country_code=$3, phone_number=$4, updated_at=now() WHERE id=$5`,
		passenger.FirstName, passenger.LastName, passenger.Phone.CountryCode, passenger.Phone.Number, passenger.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

// Delete removes the passenger only while they hold no flight
// memberships; the check and the delete run in one transaction.
func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var assigned bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flight_passengers WHERE passenger_id=$1)`, id).Scan(&assigned); err != nil {
		return err
	}
	if assigned {
		return domain.ErrPassengerHasFlights
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}

	return tx.Commit(ctx)
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
