package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	ExistsByNumber(ctx context.Context, flightNumber string) (bool, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	GetDetails(ctx context.Context, flightNumber string) (*domain.FlightDetails, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error)
	Search(ctx context.Context, criteria domain.FlightSearchCriteria, page domain.PageRequest) (*domain.Page[domain.Flight], error)
	IsPassengerOnFlight(ctx context.Context, flightID, passengerID int64) (bool, error)
	AddPassenger(ctx context.Context, flightID, passengerID int64) error
	RemovePassenger(ctx context.Context, flightID, passengerID int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, departure_time, available_seats, route, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.DepartureTime, &f.AvailableSeats, &f.Route, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, departure_time, available_seats, route)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.DepartureTime, flight.AvailableSeats, flight.Route).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrFlightNumberTaken
	}
	return err
}

func (r *PGFlightRepository) ExistsByNumber(ctx context.Context, flightNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE flight_number=$1)`, flightNumber).Scan(&exists)
	return exists, err
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) GetDetails(ctx context.Context, flightNumber string) (*domain.FlightDetails, error) {
	flight, err := r.GetByNumber(ctx, flightNumber)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT p.id, p.passenger_id, p.first_name, p.last_name, p.phone_country_code, p.phone_number, p.created_at, p.updated_at
		FROM passengers p
		JOIN flight_passengers fp ON fp.passenger_id = p.id
		WHERE fp.flight_id=$1
		ORDER BY p.id`, flight.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.PassengerID, &p.FirstName, &p.LastName, &p.Phone.CountryCode, &p.Phone.Number, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.FlightDetails{Flight: *flight, Passengers: passengers}, nil
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET flight_number=$1, departure_time=$2, available_seats=$3, route=$4, updated_at=now() WHERE id=$5`,
		flight.FlightNumber, flight.DepartureTime, flight.AvailableSeats, flight.Route, flight.ID)
	if isUniqueViolation(err) {
		return domain.ErrFlightNumberTaken
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	return r.Search(ctx, domain.FlightSearchCriteria{}, page)
}

func (r *PGFlightRepository) Search(ctx context.Context, criteria domain.FlightSearchCriteria, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	q := buildFlightSearch(criteria)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights`+q.where(), q.args...).Scan(&total); err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`SELECT `+flightColumns+` FROM flights%s ORDER BY departure_time LIMIT $%d OFFSET $%d`,
		q.where(), q.next(), q.next()+1)
	args := append(q.args, page.PerPage, page.Offset())

	rows, err := r.db.Query(ctx, sql, args...)
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

	return &domain.Page[domain.Flight]{Items: flights, Page: page.Page, PerPage: page.PerPage, Total: total}, nil
}

func (r *PGFlightRepository) IsPassengerOnFlight(ctx context.Context, flightID, passengerID int64) (bool, error) {
	var member bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flight_passengers WHERE flight_id=$1 AND passenger_id=$2)`,
		flightID, passengerID).Scan(&member)
	return member, err
}

// AddPassenger inserts the membership row and takes one seat in a
// single transaction. The guarded UPDATE keeps the seat counter from
// ever dropping below zero even if callers race past their own checks.
func (r *PGFlightRepository) AddPassenger(ctx context.Context, flightID, passengerID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO flight_passengers (flight_id, passenger_id) VALUES ($1, $2)`,
		flightID, passengerID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPassengerAlreadyOnFlight
		}
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1 AND available_seats > 0`, flightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightFull
	}

	return tx.Commit(ctx)
}

// RemovePassenger deletes the membership row and releases the seat in a
// single transaction.
func (r *PGFlightRepository) RemovePassenger(ctx context.Context, flightID, passengerID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM flight_passengers WHERE flight_id=$1 AND passenger_id=$2`, flightID, passengerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPassengerNotOnFlight
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, flightID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ FlightRepository = (*PGFlightRepository)(nil)
