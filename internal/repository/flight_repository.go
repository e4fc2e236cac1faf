package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// FlightRepository encapsulates flight persistence.
type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	List(ctx context.Context, airline string) ([]domain.Flight, error)
	MarkDeparted(ctx context.Context, number string) error
	DeleteCascade(ctx context.Context, ids []int64) error
	CountDeparted(ctx context.Context) (int, error)
}

type flightRepository struct {
	pool *pgxpool.Pool
}

// NewFlightRepository instantiates repository.
func NewFlightRepository(pool *pgxpool.Pool) FlightRepository {
	return &flightRepository{pool: pool}
}

func (r *flightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	const query = `
        INSERT INTO flights (flight, gate, destination, airline)
        VALUES ($1,$2,$3,$4)
        RETURNING id, departed, created_at`
	err := r.pool.QueryRow(ctx, query,
		flight.Flight,
		flight.Gate,
		flight.Destination,
		flight.Airline,
	).Scan(&flight.ID, &flight.Departed, &flight.CreatedAt)
	return mapUniqueViolation(err, "flight")
}

func (r *flightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	const query = `
        SELECT id, flight, gate, destination, airline, departed, created_at
        FROM flights WHERE flight=$1`
	var flight domain.Flight
	if err := r.pool.QueryRow(ctx, query, number).Scan(
		&flight.ID,
		&flight.Flight,
		&flight.Gate,
		&flight.Destination,
		&flight.Airline,
		&flight.Departed,
		&flight.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) List(ctx context.Context, airline string) ([]domain.Flight, error) {
	query := `
        SELECT id, flight, gate, destination, airline, departed, created_at
        FROM flights ORDER BY flight`
	args := []any{}
	if airline != "" {
		query = `
        SELECT id, flight, gate, destination, airline, departed, created_at
        FROM flights WHERE airline=$1 ORDER BY flight`
		args = append(args, airline)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Flight
	for rows.Next() {
		var flight domain.Flight
		if err := rows.Scan(
			&flight.ID,
			&flight.Flight,
			&flight.Gate,
			&flight.Destination,
			&flight.Airline,
			&flight.Departed,
			&flight.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, flight)
	}
	return result, rows.Err()
}

// MarkDeparted sets the departed flag exactly once; a second attempt finds
// no matching row and reports no rows.
func (r *flightRepository) MarkDeparted(ctx context.Context, number string) error {
	const query = `UPDATE flights SET departed=TRUE WHERE flight=$1 AND departed=FALSE`
	cmd, err := r.pool.Exec(ctx, query, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCascade removes flights with their passengers and bags in a single
// transaction so a mid-sequence failure cannot orphan rows.
func (r *flightRepository) DeleteCascade(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const deleteBags = `
        DELETE FROM bags WHERE ticket IN (
            SELECT p.ticket FROM passengers p
            JOIN flights f ON f.flight = p.flight
            WHERE f.id = ANY($1))`
	if _, err := tx.Exec(ctx, deleteBags, ids); err != nil {
		return err
	}

	const deletePassengers = `
        DELETE FROM passengers WHERE flight IN (
            SELECT flight FROM flights WHERE id = ANY($1))`
	if _, err := tx.Exec(ctx, deletePassengers, ids); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flights WHERE id = ANY($1)`, ids); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *flightRepository) CountDeparted(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE departed=TRUE`).Scan(&count)
	return count, err
}
