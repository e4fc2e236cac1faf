package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// PassengerFilter narrows passenger listings.
type PassengerFilter struct {
	Flight  string
	Airline string
	Removed *bool
}

// PassengerRepository encapsulates passenger persistence.
type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	GetByTicket(ctx context.Context, ticket int64) (*domain.Passenger, error)
	List(ctx context.Context, filter PassengerFilter) ([]domain.Passenger, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PassengerStatus, version int) error
	SetRemove(ctx context.Context, id int64, version int) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	CountFlagged(ctx context.Context) (int, error)
}

type passengerRepository struct {
	pool *pgxpool.Pool
}

// NewPassengerRepository instantiates repository.
func NewPassengerRepository(pool *pgxpool.Pool) PassengerRepository {
	return &passengerRepository{pool: pool}
}

const passengerColumns = `p.id, p.first_name, p.last_name, p.identification, p.ticket,
               p.flight, p.status, p.remove, p.version, p.created_at`

func (r *passengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	const query = `
        INSERT INTO passengers (first_name, last_name, identification, ticket, flight)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, status, remove, version, created_at`
	err := r.pool.QueryRow(ctx, query,
		passenger.FirstName,
		passenger.LastName,
		passenger.Identification,
		passenger.Ticket,
		passenger.Flight,
	).Scan(&passenger.ID, &passenger.Status, &passenger.Remove, &passenger.Version, &passenger.CreatedAt)
	return mapUniqueViolation(err, "ticket")
}

func (r *passengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	const query = `SELECT ` + passengerColumns + ` FROM passengers p WHERE p.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *passengerRepository) GetByTicket(ctx context.Context, ticket int64) (*domain.Passenger, error) {
	const query = `SELECT ` + passengerColumns + ` FROM passengers p WHERE p.ticket=$1`
	return r.fetchSingle(ctx, query, ticket)
}

func (r *passengerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Identification,
		&p.Ticket,
		&p.Flight,
		&p.Status,
		&p.Remove,
		&p.Version,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *passengerRepository) List(ctx context.Context, filter PassengerFilter) ([]domain.Passenger, error) {
	base := `SELECT ` + passengerColumns + `
             FROM passengers p JOIN flights f ON f.flight = p.flight`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Flight != "" {
		args = append(args, filter.Flight)
		clauses = append(clauses, fmt.Sprintf("p.flight=$%d", len(args)))
	}
	if filter.Airline != "" {
		args = append(args, filter.Airline)
		clauses = append(clauses, fmt.Sprintf("f.airline=$%d", len(args)))
	}
	if filter.Removed != nil {
		args = append(args, *filter.Removed)
		clauses = append(clauses, fmt.Sprintf("p.remove=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY p.ticket", base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(
			&p.ID,
			&p.FirstName,
			&p.LastName,
			&p.Identification,
			&p.Ticket,
			&p.Flight,
			&p.Status,
			&p.Remove,
			&p.Version,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpdateStatus applies a conditional write: the row must still carry the
// version the caller read, otherwise a concurrent writer won and no rows
// match.
func (r *passengerRepository) UpdateStatus(ctx context.Context, id int64, status domain.PassengerStatus, version int) error {
	const query = `
        UPDATE passengers SET status=$1, version=version+1
        WHERE id=$2 AND version=$3 AND remove=FALSE`
	cmd, err := r.pool.Exec(ctx, query, status, id, version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *passengerRepository) SetRemove(ctx context.Context, id int64, version int) error {
	const query = `
        UPDATE passengers SET remove=TRUE, version=version+1
        WHERE id=$1 AND version=$2 AND remove=FALSE`
	cmd, err := r.pool.Exec(ctx, query, id, version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteByIDs purges passengers together with their bags in one transaction.
func (r *passengerRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
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
            SELECT ticket FROM passengers WHERE id = ANY($1))`
	if _, err := tx.Exec(ctx, deleteBags, ids); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM passengers WHERE id = ANY($1)`, ids); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *passengerRepository) CountFlagged(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM passengers WHERE remove=TRUE`).Scan(&count)
	return count, err
}
