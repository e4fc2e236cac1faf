package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// BagFilter narrows bag listings.
type BagFilter struct {
	Ticket  int64
	Flight  string
	Airline string
}

// BagRepository encapsulates bag persistence. Locations are stored as jsonb
// tagged objects.
type BagRepository interface {
	Create(ctx context.Context, bag *domain.Bag) error
	GetByID(ctx context.Context, id int64) (*domain.Bag, error)
	List(ctx context.Context, filter BagFilter) ([]domain.Bag, error)
	UpdateLocation(ctx context.Context, id int64, location domain.BagLocation, version int) error
	DeleteByTicket(ctx context.Context, ticket int64) error
}

type bagRepository struct {
	pool *pgxpool.Pool
}

// NewBagRepository instantiates repository.
func NewBagRepository(pool *pgxpool.Pool) BagRepository {
	return &bagRepository{pool: pool}
}

func (r *bagRepository) Create(ctx context.Context, bag *domain.Bag) error {
	payload, err := json.Marshal(bag.Location)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO bags (ticket, location)
        VALUES ($1,$2)
        RETURNING id, version, created_at`
	return r.pool.QueryRow(ctx, query, bag.Ticket, payload).
		Scan(&bag.ID, &bag.Version, &bag.CreatedAt)
}

func (r *bagRepository) GetByID(ctx context.Context, id int64) (*domain.Bag, error) {
	const query = `SELECT id, ticket, location, version, created_at FROM bags WHERE id=$1`
	var bag domain.Bag
	var payload []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&bag.ID,
		&bag.Ticket,
		&payload,
		&bag.Version,
		&bag.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &bag.Location); err != nil {
		return nil, err
	}
	return &bag, nil
}

func (r *bagRepository) List(ctx context.Context, filter BagFilter) ([]domain.Bag, error) {
	base := `SELECT b.id, b.ticket, b.location, b.version, b.created_at
             FROM bags b
             JOIN passengers p ON p.ticket = b.ticket
             JOIN flights f ON f.flight = p.flight`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Ticket != 0 {
		args = append(args, filter.Ticket)
		clauses = append(clauses, fmt.Sprintf("b.ticket=$%d", len(args)))
	}
	if filter.Flight != "" {
		args = append(args, filter.Flight)
		clauses = append(clauses, fmt.Sprintf("p.flight=$%d", len(args)))
	}
	if filter.Airline != "" {
		args = append(args, filter.Airline)
		clauses = append(clauses, fmt.Sprintf("f.airline=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY b.id", base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Bag
	for rows.Next() {
		var bag domain.Bag
		var payload []byte
		if err := rows.Scan(
			&bag.ID,
			&bag.Ticket,
			&payload,
			&bag.Version,
			&bag.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &bag.Location); err != nil {
			return nil, err
		}
		result = append(result, bag)
	}
	return result, rows.Err()
}

// UpdateLocation applies a version-guarded conditional write.
func (r *bagRepository) UpdateLocation(ctx context.Context, id int64, location domain.BagLocation, version int) error {
	payload, err := json.Marshal(location)
	if err != nil {
		return err
	}
	const query = `
        UPDATE bags SET location=$1, version=version+1
        WHERE id=$2 AND version=$3`
	cmd, err := r.pool.Exec(ctx, query, payload, id, version)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bagRepository) DeleteByTicket(ctx context.Context, ticket int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bags WHERE ticket=$1`, ticket)
	return err
}
