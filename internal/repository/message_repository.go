package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// MessageFilter narrows notice-board listings. Empty fields mean no filter.
type MessageFilter struct {
	Airline   string
	Recipient string
}

// MessageRepository encapsulates notice persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	List(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (airline, recipient, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.Airline,
		message.Recipient,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) List(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	query := `SELECT id, airline, recipient, body, created_at FROM messages ORDER BY id DESC`
	args := []any{}
	switch {
	case filter.Airline != "":
		query = `
        SELECT id, airline, recipient, body, created_at FROM messages
        WHERE airline=$1 AND (recipient=$2 OR recipient=$3)
        ORDER BY id DESC`
		args = append(args, filter.Airline, filter.Recipient, domain.RecipientAll)
	case filter.Recipient != "":
		// Ground crews carry no airline code; they see every airline's
		// notices addressed to their role or to everyone.
		query = `
        SELECT id, airline, recipient, body, created_at FROM messages
        WHERE recipient=$1 OR recipient=$2
        ORDER BY id DESC`
		args = append(args, filter.Recipient, domain.RecipientAll)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.Airline,
			&message.Recipient,
			&message.Body,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (r *messageRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = ANY($1)`, ids)
	return err
}
