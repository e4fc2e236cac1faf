package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// AssignmentStore pins gate-role callers to a single flight. The pin lives
// in Redis keyed by username and holds until explicitly cleared or expired.
type AssignmentStore struct {
	client *redis.Client
	ttl    time.Duration
}

const assignmentPrefix = "gate-assignment:"

// NewAssignmentStore builds the store. A zero ttl means pins persist for a
// shift-length default of 12 hours.
func NewAssignmentStore(client *redis.Client, ttl time.Duration) *AssignmentStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AssignmentStore{client: client, ttl: ttl}
}

// Set pins the caller to a flight.
func (s *AssignmentStore) Set(ctx context.Context, username, flight string) error {
	if s == nil || s.client == nil {
		return errors.New("assignment store not configured")
	}
	return s.client.Set(ctx, assignmentPrefix+username, flight, s.ttl).Err()
}

// Get returns the pinned flight, or "" when the caller is unassigned.
func (s *AssignmentStore) Get(ctx context.Context, username string) (string, error) {
	if s == nil || s.client == nil {
		return "", nil
	}
	flight, err := s.client.Get(ctx, assignmentPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return flight, nil
}

// Clear releases the pin.
func (s *AssignmentStore) Clear(ctx context.Context, username string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, assignmentPrefix+username).Err()
}
