package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// mapUniqueViolation converts duplicate-key failures into domain conflicts
// so callers see "already exists" instead of a raw database error.
func mapUniqueViolation(err error, resource string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.NewConflict(fmt.Sprintf("%s already exists", resource), map[string]any{
			"constraint": pgErr.ConstraintName,
		})
	}
	return err
}
