package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

var validate = validator.New()

// Validate checks struct tags on a request payload and converts failures
// into a validation error listing the offending fields.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := map[string]any{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed on %q", fe.Tag())
		}
	}
	return apperrors.NewValidationError("invalid request payload", fields)
}
