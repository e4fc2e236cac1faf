package service

import (
	"fmt"
	"regexp"

	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

var (
	flightNumberRe = regexp.MustCompile(`^[A-Za-z]{2}[0-9]{4}$`)
	emailRe        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe        = regexp.MustCompile(`^\+?[0-9][0-9\-\s]{6,18}$`)
)

// validateFlightNumber checks the two-letter, four-digit pattern.
func validateFlightNumber(number string) error {
	if !flightNumberRe.MatchString(number) {
		return apperrors.NewValidationError(
			fmt.Sprintf("flight number %q must match two letters followed by four digits", number), nil)
	}
	return nil
}

func validateIdentification(id int) error {
	if id < 100000 || id > 999999 {
		return apperrors.NewValidationError("identification must be a 6-digit number", nil)
	}
	return nil
}

func validateTicket(ticket int64) error {
	if ticket < 1000000000 || ticket > 9999999999 {
		return apperrors.NewValidationError("ticket must be a 10-digit number", nil)
	}
	return nil
}

func validateEmail(email string) error {
	if email != "" && !emailRe.MatchString(email) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid email %q", email), nil)
	}
	return nil
}

func validatePhone(phone string) error {
	if phone != "" && !phoneRe.MatchString(phone) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid phone %q", phone), nil)
	}
	return nil
}
