package auth

import (
	"crypto/rand"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePassword produces a random 15-character alphanumeric password for
// newly registered accounts.
func GeneratePassword() string {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf)
}

var digitRe = regexp.MustCompile(`[0-9]`)

// ValidatePasswordComplexity enforces the minimum password policy: at least
// six characters with one uppercase letter, one lowercase letter, and one
// digit.
func ValidatePasswordComplexity(password string) error {
	if len(password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasUpper || !hasLower || !digitRe.MatchString(password) {
		return apperrors.NewValidationError(
			"password must contain an uppercase letter, a lowercase letter, and a digit", nil)
	}
	return nil
}
