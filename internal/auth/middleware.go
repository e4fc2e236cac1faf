package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/scope"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Middleware resolves the credential cookie into a typed identity exactly
// once per request, before handler dispatch.
type Middleware struct {
	tokens     *TokenManager
	users      repository.UserRepository
	cookieName string
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, cookieName string) *Middleware {
	return &Middleware{tokens: tokens, users: users, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr := c.Cookies(m.cookieName)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("missing credential")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// The account may have been deleted or re-roled since the token was
	// issued; the row is authoritative.
	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("account no longer exists")
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, scope.Identity{
		Username: user.Username,
		Role:     user.Role,
		Airline:  user.Airline,
	})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (scope.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return scope.Identity{}, false
	}
	identity, ok := val.(scope.Identity)
	return identity, ok
}

// RequireRoles ensures the caller holds one of the allowed roles.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
