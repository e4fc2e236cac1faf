package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/repository"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// GateHandler pins gate accounts to one flight at a time. While pinned,
// boarding, loading and departing apply to that flight only.
type GateHandler struct {
	assignments *auth.AssignmentStore
	flights     repository.FlightRepository
}

// NewGateHandler constructs handler.
func NewGateHandler(assignments *auth.AssignmentStore, flights repository.FlightRepository) *GateHandler {
	return &GateHandler{assignments: assignments, flights: flights}
}

// Get handles GET /gate/assignment.
func (h *GateHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	flight, err := h.assignments.Get(c.Context(), identity.Username)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.GateAssignmentResponse{Flight: flight}})
}

// Set handles POST /gate/assignment. The flight must exist, belong to the
// caller's airline and not have departed.
func (h *GateHandler) Set(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.GateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	number := strings.ToUpper(strings.TrimSpace(req.Flight))
	flight, err := h.flights.GetByNumber(c.Context(), number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("flight", nil)
		}
		return apperrors.MapError(err)
	}
	if !identity.Admin() && flight.Airline != identity.Airline {
		return apperrors.NewForbidden("flight belongs to another airline")
	}
	if flight.Departed {
		return apperrors.NewConflict("flight has already departed", nil)
	}

	if err := h.assignments.Set(c.Context(), identity.Username, flight.Flight); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.GateAssignmentResponse{Flight: flight.Flight}})
}

// Clear handles DELETE /gate/assignment.
func (h *GateHandler) Clear(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.assignments.Clear(c.Context(), identity.Username); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.GateAssignmentResponse{}})
}
