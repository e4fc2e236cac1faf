package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/service"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// FlightsHandler exposes flight listing, creation and departure.
type FlightsHandler struct {
	flights *service.FlightService
}

// NewFlightsHandler constructs handler.
func NewFlightsHandler(flightService *service.FlightService) *FlightsHandler {
	return &FlightsHandler{flights: flightService}
}

// List handles GET /flights.
func (h *FlightsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	flights, err := h.flights.List(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFlightResponses(flights)})
}

// Create handles POST /admin/flights.
func (h *FlightsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	flight, err := h.flights.Create(c.Context(), identity, service.FlightCreateInput{
		Flight:      req.Flight,
		Gate:        req.Gate,
		Destination: req.Destination,
		Airline:     req.Airline,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFlightResponse(flight)})
}

// Depart handles PUT /flights/:flight.
func (h *FlightsHandler) Depart(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	flight, err := h.flights.Depart(c.Context(), identity, c.Params("flight"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFlightResponse(flight)})
}

// Delete handles DELETE /admin/flights. Passengers and bags of the deleted
// flights go with them.
func (h *FlightsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DeleteByIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.flights.Delete(c.Context(), identity, req.IDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": "deleted"})
}

// Removals handles GET /admin/removals.
func (h *FlightsHandler) Removals(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	counts, err := h.flights.Removals(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RemovalsResponse{
		Passengers: counts.Passengers,
		Flights:    counts.Flights,
	}})
}
