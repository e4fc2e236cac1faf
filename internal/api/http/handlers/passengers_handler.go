package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/service"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// PassengersHandler exposes the passenger check-in workflow over HTTP.
type PassengersHandler struct {
	passengers *service.PassengerService
}

// NewPassengersHandler constructs handler.
func NewPassengersHandler(passengerService *service.PassengerService) *PassengersHandler {
	return &PassengersHandler{passengers: passengerService}
}

// List handles GET /passengers?flight=XX0000.
func (h *PassengersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	passengers, err := h.passengers.List(c.Context(), identity, c.Query("flight"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPassengerResponses(passengers)})
}

// Create handles POST /passengers.
func (h *PassengersHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreatePassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	passenger, err := h.passengers.Create(c.Context(), identity, service.PassengerCreateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Identification: req.Identification,
		Flight:         req.Flight,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPassengerResponse(passenger)})
}

// Update handles PUT /passengers. A status value advances the passenger;
// the flag field marks them for removal instead.
func (h *PassengersHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdatePassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if (req.Status != "") == req.Flag {
		return apperrors.NewValidationError("exactly one of status and flag must be set", nil)
	}

	var (
		passenger *domain.Passenger
		err       error
	)
	switch {
	case req.Flag:
		passenger, err = h.passengers.Flag(c.Context(), identity, req.ID)
	case domain.PassengerStatus(req.Status) == domain.StatusCheckedIn:
		passenger, err = h.passengers.CheckIn(c.Context(), identity, req.ID)
	case domain.PassengerStatus(req.Status) == domain.StatusBoarded:
		passenger, err = h.passengers.Board(c.Context(), identity, req.ID)
	default:
		return apperrors.NewValidationError("status must be checked-in or boarded", nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPassengerResponse(passenger)})
}

// Delete handles DELETE /passengers.
func (h *PassengersHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.passengers.Delete(c.Context(), identity, req.IDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": "deleted"})
}
