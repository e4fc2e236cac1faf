package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/service"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// BagsHandler exposes the baggage pipeline over HTTP.
type BagsHandler struct {
	bags *service.BagService
}

// NewBagsHandler constructs handler.
func NewBagsHandler(bagService *service.BagService) *BagsHandler {
	return &BagsHandler{bags: bagService}
}

// List handles GET /bags?flight=XX0000&ticket=1234567890.
func (h *BagsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var ticket int64
	if raw := c.Query("ticket"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("ticket must be numeric", nil)
		}
		ticket = parsed
	}

	bags, err := h.bags.List(c.Context(), identity, c.Query("flight"), ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBagResponses(bags)})
}

// Create handles POST /bags.
func (h *BagsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateBagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	bag, err := h.bags.Add(c.Context(), identity, service.BagCreateInput{
		Ticket:   req.Ticket,
		Terminal: req.Terminal,
		Counter:  req.Counter,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBagResponse(bag)})
}

// Move handles PUT /bags.
func (h *BagsHandler) Move(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MoveBagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	bag, err := h.bags.Move(c.Context(), identity, service.BagMoveInput{
		ID:       req.ID,
		Location: domain.BagLocationType(req.Location),
		Flight:   req.Flight,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBagResponse(bag)})
}

// Delete handles DELETE /bags.
func (h *BagsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DeleteBagsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.bags.Delete(c.Context(), identity, req.Ticket); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": "deleted"})
}
