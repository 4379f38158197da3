package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// RegistryHandler serves the registry lifecycle endpoints.
type RegistryHandler struct {
	uc *usecase.RegistryUseCase
}

// NewRegistryHandler builds the handler.
func NewRegistryHandler(uc *usecase.RegistryUseCase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

// Create opens a registry with its seller.
// POST /api/registries
func (h *RegistryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRegistryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	reg, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reg)
}

// List returns every registry.
// GET /api/registries
func (h *RegistryHandler) List(c *fiber.Ctx) error {
	regs, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(regs)
}

// GetByID returns one registry.
// GET /api/registries/:id
func (h *RegistryHandler) GetByID(c *fiber.Ctx) error {
	reg, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reg)
}

// Update changes the registry display name and default VAT.
// PUT /api/registries/:id
func (h *RegistryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRegistryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	reg, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reg)
}

// UpdateSeller replaces the seller identity used by future invoices.
// PUT /api/registries/:id/seller
func (h *RegistryHandler) UpdateSeller(c *fiber.Ctx) error {
	var in dto.FiscalEntityPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	reg, err := h.uc.UpdateSeller(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reg)
}

// Delete removes an empty registry.
// DELETE /api/registries/:id
func (h *RegistryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
