package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// ContractHandler serves the service contract endpoints.
type ContractHandler struct {
	uc *usecase.ContractUseCase
}

// NewContractHandler builds the handler.
func NewContractHandler(uc *usecase.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Create registers a contract under a registry.
// POST /api/registries/:id/contracts
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	contract, err := h.uc.Create(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

// ListByRegistry lists the contracts of a registry.
// GET /api/registries/:id/contracts
func (h *ContractHandler) ListByRegistry(c *fiber.Ctx) error {
	contracts, err := h.uc.ListByRegistry(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contracts)
}

// GetByID returns one contract.
// GET /api/contracts/:id
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	contract, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contract)
}

// Update replaces the contract terms.
// PUT /api/contracts/:id
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	contract, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contract)
}

// Delete removes a contract.
// DELETE /api/contracts/:id
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
