package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// InvoiceHandler serves the invoice lifecycle and document endpoints.
type InvoiceHandler struct {
	issueUC *usecase.IssueInvoiceUseCase
	pdfUC   *usecase.PDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(issueUC *usecase.IssueInvoiceUseCase, pdfUC *usecase.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{issueUC: issueUC, pdfUC: pdfUC}
}

// Issue publishes the next invoice of a registry.
// POST /api/registries/:id/invoices
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	invoice, err := h.issueUC.Issue(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// ListByRegistry lists one page of a registry's invoices.
// GET /api/registries/:id/invoices?page=1&size=50
func (h *InvoiceHandler) ListByRegistry(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page: c.QueryInt("page"),
		Size: c.QueryInt("size"),
	}
	invoices, err := h.issueUC.ListByRegistry(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// Discard removes the most recent invoice and rewinds the counter.
// DELETE /api/registries/:id/invoices/:invoiceID
func (h *InvoiceHandler) Discard(c *fiber.Ctx) error {
	if err := h.issueUC.Discard(c.Context(), c.Params("id"), c.Params("invoiceID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID returns one invoice with its valuation.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.issueUC.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Storno marks a published invoice as reversed.
// POST /api/invoices/:id/storno
func (h *InvoiceHandler) Storno(c *fiber.Ctx) error {
	invoice, err := h.issueUC.Storno(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// DownloadPDF streams the invoice document.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	filename, data, err := h.pdfUC.RenderInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// DownloadTimesheet streams the standalone work log annex.
// GET /api/invoices/:id/timesheet
func (h *InvoiceHandler) DownloadTimesheet(c *fiber.Ctx) error {
	filename, data, err := h.pdfUC.RenderTimesheet(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
