package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// RouterDeps holds the use cases wired into the router.
type RouterDeps struct {
	RegistryUC *usecase.RegistryUseCase
	ContractUC *usecase.ContractUseCase
	IssueUC    *usecase.IssueInvoiceUseCase
	PDFUC      *usecase.PDFUseCase
	ReportUC   *usecase.ReportUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	registries := api.Group("/registries")
	registryHandler := NewRegistryHandler(deps.RegistryUC)
	registries.Post("/", registryHandler.Create)
	registries.Get("/", registryHandler.List)
	registries.Get("/:id", registryHandler.GetByID)
	registries.Put("/:id", registryHandler.Update)
	registries.Put("/:id/seller", registryHandler.UpdateSeller)
	registries.Delete("/:id", registryHandler.Delete)

	contractHandler := NewContractHandler(deps.ContractUC)
	registries.Post("/:id/contracts", contractHandler.Create)
	registries.Get("/:id/contracts", contractHandler.ListByRegistry)

	contracts := api.Group("/contracts")
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)
	contracts.Delete("/:id", contractHandler.Delete)

	invoiceHandler := NewInvoiceHandler(deps.IssueUC, deps.PDFUC)
	registries.Post("/:id/invoices", invoiceHandler.Issue)
	registries.Get("/:id/invoices", invoiceHandler.ListByRegistry)
	registries.Delete("/:id/invoices/:invoiceID", invoiceHandler.Discard)

	invoices := api.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/storno", invoiceHandler.Storno)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/timesheet", invoiceHandler.DownloadTimesheet)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/revenue", reportHandler.Revenue)
}
