package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kopsha/micro-invoicer/internal/application/timesheet"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	infrapdf "github.com/kopsha/micro-invoicer/internal/infrastructure/pdf"
	"github.com/kopsha/micro-invoicer/internal/infrastructure/postgres"
	"github.com/kopsha/micro-invoicer/internal/infrastructure/rates"
	httpRouter "github.com/kopsha/micro-invoicer/internal/interfaces/http"
	"github.com/kopsha/micro-invoicer/pkg/config"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	registryRepo := postgres.NewRegistryRepository(pool)
	entityRepo := postgres.NewFiscalEntityRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registryUC := usecase.NewRegistryUseCase(registryRepo, entityRepo, invoiceRepo, log)
	contractUC := usecase.NewContractUseCase(registryRepo, contractRepo, entityRepo, log)
	issueUC := usecase.NewIssueInvoiceUseCase(txRunner, invoiceRepo, entityRepo, registryRepo, log)

	renderer := infrapdf.NewRenderer(cfg.PDF, log)
	timesheets := timesheet.NewSeeded()
	pdfUC := usecase.NewPDFUseCase(invoiceRepo, entityRepo, contractRepo, renderer, timesheets, log)

	rateProvider := rates.NewStaticProvider(nil)
	reportUC := usecase.NewReportUseCase(invoiceRepo, rateProvider, cfg.Report.Currency, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistryUC: registryUC,
		ContractUC: contractUC,
		IssueUC:    issueUC,
		PDFUC:      pdfUC,
		ReportUC:   reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
