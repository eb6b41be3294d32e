package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Soborbo/bristolhouseclearances/app/controller"
	"github.com/Soborbo/bristolhouseclearances/app/router"
	"github.com/Soborbo/bristolhouseclearances/config"
	"github.com/Soborbo/bristolhouseclearances/db"
	"github.com/Soborbo/bristolhouseclearances/dispatch"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/repository"
	"github.com/Soborbo/bristolhouseclearances/service"
	"github.com/Soborbo/bristolhouseclearances/sheets"
)

// outboundTimeout bounds calls to the verification, distance, email and spreadsheet providers
const outboundTimeout = 15 * time.Second

// App holds the wired HTTP handler and the resources that need draining on shutdown
type App struct {
	Handler    http.Handler
	Dispatcher *dispatch.Dispatcher
}

// Initialize initializes the application. Collaborators without credentials are left out
// so their pipeline step is skipped.
func Initialize(cfg *config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: outboundTimeout}
	dispatcher := dispatch.New(cfg.DispatchWorkers, cfg.DispatchTimeout)

	deps := service.Collaborators{
		Dispatcher: dispatcher,
		AdminEmail: cfg.AdminEmail,
		FromEmail:  cfg.FromEmail,
	}

	if cfg.VerificationEnabled() {
		deps.Verifier = service.NewVerificationService(cfg.TurnstileSecretKey, httpClient)
	} else {
		log.Printf("⚠️  TURNSTILE_SECRET_KEY not set, submissions are not verified")
	}

	if cfg.EmailEnabled() {
		deps.Email = service.NewEmailService(cfg.ResendAPIKey, httpClient)
	} else {
		log.Printf("⚠️  Email not configured, notifications are disabled")
	}

	if cfg.SheetsEnabled() {
		sheetClient, err := sheets.NewClient(sheets.Config{
			SpreadsheetID:       cfg.SheetsID,
			ServiceAccountEmail: cfg.ServiceAccountEmail,
			PrivateKey:          cfg.ServiceAccountPrivateKey,
			HTTPClient:          httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
		}
		deps.Sheet = sheetClient
	} else {
		log.Printf("⚠️  Google Sheets not configured, submissions are not logged to a spreadsheet")
	}

	if cfg.DatabaseEnabled() {
		if err := db.InitDB(cfg.DatabaseConnString()); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		deps.Records = repository.NewQuoteRepository(db.DB)
	}

	optimizer := service.NewImageOptimizer(cfg.ImageCacheDir)
	if err := optimizer.EnsureCacheDir(); err != nil {
		log.Printf("⚠️  Image cache unavailable: %v", err)
	}

	controllers := &router.Controllers{
		Quote:    controller.NewQuoteController(service.NewQuoteService(pricing.Default(), deps)),
		Distance: controller.NewDistanceController(service.NewDistanceService(cfg.GoogleMapsAPIKey, httpClient)),
		Contact:  controller.NewContactController(service.NewContactService(deps)),
		Catalog:  controller.NewCatalogController(service.NewCatalogService(cfg.CatalogImageDir, optimizer)),
	}

	return &App{
		Handler:    router.SetupRoutes(controllers),
		Dispatcher: dispatcher,
	}, nil
}

// Close waits for in-flight side effects and releases the database connection
func (a *App) Close() error {
	a.Dispatcher.Wait()
	return db.CloseDB()
}
