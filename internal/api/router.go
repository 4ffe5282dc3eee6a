package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/handlers"
	custommiddleware "github.com/pennyflow/Personal-Finance-Backend/internal/api/middleware"
	"github.com/pennyflow/Personal-Finance-Backend/internal/config"
	"github.com/pennyflow/Personal-Finance-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	transactionService *service.TransactionService,
	importService *service.ImportService,
	analysisService *service.AnalysisService,
	enrichmentService *service.EnrichmentService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService, importService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/import", transactionHandler.ImportTransactions)
			r.Get("/{uuid}", transactionHandler.GetTransaction)
			r.Put("/{uuid}", transactionHandler.UpdateTransaction)
			r.Delete("/{uuid}", transactionHandler.DeleteTransaction)

			if enrichmentService != nil {
				enrichmentHandler := handlers.NewEnrichmentHandler(enrichmentService)
				r.Post("/enrich", enrichmentHandler.Enrich)
			}
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(analysisService)
			r.Get("/", analysisHandler.GetAnalysis)
			r.Get("/snapshot", analysisHandler.GetSnapshot)
			r.Get("/transactions", analysisHandler.InRangeTransactions)
		})
	})

	return r
}
