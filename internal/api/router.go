// Package api serves classification and statements over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/statement"
)

// Options are the rule sets and settings the API serves. Comparison may be
// nil.
type Options struct {
	Primary    *rules.Store
	Comparison *rules.Store
	Config     model.AggregationConfig
}

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(opts Options) http.Handler {
	tax := opts.Primary.Taxonomy()
	h := &Handlers{
		opts:   opts,
		placer: statement.NewPlacer(tax, statement.BalanceSheet(tax), statement.ProfitLoss(tax)),
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Reference data.
		r.Get("/taxonomy", h.GetTaxonomy)
		r.Get("/placement", h.GetPlacement)
		r.Get("/rules/{variant}", h.GetRules)

		// Engine.
		r.Post("/classify", h.Classify)
		r.Post("/statements", h.Statements)
	})

	return r
}
