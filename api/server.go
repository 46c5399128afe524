/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/rosters/*      Roster, member, and watch-log operations
  /api/rules          Published rule catalog
  /api/eligibility    Stateless eligibility check
  /api/reset          Database reset (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/rosters", func(r chi.Router) {
			r.Get("/", h.ListRosters)
			r.Post("/", h.CreateRoster)

			r.Route("/{year}/{month}", func(r chi.Router) {
				r.Get("/", h.GetRoster)
				r.Get("/calendar", h.GetCalendar)
				r.Get("/expected", h.GetExpected)
				r.Get("/summary", h.GetSummary)

				r.Post("/people", h.AddPerson)
				r.Delete("/people/{name}", h.RemovePerson)
				r.Put("/people/{name}/availability", h.SetAvailability)

				r.Get("/watches", h.ListWatches)
				r.Post("/watches", h.RecordWatch)

				r.Post("/import", h.ImportTable)
				r.Post("/evaluate", h.Evaluate)
			})
		})

		r.Get("/rules", h.ListRules)
		r.Post("/eligibility", h.Eligibility)
		r.Post("/reset", h.ResetDatabase)
	})

	return r
}
