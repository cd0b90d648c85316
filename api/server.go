/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend tooling

ROUTE GROUPS:
  /api/employees/*   Employee management, postings, range queries
  /api/union/*       Service charges by union member id
  /api/payroll/*     Totals, runs, payslips
  /api/undo, /api/reset, /api/history

SECURITY NOTE:
  No authentication middleware. The facade is meant for trusted
  internal callers.

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
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Post("/", h.CreateEmployee)
			r.Get("/count", h.EmployeeCount)
			r.Get("/search", h.SearchByName)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.RemoveEmployee)
				r.Get("/attributes/{key}", h.GetAttribute)
				r.Put("/attributes/{key}", h.UpdateAttribute)
				r.Post("/timecards", h.PostTimecard)
				r.Post("/sales", h.PostSale)
				r.Get("/hours/normal", h.GetNormalHours)
				r.Get("/hours/overtime", h.GetOvertimeHours)
				r.Get("/sales", h.GetSales)
				r.Get("/charges", h.GetServiceCharges)
			})
		})

		// Union routes
		r.Route("/union", func(r chi.Router) {
			r.Post("/{memberID}/charges", h.PostServiceCharge)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/total", h.GetTotalPayroll)
			r.Post("/run", h.RunPayroll)
			r.Post("/payslip", h.GeneratePayslip)
		})

		// System routes
		r.Post("/undo", h.Undo)
		r.Post("/reset", h.Reset)
		r.Get("/history", h.GetHistory)
	})

	return r
}
