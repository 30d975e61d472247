package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phigamnu/sistergreet/internal/handler/admin"
	"github.com/phigamnu/sistergreet/internal/handler/page"
	"github.com/phigamnu/sistergreet/internal/handler/sister"
	middlewarePkg "github.com/phigamnu/sistergreet/internal/middleware"
	"github.com/phigamnu/sistergreet/internal/service/audit"
	"github.com/phigamnu/sistergreet/internal/service/imageprobe"
	"github.com/phigamnu/sistergreet/internal/service/roster"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(rosterSvc *roster.Service, prober *imageprobe.Prober, auditSvc *audit.Service, adminHandler *admin.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	sisterHandler := sister.New(rosterSvc, prober, auditSvc)
	pageHandler := page.New(rosterSvc)

	r.Route("/api", func(api chi.Router) {
		sisterHandler.RegisterRoutes(api)
		adminHandler.RegisterRoutes(api)
	})

	pageHandler.RegisterRoutes(r)

	return r
}
