package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/torvik/inventory/internal/api/handler"
	mw "github.com/torvik/inventory/internal/api/middleware"
	"github.com/torvik/inventory/internal/config"
	"github.com/torvik/inventory/internal/core"
)

//go:embed docs/openapi.json
var openapiJSON []byte

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	pool        *pgxpool.Pool
	cfg         *config.Config
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	services := core.NewServices(pool)
	auditLogger := mw.NewAuditLogger(pool, logger)

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		pool:        pool,
		cfg:         cfg,
		auditLogger: auditLogger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// API documentation (no auth required)
	s.router.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiJSON)
	})
	s.router.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(scalarHTML))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Token))
		r.Use(s.auditLogger.Middleware)

		r.Route("/dcim", func(r chi.Router) {
			region := handler.NewRegion(s.services.Region)
			r.Get("/regions/", region.List)
			r.Post("/regions/", region.Create)
			r.Get("/regions/{id}/", region.Get)
			r.Put("/regions/{id}/", region.Update)
			r.Delete("/regions/{id}/", region.Delete)

			site := handler.NewSite(s.services.Site)
			r.Get("/sites/", site.List)
			r.Post("/sites/", site.Create)
			r.Get("/sites/export/", site.Export)
			r.Get("/sites/{id}/", site.Get)
			r.Put("/sites/{id}/", site.Update)
			r.Delete("/sites/{id}/", site.Delete)

			rackRole := handler.NewRackRole(s.services.RackRole)
			r.Get("/rack-roles/", rackRole.List)
			r.Post("/rack-roles/", rackRole.Create)
			r.Get("/rack-roles/{id}/", rackRole.Get)
			r.Put("/rack-roles/{id}/", rackRole.Update)
			r.Delete("/rack-roles/{id}/", rackRole.Delete)

			rack := handler.NewRack(s.services.Rack)
			r.Get("/racks/", rack.List)
			r.Post("/racks/", rack.Create)
			r.Get("/racks/{id}/", rack.Get)
			r.Put("/racks/{id}/", rack.Update)
			r.Delete("/racks/{id}/", rack.Delete)

			manufacturer := handler.NewManufacturer(s.services.Manufacturer)
			r.Get("/manufacturers/", manufacturer.List)
			r.Post("/manufacturers/", manufacturer.Create)
			r.Get("/manufacturers/{id}/", manufacturer.Get)
			r.Put("/manufacturers/{id}/", manufacturer.Update)
			r.Delete("/manufacturers/{id}/", manufacturer.Delete)

			deviceType := handler.NewDeviceType(s.services.DeviceType)
			r.Get("/device-types/", deviceType.List)
			r.Post("/device-types/", deviceType.Create)
			r.Get("/device-types/{id}/", deviceType.Get)
			r.Put("/device-types/{id}/", deviceType.Update)
			r.Delete("/device-types/{id}/", deviceType.Delete)

			deviceRole := handler.NewDeviceRole(s.services.DeviceRole)
			r.Get("/device-roles/", deviceRole.List)
			r.Post("/device-roles/", deviceRole.Create)
			r.Get("/device-roles/{id}/", deviceRole.Get)
			r.Put("/device-roles/{id}/", deviceRole.Update)
			r.Delete("/device-roles/{id}/", deviceRole.Delete)

			device := handler.NewDevice(s.services.Device)
			r.Get("/devices/", device.List)
			r.Post("/devices/", device.Create)
			r.Get("/devices/{id}/", device.Get)
			r.Put("/devices/{id}/", device.Update)
			r.Delete("/devices/{id}/", device.Delete)
		})

		r.Route("/ipam", func(r chi.Router) {
			prefix := handler.NewPrefix(s.services.Prefix)
			r.Get("/prefixes/", prefix.List)
			r.Post("/prefixes/", prefix.Create)
			r.Get("/prefixes/{id}/", prefix.Get)
			r.Put("/prefixes/{id}/", prefix.Update)
			r.Delete("/prefixes/{id}/", prefix.Delete)

			vlan := handler.NewVLAN(s.services.VLAN)
			r.Get("/vlans/", vlan.List)
			r.Post("/vlans/", vlan.Create)
			r.Get("/vlans/{id}/", vlan.Get)
			r.Put("/vlans/{id}/", vlan.Update)
			r.Delete("/vlans/{id}/", vlan.Delete)
		})

		r.Route("/tenancy", func(r chi.Router) {
			tenant := handler.NewTenant(s.services.Tenant)
			r.Get("/tenants/", tenant.List)
			r.Post("/tenants/", tenant.Create)
			r.Get("/tenants/{id}/", tenant.Get)
			r.Put("/tenants/{id}/", tenant.Update)
			r.Delete("/tenants/{id}/", tenant.Delete)
		})

		r.Route("/circuits", func(r chi.Router) {
			provider := handler.NewProvider(s.services.Provider)
			r.Get("/providers/", provider.List)
			r.Post("/providers/", provider.Create)
			r.Get("/providers/{id}/", provider.Get)
			r.Put("/providers/{id}/", provider.Update)
			r.Delete("/providers/{id}/", provider.Delete)

			circuitType := handler.NewCircuitType(s.services.CircuitType)
			r.Get("/circuit-types/", circuitType.List)
			r.Post("/circuit-types/", circuitType.Create)
			r.Get("/circuit-types/{id}/", circuitType.Get)
			r.Put("/circuit-types/{id}/", circuitType.Update)
			r.Delete("/circuit-types/{id}/", circuitType.Delete)

			circuit := handler.NewCircuit(s.services.Circuit)
			r.Get("/circuits/", circuit.List)
			r.Post("/circuits/", circuit.Create)
			r.Get("/circuits/{id}/", circuit.Get)
			r.Put("/circuits/{id}/", circuit.Update)
			r.Delete("/circuits/{id}/", circuit.Delete)

			termination := handler.NewCircuitTermination(s.services.CircuitTermination)
			r.Get("/circuit-terminations/", termination.List)
			r.Post("/circuit-terminations/", termination.Create)
			r.Get("/circuit-terminations/{id}/", termination.Get)
			r.Put("/circuit-terminations/{id}/", termination.Update)
			r.Delete("/circuit-terminations/{id}/", termination.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			token := handler.NewToken(s.services.Token)
			r.Get("/tokens/", token.List)
			r.Post("/tokens/", token.Create)
			r.Get("/tokens/{id}/", token.Get)
			r.Delete("/tokens/{id}/", token.Delete)
		})

		r.Route("/extras", func(r chi.Router) {
			search := handler.NewSearch(s.services.Search)
			r.Get("/search", search.Search)
			r.Get("/search/", search.Search)

			auditLog := handler.NewAuditLog(s.services.AuditLog)
			r.Get("/audit-log/", auditLog.List)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

// Close stops the async audit writer.
func (s *Server) Close() {
	s.auditLogger.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

const scalarHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Inventory API</title>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
  <script id="api-reference" data-url="/docs/openapi.json"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
