// Package server provides the HTTP handlers and routing over the data
// services, plus the scheduled cache maintenance.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/polarsquad/ecoestate/modules/digitransit"
	"github.com/polarsquad/ecoestate/modules/hsy"
	"github.com/polarsquad/ecoestate/modules/overpass"
	"github.com/polarsquad/ecoestate/modules/statfin"
	"github.com/polarsquad/ecoestate/modules/trends"
)

// MinPriceYear is the earliest year the StatFin price table covers in the
// shape this service queries it.
const MinPriceYear = 2010

// Config contains server configuration values.
type Config struct {
	Port string
}

// Services bundles the data services the handlers dispatch to. The caches
// behind them are constructed once at process start and injected.
type Services struct {
	Boundaries  hsy.Service
	GreenSpaces overpass.Service
	Walking     digitransit.Service
	Prices      statfin.Service
	Trends      trends.Service
}

// Server contains the configured router and the injected services.
type Server struct {
	cfg      Config
	router   *chi.Mux
	services Services
	logger   *logrus.Logger
	now      func() time.Time
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, services Services, logger *logrus.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		services: services,
		logger:   logger,
		now:      time.Now,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/postal-boundaries", s.handlePostalBoundaries)
		r.Get("/green-spaces", s.handleGreenSpaces)
		r.Get("/walking-distance", s.handleWalkingDistance)
		r.Get("/property-prices", s.handlePropertyPrices)
		r.Get("/price-trends", s.handlePriceTrends)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// SetNowForTest pins the clock used for price-year range validation.
func (s *Server) SetNowForTest(now func() time.Time) { s.now = now }
