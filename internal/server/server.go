// Package server exposes the status and rates endpoints of the relay.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const defaultRatesURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v2/accounting/od/avg_interest_rates?page[number]=1&page[size]=10"

const upstreamTimeout = 10 * time.Second

type Config struct {
	// RatesURL overrides the Treasury rates endpoint.
	RatesURL string
	Logger   *zap.SugaredLogger
}

type Server struct {
	app      *fiber.App
	ratesURL string
	client   *http.Client
	log      *zap.SugaredLogger
}

func New(cfg Config) *Server {
	if cfg.RatesURL == "" {
		cfg.RatesURL = defaultRatesURL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	s := &Server{
		ratesURL: cfg.RatesURL,
		client:   &http.Client{Timeout: upstreamTimeout},
		log:      cfg.Logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "sovereign-relay",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})
	s.app.Use(recover.New())

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/rates", s.handleRates)
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleRates proxies the Treasury rates API. Upstream responses other
// than 200, and transport failures, come back as an error object on a
// 200 response.
func (s *Server) handleRates(c *fiber.Ctx) error {
	req, err := http.NewRequestWithContext(c.UserContext(), http.MethodGet, s.ratesURL, nil)
	if err != nil {
		return s.ratesError(c, fiber.StatusBadGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.ratesError(c, fiber.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.ratesError(c, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.ratesError(c, fiber.StatusBadGateway, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (s *Server) ratesError(c *fiber.Ctx, code int, err error) error {
	if err != nil {
		s.log.Warnw("rates.fetch_failed", "code", code, "error", err)
	} else {
		s.log.Warnw("rates.upstream_status", "code", code)
	}
	return c.JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": "Failed to fetch rates from Treasury API",
	})
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Infow("server.listen", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
