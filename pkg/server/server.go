package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/config"
	handlers "github.com/tarpaulin/tarpaulin/pkg/handlers/http"
	"github.com/tarpaulin/tarpaulin/pkg/infra/prometheus"
	"github.com/tarpaulin/tarpaulin/pkg/server/router"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Server interface {
	Run(ctx context.Context) error
	Shutdown() error
}

type APIServer struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Router     *fiber.App
	metricsApp *fiber.App
}

func NewAPIServer(cfg *config.Config, logger *logrus.Logger, routers ...router.ServerRouter) *APIServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          handlers.ErrorHandler(logger),
	})
	r.Server().NoDefaultServerHeader = true

	s := &APIServer{
		Config: cfg,
		Logger: logger,
		Router: r,
	}
	for _, rt := range routers {
		if err := rt.BuildRoutes(r); err != nil {
			logger.WithError(err).Error("failed to build routes")
		}
	}
	// registered last so it only catches unmatched paths
	r.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	if cfg.Metrics.Enabled {
		s.metricsApp = newMetricsApp()
	}
	return s
}

func newMetricsApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Gatherer(), promhttp.HandlerOpts{}),
	)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	return app
}

// Run serves the API and, when enabled, the metrics endpoint until either
// listener fails or ctx is cancelled.
func (s *APIServer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", s.Config.Server.Port)
		s.Logger.WithField("addr", addr).Info("starting api server")
		if err := s.Router.Listen(addr); err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	if s.metricsApp != nil {
		g.Go(func() error {
			addr := fmt.Sprintf(":%d", s.Config.Server.MetricsPort)
			s.Logger.WithField("addr", addr).Info("starting metrics server")
			if err := s.metricsApp.Listen(addr); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	} else {
		s.Logger.Info("prometheus metrics are disabled by configuration")
	}

	g.Go(func() error {
		<-ctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

func (s *APIServer) Shutdown() error {
	var first error
	if err := s.Router.ShutdownWithTimeout(shutdownTimeout); err != nil {
		first = err
	}
	if s.metricsApp != nil {
		if err := s.metricsApp.ShutdownWithTimeout(shutdownTimeout); err != nil && first == nil {
			first = err
		}
	}
	return first
}
