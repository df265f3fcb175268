package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/archoffice/bff-admin/config"
	"github.com/archoffice/bff-admin/internal/controller"
	"github.com/archoffice/bff-admin/internal/infrastructure/registrationdata"
	appmiddleware "github.com/archoffice/bff-admin/internal/middleware"
	"github.com/archoffice/bff-admin/internal/repository"
	"github.com/archoffice/bff-admin/internal/service"
	"github.com/archoffice/bff-admin/internal/validator"
	"github.com/archoffice/bff-admin/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

const (
	ServiceName = "bff-admin"

	shutdownTimeout = 10 * time.Second
	healthTimeout   = 3 * time.Second
)

// Pinger is satisfied by the database pools checked by /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type App struct {
	Config       *config.Config
	Logger       zerolog.Logger
	Gateway      registrationdata.Gateway
	Invites      repository.InviteRepository
	Dispatcher   service.NotificationDispatcher
	HealthChecks map[string]Pinger

	Server  *echo.Echo
	Metrics *echo.Echo
}

// Build assembles both echo instances without starting them.
func (app *App) Build() error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	promMiddleware, err := echoprometheus.MiddlewareConfig{Registerer: registry}.ToMiddleware()
	if err != nil {
		return fmt.Errorf("creating metrics middleware: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = appmiddleware.ErrorHandler(app.Logger)
	e.JSONSerializer = validator.JSONSerializer{}

	e.Use(appmiddleware.Logger(app.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, controller.HeaderIdpUserID},
		AllowCredentials: true,
	}))
	e.Use(tracingMiddleware())
	e.Use(promMiddleware)

	svc := service.CreateUserService(app.Gateway, app.Invites, app.Dispatcher, app.Config.InviteTemplateID, app.Logger)
	controller.CreateController(e.Group(""), svc, validator.New(), app.Logger)

	e.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})
	e.GET("/health", app.health)

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	metrics.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))

	app.Server = e
	app.Metrics = metrics

	return nil
}

// Run serves the API and, when a metrics port is configured, the metrics
// listener until ctx is done, then shuts both down.
func (app *App) Run(ctx context.Context) error {
	if app.Server == nil {
		if err := app.Build(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("component", "App").Str("port", app.Config.ServicePort).Msg("O servidor foi iniciado com sucesso")
		if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	if app.Config.MetricsPort != "" {
		g.Go(func() error {
			if err := app.Metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return app.StopServer()
	})

	return g.Wait()
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.Metrics != nil {
		errs = append(errs, app.Metrics.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func (app *App) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, db := range app.HealthChecks {
		g.Go(func() error {
			if err := db.PingContext(gctx); err != nil {
				return fmt.Errorf("%s database: %w", name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log := appmiddleware.LoggerFrom(c, app.Logger)
		log.Error().Err(err).Str("component", "health").Msg("")
		return response.WriteFailResponse(c, http.StatusServiceUnavailable, err.Error())
	}

	return response.WriteSuccessResponse(c, "ok", nil)
}

func tracingMiddleware() echo.MiddlewareFunc {
	tracer := otel.Tracer(ServiceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			ctx, span := tracer.Start(ctx, fmt.Sprintf("[%s] %s", req.Method, c.Path()))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
