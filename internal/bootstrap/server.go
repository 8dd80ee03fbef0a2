package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmarchuk/flightroster/api"
	"github.com/dmarchuk/flightroster/config"
	"github.com/dmarchuk/flightroster/internal/metrics"
	"github.com/dmarchuk/flightroster/internal/service/flights"
	"github.com/dmarchuk/flightroster/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, passengerSvc passengers.PassengerUseCase, reg *metrics.Registry) error {
	engine := newEngine(cfg, flightSvc, passengerSvc, reg)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newEngine(cfg *config.Config, flightSvc flights.FlightUseCase, passengerSvc passengers.PassengerUseCase, reg *metrics.Registry) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(api.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	if reg != nil {
		engine.Use(api.Metrics(reg))
	}

	api.NewFlightHandler(flightSvc).Register(engine.Group("/flights"))
	api.NewPassengerHandler(passengerSvc).Register(engine.Group("/passengers"))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(http.StripPrefix("/docs",
			httpSwagger.Handler(httpSwagger.URL("/swagger/openapi.json")))))
	}

	return engine
}
