package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/BerylCAtieno/trip-planner-agent/internal/api"
	"github.com/BerylCAtieno/trip-planner-agent/internal/config"
	"github.com/BerylCAtieno/trip-planner-agent/internal/planner"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func main() {
	// Real environment variables win over .env entries.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.Load,
			provideGenerator,
			providePlanner,
			api.NewPlanHandler,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	if err := app.Err(); err != nil {
		log.Fatalf("Trip planner failed to start: %v", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	// A failed start has already run the stop hooks of everything started before it.
	if err := app.Start(startCtx); err != nil {
		log.Fatalf("Trip planner failed to start: %v", err)
	}

	sig := <-app.Done()
	log.Printf("Received %s, shutting down", sig)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("ERROR: Shutdown incomplete: %v", err)
	}
}

func provideGenerator(lc fx.Lifecycle, cfg config.Config) (planner.Generator, error) {
	gen, err := planner.NewGenerator(context.Background(), cfg.Provider, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	if closer, ok := gen.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}

	log.Printf("Using %s text generator", cfg.Provider)
	return gen, nil
}

func providePlanner(gen planner.Generator, cfg config.Config) *planner.Planner {
	return planner.New(gen, cfg.PromptOptions())
}

func provideRouter(cfg config.Config, h *api.PlanHandler) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(api.TraceIDMiddleware())
	router.Use(api.RequestLoggingMiddleware())

	api.RegisterRoutes(router, h)
	return router
}

func startServer(lc fx.Lifecycle, cfg config.Config, router *gin.Engine) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Bind here so a busy port fails fx startup instead of exiting later.
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Printf("Trip Planner Agent starting on port %s", cfg.Port)
			log.Printf("Plan endpoint available at: http://localhost:%s/plan", cfg.Port)
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("ERROR: Server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
