package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yungbote/careerpath-backend/internal/data/store"
	apphttp "github.com/yungbote/careerpath-backend/internal/http"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  *Clients
	Store    *store.RoadmapStore
	Services Services
	Server   *apphttp.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if m := strings.ToLower(cfg.LogMode); m == "prod" || m == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: "careerpath-backend",
		Environment: cfg.Environment,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     observability.ParseHeaders(cfg.OtelHeaders),
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.Init(reg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	roadmaps := store.New(ctx, log, clients.Persistence)
	log.Info("Roadmap store ready", "backend", clients.PersistBackend, "records", roadmaps.Len())

	svcs, err := wireServices(log, cfg, clients, roadmaps)
	if err != nil {
		clients.Close(log)
		log.Sync()
		return nil, err
	}

	handlers := wireHandlers(log, cfg, clients, svcs, roadmaps)
	middleware := wireMiddleware(log, cfg)
	server := wireServer(log, cfg, handlers, middleware, metrics, reg)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Store:        roadmaps,
		Services:     svcs,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until Shutdown is called.
func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Listening", "address", a.Cfg.Address())
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var err error
	if a.Server != nil {
		err = a.Server.Shutdown(ctx)
	}
	if a.otelShutdown != nil {
		if oerr := a.otelShutdown(ctx); oerr != nil {
			a.Log.Warn("otel shutdown failed", "error", oerr)
		}
	}
	if a.Clients != nil {
		a.Clients.Close(a.Log)
	}
	a.Log.Sync()
	return err
}
