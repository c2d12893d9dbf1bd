package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/careerpath-backend/internal/data/store"
	apphttp "github.com/yungbote/careerpath-backend/internal/http"
	httpH "github.com/yungbote/careerpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careerpath-backend/internal/http/middleware"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

type Middleware struct {
	// Auth is nil when JWT_SECRET_KEY is unset.
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Recommendation *httpH.RecommendationHandler
	Roadmap        *httpH.RoadmapHandler
}

func wireHandlers(log *logger.Logger, cfg Config, clients *Clients, svcs Services, roadmaps *store.RoadmapStore) Handlers {
	log.Info("Wiring handlers...")
	report := func() httpH.HealthReport {
		return httpH.HealthReport{
			ModelLoaded:          svcs.Ranker.Loaded(),
			Careers:              svcs.Ranker.Size(),
			GenerativeConfigured: svcs.Generator.Configured(),
			PersistenceEnabled:   cfg.Persist,
			PersistenceBackend:   clients.PersistBackend,
			Roadmaps:             roadmaps.Len(),
		}
	}
	return Handlers{
		Health:         httpH.NewHealthHandler(report),
		Recommendation: httpH.NewRecommendationHandler(svcs.Recommendation),
		Roadmap:        httpH.NewRoadmapHandler(svcs.Roadmap),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	if cfg.JWTSecretKey == "" {
		return Middleware{}
	}
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey)}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics, reg *prometheus.Registry) *apphttp.Server {
	return apphttp.NewServer(cfg.Address(), apphttp.RouterConfig{
		Log:                   log,
		CORSOrigins:           cfg.CORSAllowOrigins,
		Tracing:               cfg.OtelEnabled,
		Metrics:               metrics,
		MetricsHandler:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		AuthMiddleware:        middleware.Auth,
		HealthHandler:         handlers.Health,
		RecommendationHandler: handlers.Recommendation,
		RoadmapHandler:        handlers.Roadmap,
	})
}
