package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/careerpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careerpath-backend/internal/http/middleware"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	CORSOrigins    []string
	Tracing        bool
	Metrics        *observability.Metrics
	MetricsHandler http.Handler
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	RecommendationHandler *httpH.RecommendationHandler
	RoadmapHandler        *httpH.RoadmapHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware("careerpath-backend"))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.OptionalAuth())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/health", cfg.HealthHandler.Health)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	if cfg.RecommendationHandler != nil {
		r.POST("/recommend", cfg.RecommendationHandler.Recommend)
	}

	if cfg.RoadmapHandler != nil {
		r.POST("/roadmap", cfg.RoadmapHandler.CreateRoadmap)
		r.GET("/user_roadmap/:user_id", cfg.RoadmapHandler.GetUserRoadmap)
		r.POST("/update_progress", cfg.RoadmapHandler.UpdateProgress)
		r.GET("/progress/:user_id", cfg.RoadmapHandler.GetProgress)
	}

	return r
}
