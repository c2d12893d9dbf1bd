package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthReport describes what the process has loaded.
type HealthReport struct {
	ModelLoaded          bool
	Careers              int
	GenerativeConfigured bool
	PersistenceEnabled   bool
	PersistenceBackend   string
	Roadmaps             int
}

type HealthHandler struct {
	report func() HealthReport
}

func NewHealthHandler(report func() HealthReport) *HealthHandler {
	return &HealthHandler{report: report}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	var r HealthReport
	if h.report != nil {
		r = h.report()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":                "ok",
		"model_loaded":          r.ModelLoaded,
		"careers":               r.Careers,
		"generative_configured": r.GenerativeConfigured,
		"persistence_enabled":   r.PersistenceEnabled,
		"persistence_backend":   r.PersistenceBackend,
		"roadmaps":              r.Roadmaps,
	})
}
