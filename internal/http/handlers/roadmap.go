package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpath-backend/internal/http/response"
	"github.com/yungbote/careerpath-backend/internal/services"
)

type RoadmapHandler struct {
	roadmaps services.RoadmapService
}

func NewRoadmapHandler(roadmaps services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmaps: roadmaps}
}

// POST /roadmap
// body: { "user_id", "career", "skills"?, "soft_skills"?, "interests"?, "resume_text"? }
func (h *RoadmapHandler) CreateRoadmap(c *gin.Context) {
	var req struct {
		UserID     string   `json:"user_id"`
		Career     string   `json:"career"`
		Skills     []string `json:"skills"`
		SoftSkills []string `json:"soft_skills"`
		Interests  []string `json:"interests"`
		ResumeText string   `json:"resume_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.roadmaps.CreateRoadmap(c.Request.Context(), services.CreateRoadmapInput{
		UserID:     req.UserID,
		Career:     req.Career,
		Skills:     req.Skills,
		SoftSkills: req.SoftSkills,
		Interests:  req.Interests,
		ResumeText: req.ResumeText,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"user_id":           res.UserID,
		"career":            res.Record.Career,
		"roadmap":           res.Record.Roadmap,
		"generation_source": res.Record.GenerationSource,
		"llm_used":          res.Record.GenerationSource,
	})
}

// GET /user_roadmap/:user_id
func (h *RoadmapHandler) GetUserRoadmap(c *gin.Context) {
	rec, err := h.roadmaps.GetUserRoadmap(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

// POST /update_progress
// body: { "user_id", "item_name", "status": "pending" | "completed" }
func (h *RoadmapHandler) UpdateProgress(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id"`
		ItemName string `json:"item_name"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.roadmaps.UpdateProgress(c.Request.Context(), services.UpdateProgressInput{
		UserID:   req.UserID,
		ItemName: req.ItemName,
		Status:   req.Status,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": res.Message, "stage": res.Stage})
}

// GET /progress/:user_id
func (h *RoadmapHandler) GetProgress(c *gin.Context) {
	summary, err := h.roadmaps.GetProgress(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, summary)
}
