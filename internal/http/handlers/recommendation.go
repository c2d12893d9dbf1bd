package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpath-backend/internal/http/response"
	"github.com/yungbote/careerpath-backend/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
}

func NewRecommendationHandler(recommendations services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// POST /recommend
// body: { "query": "...", "top_n": 5 }
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
		TopN  int    `json:"top_n"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.recommendations.Recommend(c.Request.Context(), services.RecommendInput{Query: req.Query, TopN: req.TopN})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"results":            res.Results,
		"extracted_skills":   res.ExtractedSkills,
		"top_career":         res.TopCareer,
		"top_career_roadmap": res.TopCareerRoadmap,
		"generation_source":  res.GenerationSource,
		"llm_used":           res.GenerationSource,
	})
}
