package services

import (
	"context"
	"errors"
	"strings"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/modules/career"
	roadmapmod "github.com/yungbote/careerpath-backend/internal/modules/roadmap"
	pkgerrors "github.com/yungbote/careerpath-backend/internal/pkg/errors"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
	"github.com/yungbote/careerpath-backend/internal/platform/apierr"
)

const defaultTopN = 5

type RecommendInput struct {
	Query string
	TopN  int
}

type RecommendResult struct {
	Results         []career.Match
	ExtractedSkills []string
	TopCareer       string
	// TopCareerRoadmap is nil when there is no top career. It is never stored.
	TopCareerRoadmap *domain.Roadmap
	GenerationSource string
}

type RecommendationService interface {
	Recommend(ctx context.Context, in RecommendInput) (*RecommendResult, error)
}

type recommendationService struct {
	log       *logger.Logger
	ranker    career.Ranker
	generator RoadmapGenerator
}

func NewRecommendationService(log *logger.Logger, ranker career.Ranker, generator RoadmapGenerator) RecommendationService {
	return &recommendationService{
		log:       log.With("service", "RecommendationService"),
		ranker:    ranker,
		generator: generator,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, in RecommendInput) (*RecommendResult, error) {
	topN := in.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	matches, err := s.ranker.Rank(in.Query, topN)
	if err != nil {
		switch {
		case career.IsUnavailable(err):
			return nil, apierr.Unavailable("model_unavailable", err)
		case errors.Is(err, pkgerrors.ErrInvalidArgument):
			return nil, apierr.BadRequest("invalid_query", err)
		default:
			return nil, apierr.From(err)
		}
	}

	skills := career.ExtractSkills(in.Query)
	out := &RecommendResult{
		Results:          matches,
		ExtractedSkills:  skills,
		GenerationSource: domain.SourceFallback,
	}
	if len(matches) > 0 {
		out.TopCareer = strings.TrimSpace(matches[0].Career.Get(s.ranker.NameColumn()))
	}
	if out.TopCareer != "" {
		res := s.generator.Generate(ctx, roadmapmod.Request{Career: out.TopCareer, Skills: skills})
		out.TopCareerRoadmap = &res.Roadmap
		out.GenerationSource = res.Source
	}
	s.log.Debug("Careers ranked", "results", len(matches), "top_career", out.TopCareer)
	return out, nil
}
