package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	roadmapmod "github.com/yungbote/careerpath-backend/internal/modules/roadmap"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/ctxutil"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
	"github.com/yungbote/careerpath-backend/internal/platform/apierr"
)

// RoadmapGenerator produces a roadmap for a career. It never fails.
type RoadmapGenerator interface {
	Generate(ctx context.Context, req roadmapmod.Request) roadmapmod.Result
}

// RoadmapStore is the per-user record store.
type RoadmapStore interface {
	Get(userID string) (domain.Record, error)
	Put(ctx context.Context, userID string, rec domain.Record) error
	Update(ctx context.Context, userID string, fn func(rec *domain.Record) error) (domain.Record, error)
}

type CreateRoadmapInput struct {
	UserID     string
	Career     string
	Skills     []string
	SoftSkills []string
	Interests  []string
	ResumeText string
}

type CreateRoadmapResult struct {
	UserID string
	Record domain.Record
}

type UpdateProgressInput struct {
	UserID   string
	ItemName string
	Status   string
}

type UpdateProgressResult struct {
	Message string
	Stage   domain.Stage
}

type RoadmapService interface {
	CreateRoadmap(ctx context.Context, in CreateRoadmapInput) (*CreateRoadmapResult, error)
	GetUserRoadmap(ctx context.Context, userID string) (*domain.Record, error)
	UpdateProgress(ctx context.Context, in UpdateProgressInput) (*UpdateProgressResult, error)
	GetProgress(ctx context.Context, userID string) (*domain.ProgressSummary, error)
}

type roadmapService struct {
	log       *logger.Logger
	generator RoadmapGenerator
	store     RoadmapStore
}

func NewRoadmapService(log *logger.Logger, generator RoadmapGenerator, store RoadmapStore) RoadmapService {
	return &roadmapService{
		log:       log.With("service", "RoadmapService"),
		generator: generator,
		store:     store,
	}
}

var (
	errUserIDRequired = errors.New("user_id is required")
	errCareerRequired = errors.New("career is required")
	errItemRequired   = errors.New("item_name is required")
)

// resolveUserID falls back to the authenticated subject when the request names no user.
func resolveUserID(ctx context.Context, userID string) (string, error) {
	if id := strings.TrimSpace(userID); id != "" {
		return id, nil
	}
	if ident := ctxutil.GetIdentity(ctx); ident != nil && strings.TrimSpace(ident.Subject) != "" {
		return strings.TrimSpace(ident.Subject), nil
	}
	return "", apierr.BadRequest("user_id_required", errUserIDRequired)
}

func (s *roadmapService) CreateRoadmap(ctx context.Context, in CreateRoadmapInput) (*CreateRoadmapResult, error) {
	userID, err := resolveUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	career := strings.TrimSpace(in.Career)
	if career == "" {
		return nil, apierr.BadRequest("career_required", errCareerRequired)
	}

	res := s.generator.Generate(ctx, roadmapmod.Request{
		Career:     career,
		Skills:     in.Skills,
		SoftSkills: in.SoftSkills,
		Interests:  in.Interests,
		ResumeText: in.ResumeText,
	})
	rec := domain.Record{Career: career, Roadmap: res.Roadmap, GenerationSource: res.Source}
	if err := s.store.Put(ctx, userID, rec); err != nil {
		return nil, apierr.From(fmt.Errorf("store roadmap: %w", err))
	}
	s.log.Info("Roadmap created", "user_id", userID, "career", career, "source", res.Source)
	return &CreateRoadmapResult{UserID: userID, Record: rec}, nil
}

func (s *roadmapService) GetUserRoadmap(ctx context.Context, userID string) (*domain.Record, error) {
	userID, err := resolveUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(userID)
	if err != nil {
		return nil, mapRoadmapError(err)
	}
	return &rec, nil
}

func (s *roadmapService) UpdateProgress(ctx context.Context, in UpdateProgressInput) (*UpdateProgressResult, error) {
	userID, err := resolveUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ItemName) == "" {
		return nil, apierr.BadRequest("item_name_required", errItemRequired)
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		observability.Current().ObserveProgressUpdate("invalid_status")
		return nil, apierr.BadRequest("invalid_status", err)
	}

	var stage domain.Stage
	_, err = s.store.Update(ctx, userID, func(rec *domain.Record) error {
		st, ok := roadmapmod.ApplyStatus(&rec.Roadmap, in.ItemName, status)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrItemNotFound, in.ItemName)
		}
		stage = st
		return nil
	})
	if err != nil {
		mapped := mapRoadmapError(err)
		observability.Current().ObserveProgressUpdate(mapped.Code)
		return nil, mapped
	}
	observability.Current().ObserveProgressUpdate("updated")
	s.log.Info("Progress updated", "user_id", userID, "stage", string(stage), "status", string(status))
	return &UpdateProgressResult{
		Message: fmt.Sprintf("Updated '%s' to '%s' for user %s", in.ItemName, status, userID),
		Stage:   stage,
	}, nil
}

func (s *roadmapService) GetProgress(ctx context.Context, userID string) (*domain.ProgressSummary, error) {
	userID, err := resolveUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(userID)
	if err != nil {
		return nil, mapRoadmapError(err)
	}
	summary := roadmapmod.Summarize(rec.Roadmap)
	return &summary, nil
}

func mapRoadmapError(err error) *apierr.Error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return apierr.NotFound("user_not_found", err)
	case errors.Is(err, domain.ErrItemNotFound):
		return apierr.NotFound("item_not_found", err)
	case errors.Is(err, domain.ErrInvalidStatus):
		return apierr.BadRequest("invalid_status", err)
	default:
		return apierr.From(err)
	}
}
