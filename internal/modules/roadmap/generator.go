package roadmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

// Backend is a text-generation service able to answer the roadmap prompt.
type Backend interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type GeneratorConfig struct {
	Primary       Backend
	PrimaryName   string
	Secondary     Backend
	SecondaryName string

	// Timeout bounds each generative attempt; expiry advances to the next state.
	Timeout time.Duration

	// BreakerFailures consecutive failures open a backend's circuit for BreakerCooldown.
	// Zero disables circuit breaking.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type Result struct {
	Roadmap domain.Roadmap
	Source  string
	// Model names the backend that produced the roadmap; empty for fallback.
	Model string
}

// Generator runs the one-way sequence PrimaryAttempt -> SecondaryAttempt -> Fallback.
// The fallback state is terminal and cannot fail, so Generate always returns a roadmap.
type Generator struct {
	log      *logger.Logger
	timeout  time.Duration
	attempts [stateFallback]*attempt
}

type state int

const (
	statePrimary state = iota
	stateSecondary
	stateFallback
)

func (s state) String() string {
	switch s {
	case statePrimary:
		return "primary"
	case stateSecondary:
		return "secondary"
	default:
		return "fallback"
	}
}

type attempt struct {
	source  string
	model   string
	backend Backend
	breaker *gobreaker.CircuitBreaker[map[string]any]
}

const defaultGenerationTimeout = 60 * time.Second

var tracer = otel.Tracer("github.com/yungbote/careerpath-backend/internal/modules/roadmap")

func NewGenerator(log *logger.Logger, cfg GeneratorConfig) *Generator {
	g := &Generator{
		log:     log.With("service", "RoadmapGenerator"),
		timeout: cfg.Timeout,
	}
	if g.timeout <= 0 {
		g.timeout = defaultGenerationTimeout
	}
	if cfg.Primary != nil {
		g.attempts[statePrimary] = newAttempt(g.log, domain.SourcePrimary, cfg.PrimaryName, cfg.Primary, cfg)
	}
	if cfg.Secondary != nil {
		g.attempts[stateSecondary] = newAttempt(g.log, domain.SourceSecondary, cfg.SecondaryName, cfg.Secondary, cfg)
	}
	return g
}

func newAttempt(log *logger.Logger, source, model string, b Backend, cfg GeneratorConfig) *attempt {
	a := &attempt{source: source, model: model, backend: b}
	if cfg.BreakerFailures == 0 {
		return a
	}
	threshold := cfg.BreakerFailures
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	a.breaker = gobreaker.NewCircuitBreaker[map[string]any](gobreaker.Settings{
		Name:        source,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about backend health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Generative backend circuit changed state", "backend", name, "from", from.String(), "to", to.String())
		},
	})
	return a
}

// Configured reports whether any generative backend is wired.
func (g *Generator) Configured() bool {
	return g.attempts[statePrimary] != nil || g.attempts[stateSecondary] != nil
}

func (g *Generator) Generate(ctx context.Context, req Request) Result {
	ctx, span := tracer.Start(ctx, "roadmap.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("career", req.Career))

	for st := statePrimary; ; st++ {
		if st == stateFallback {
			res := Result{Roadmap: Fallback(req.Career, req.Skills), Source: domain.SourceFallback}
			g.finish(span, res)
			return res
		}
		a := g.attempts[st]
		if a == nil {
			continue
		}
		rm, err := g.try(ctx, st, a, req)
		if err == nil {
			res := Result{Roadmap: rm, Source: a.source, Model: a.model}
			g.finish(span, res)
			return res
		}
		g.log.Warn("Roadmap generation attempt failed, advancing",
			"state", st.String(),
			"model", a.model,
			"career", req.Career,
			"error", err.Error(),
		)
	}
}

func (g *Generator) finish(span trace.Span, res Result) {
	span.SetAttributes(attribute.String("roadmap.source", res.Source))
	observability.Current().ObserveGeneration(res.Source)
	g.log.Info("Roadmap generated", "source", res.Source, "model", res.Model)
}

func (g *Generator) try(ctx context.Context, st state, a *attempt, req Request) (domain.Roadmap, error) {
	ctx, span := tracer.Start(ctx, "roadmap.attempt."+st.String())
	defer span.End()
	start := time.Now()

	actx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	system, user := BuildPrompt(req)
	call := func() (map[string]any, error) {
		text, err := a.backend.GenerateText(actx, system, user)
		if err != nil {
			return nil, err
		}
		return ParseOutput(text)
	}

	var (
		obj map[string]any
		err error
	)
	if a.breaker != nil {
		obj, err = a.breaker.Execute(call)
	} else {
		obj, err = call()
	}
	outcome := "ok"
	if err != nil {
		outcome = failureReason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	observability.Current().ObserveGenerationAttempt(st.String(), outcome, time.Since(start))
	if err != nil {
		return domain.Roadmap{}, err
	}

	rm := Normalize(obj)
	if rm.Degraded() {
		return domain.Roadmap{}, fmt.Errorf("%w: normalized to raw text", ErrMalformedOutput)
	}
	return rm, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, ErrMalformedOutput), errors.Is(err, ErrEmptyOutput):
		return "malformed"
	default:
		return "error"
	}
}
