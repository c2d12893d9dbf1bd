package roadmap

import (
	"testing"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
)

func TestApplyStatusMatchesCaseInsensitively(t *testing.T) {
	rm := Fallback("Data Analyst", nil)
	stage, ok := ApplyStatus(&rm, "  python ", domain.StatusCompleted)
	if !ok || stage != domain.StageBeginner {
		t.Fatalf("ApplyStatus: want=Beginner,true got=%q,%v", stage, ok)
	}
	if rm.Beginner[0].Status != domain.StatusCompleted {
		t.Fatalf("Python not updated: %+v", rm.Beginner[0])
	}
}

func TestApplyStatusSearchOrder(t *testing.T) {
	rm := Normalize(map[string]any{
		"Intermediate":  []any{"Docker"},
		"Advanced":      []any{"docker"},
		"Mini Projects": []any{"Docker"},
	})
	stage, ok := ApplyStatus(&rm, "DOCKER", domain.StatusCompleted)
	if !ok || stage != domain.StageIntermediate {
		t.Fatalf("stage: want=Intermediate got=%q", stage)
	}
	if rm.Advanced[0].Status != domain.StatusPending || rm.MiniProjects[0].Status != domain.StatusPending {
		t.Fatalf("only one item may change: %+v", rm)
	}

	stage, ok = ApplyStatus(&rm, "Docker", domain.StatusPending)
	if !ok || stage != domain.StageIntermediate || rm.Intermediate[0].Status != domain.StatusPending {
		t.Fatalf("second update: stage=%q item=%+v", stage, rm.Intermediate[0])
	}
}

func TestApplyStatusFallsThroughToProjects(t *testing.T) {
	rm := Fallback("Frontend Developer", nil)
	stage, ok := ApplyStatus(&rm, "real-time chat app", domain.StatusCompleted)
	if !ok || stage != domain.StageMainProjects {
		t.Fatalf("stage: want=Main Projects got=%q ok=%v", stage, ok)
	}
}

func TestApplyStatusUnknownItem(t *testing.T) {
	rm := Fallback("Data Analyst", nil)
	before := rm.Clone()
	if _, ok := ApplyStatus(&rm, "Quantum Teleportation", domain.StatusCompleted); ok {
		t.Fatalf("expected no match")
	}
	for _, stage := range domain.Stages {
		a, b := before.Items(stage), rm.Items(stage)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s changed: %+v -> %+v", stage, a[i], b[i])
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	rm := Fallback("Data Analyst", nil)
	ApplyStatus(&rm, "Python", domain.StatusCompleted)

	p := Summarize(rm)
	b := p.Summary[domain.StageBeginner]
	if b.Count != 6 || b.CompletedCount != 1 {
		t.Fatalf("beginner: got=%+v", b)
	}
	if b.Percent != 16.67 {
		t.Fatalf("beginner percent: want=16.67 got=%v", b.Percent)
	}
	if p.TotalItems != 20 || p.TotalCompleted != 1 {
		t.Fatalf("totals: items=%d completed=%d", p.TotalItems, p.TotalCompleted)
	}
	if p.OverallPercent != 5 {
		t.Fatalf("overall: want=5 got=%v", p.OverallPercent)
	}
	if len(p.Summary) != len(domain.Stages) {
		t.Fatalf("summary stages: want=%d got=%d", len(domain.Stages), len(p.Summary))
	}
}

func TestSummarizeEmptyStagesAreZero(t *testing.T) {
	p := Summarize(Normalize(map[string]any{"Beginner": []any{}}))
	for stage, sp := range p.Summary {
		if sp.Percent != 0 || sp.Count != 0 {
			t.Fatalf("%s: got=%+v", stage, sp)
		}
	}
	if p.OverallPercent != 0 {
		t.Fatalf("overall: want=0 got=%v", p.OverallPercent)
	}
}
