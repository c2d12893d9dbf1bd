package redis

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

func TestRoadmapDocumentRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	key := "careerpath:test:" + t.Name()
	t.Cleanup(func() { _ = rdb.Del(context.Background(), key).Err() })

	doc := newRoadmapDocument(logger.NewNop(), rdb, key)

	empty, err := doc.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("Load empty: want 0 got=%d", len(empty))
	}

	in := map[string]domain.Record{
		"u1": {
			Career: "Cloud Engineer",
			Roadmap: domain.Roadmap{
				Beginner:     []domain.Item{{Name: "Linux", Status: domain.StatusCompleted}},
				Intermediate: []domain.Item{},
				Advanced:     []domain.Item{},
				MiniProjects: []domain.Item{},
				MainProjects: []domain.Item{},
			},
			GenerationSource: domain.SourceSecondary,
		},
	}
	if err := doc.SaveAll(ctx, in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	out, err := doc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := out["u1"]
	if got.GenerationSource != domain.SourceSecondary || got.Roadmap.Beginner[0].Status != domain.StatusCompleted {
		t.Fatalf("round trip: got=%+v", got)
	}
}

func TestRoadmapDocumentRequiresAddr(t *testing.T) {
	if _, err := NewRoadmapDocument(logger.NewNop(), "  ", ""); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
