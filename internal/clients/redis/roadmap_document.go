package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

const DefaultRoadmapKey = "careerpath:user_roadmaps"

// RoadmapDocument stores the whole user -> record map under a single key.
type RoadmapDocument interface {
	Load(ctx context.Context) (map[string]domain.Record, error)
	SaveAll(ctx context.Context, records map[string]domain.Record) error
	Close() error
}

type roadmapDocument struct {
	log *logger.Logger
	rdb goredis.UniversalClient
	key string
}

func NewRoadmapDocument(log *logger.Logger, addr, key string) (RoadmapDocument, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	doc := newRoadmapDocument(log, rdb, key)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The client reconnects on demand; reads and writes fail until redis is back.
		doc.log.Warn("Redis unreachable at startup", "addr", addr, "error", err.Error())
	}
	return doc, nil
}

func newRoadmapDocument(log *logger.Logger, rdb goredis.UniversalClient, key string) *roadmapDocument {
	if strings.TrimSpace(key) == "" {
		key = DefaultRoadmapKey
	}
	return &roadmapDocument{
		log: log.With("service", "RedisRoadmapDocument"),
		rdb: rdb,
		key: key,
	}
}

func (d *roadmapDocument) Load(ctx context.Context) (map[string]domain.Record, error) {
	if d == nil || d.rdb == nil {
		return nil, fmt.Errorf("redis roadmap document not initialized")
	}
	raw, err := d.rdb.Get(ctx, d.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return map[string]domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", d.key, err)
	}
	out := map[string]domain.Record{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.key, err)
	}
	return out, nil
}

func (d *roadmapDocument) SaveAll(ctx context.Context, records map[string]domain.Record) error {
	if d == nil || d.rdb == nil {
		return fmt.Errorf("redis roadmap document not initialized")
	}
	if records == nil {
		records = map[string]domain.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode roadmaps: %w", err)
	}
	if err := d.rdb.Set(ctx, d.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", d.key, err)
	}
	return nil
}

func (d *roadmapDocument) Close() error {
	if d == nil || d.rdb == nil {
		return nil
	}
	return d.rdb.Close()
}
