package store

import (
	"context"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
)

// Persistence stores the whole user -> record map as one document. SaveAll always
// receives the complete map, so every write costs O(total users).
type Persistence interface {
	Load(ctx context.Context) (map[string]domain.Record, error)
	SaveAll(ctx context.Context, records map[string]domain.Record) error
}

// NoopPersistence keeps everything in memory. Used when PERSIST=false.
type NoopPersistence struct{}

func (NoopPersistence) Load(context.Context) (map[string]domain.Record, error) { return nil, nil }

func (NoopPersistence) SaveAll(context.Context, map[string]domain.Record) error { return nil }

// UnavailablePersistence stands in for a backend that could not be opened. Every call
// reports Err, so the store starts empty and write failures are logged.
type UnavailablePersistence struct {
	Err error
}

func (u UnavailablePersistence) Load(context.Context) (map[string]domain.Record, error) {
	return nil, u.Err
}

func (u UnavailablePersistence) SaveAll(context.Context, map[string]domain.Record) error {
	return u.Err
}
