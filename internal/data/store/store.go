package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/observability"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

// RoadmapStore owns every user's roadmap record. Callers only ever see copies. The
// in-memory map is authoritative for the life of the process; durable writes that fail
// are logged and dropped.
type RoadmapStore struct {
	log         *logger.Logger
	persistence Persistence

	mu      sync.RWMutex
	records map[string]domain.Record
	version uint64

	persistMu sync.Mutex
	persisted uint64
}

// New loads the persisted document once. A missing or unreadable document starts the
// store empty.
func New(ctx context.Context, log *logger.Logger, p Persistence) *RoadmapStore {
	if p == nil {
		p = NoopPersistence{}
	}
	s := &RoadmapStore{
		log:         log.With("service", "RoadmapStore"),
		persistence: p,
		records:     map[string]domain.Record{},
	}
	loaded, err := p.Load(ctx)
	if err != nil {
		s.log.Warn("Failed to load persisted roadmaps, starting empty", "error", err.Error())
		return s
	}
	for id, rec := range loaded {
		s.records[id] = rec.Clone()
	}
	s.log.Info("Loaded persisted roadmaps", "count", len(s.records))
	return s
}

func (s *RoadmapStore) Get(userID string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return rec.Clone(), nil
}

// Put replaces the user's record wholesale and persists the whole map.
func (s *RoadmapStore) Put(ctx context.Context, userID string, rec domain.Record) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("put roadmap: empty user id")
	}
	s.mu.Lock()
	s.records[userID] = rec.Clone()
	version, snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, version, snap)
	return nil
}

// Update runs fn against the user's record under the write lock, so concurrent updates for
// the same user never lose writes. The record is stored and persisted only when fn
// returns nil.
func (s *RoadmapStore) Update(ctx context.Context, userID string, fn func(rec *domain.Record) error) (domain.Record, error) {
	s.mu.Lock()
	cur, ok := s.records[userID]
	if !ok {
		s.mu.Unlock()
		return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	next := cur.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return domain.Record{}, err
	}
	s.records[userID] = next
	version, snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, version, snap)
	return next.Clone(), nil
}

func (s *RoadmapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *RoadmapStore) snapshotLocked() (uint64, map[string]domain.Record) {
	s.version++
	snap := make(map[string]domain.Record, len(s.records))
	for id, rec := range s.records {
		snap[id] = rec.Clone()
	}
	return s.version, snap
}

// persist writes snapshots in version order; a snapshot older than the last one written
// is skipped.
func (s *RoadmapStore) persist(ctx context.Context, version uint64, snap map[string]domain.Record) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if version <= s.persisted {
		return
	}
	if err := s.persistence.SaveAll(context.WithoutCancel(ctx), snap); err != nil {
		observability.Current().ObservePersist("error")
		s.log.Error("Failed to persist roadmaps", "error", err.Error(), "records", len(snap))
		return
	}
	s.persisted = version
	observability.Current().ObservePersist("ok")
}
