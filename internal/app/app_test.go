package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/careerpath-backend/internal/data/store"
	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PERSIST", "PERSIST_BACKEND", "DATA_PATH", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.Address() != ":8000" {
		t.Fatalf("address: want=:8000 got=%q", cfg.Address())
	}
	if !cfg.Persist || cfg.PersistBackend != PersistFile || cfg.DataPath != "user_roadmaps.json" {
		t.Fatalf("persistence defaults: got=%v/%q/%q", cfg.Persist, cfg.PersistBackend, cfg.DataPath)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("cors: got=%v", cfg.CORSAllowOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PERSIST", "false")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "7")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	cfg := LoadConfig()
	if cfg.Address() != ":9090" || cfg.Persist {
		t.Fatalf("got address=%q persist=%v", cfg.Address(), cfg.Persist)
	}
	if cfg.GenerationTimeout != 7*time.Second {
		t.Fatalf("timeout: want=7s got=%s", cfg.GenerationTimeout)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "http://b.test" {
		t.Fatalf("cors: got=%v", cfg.CORSAllowOrigins)
	}
}

func TestWirePersistence(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		cfg     Config
		backend string
		wantErr bool
	}{
		{"disabled", Config{Persist: false}, "none", false},
		{"file", Config{Persist: true, PersistBackend: "FILE", DataPath: filepath.Join(dir, "rm.json")}, PersistFile, false},
		{"sqlite", Config{Persist: true, PersistBackend: PersistSQLite, DBDSN: filepath.Join(dir, "rm.db")}, PersistSQLite, false},
		{"redis without addr", Config{Persist: true, PersistBackend: PersistRedis}, PersistRedis, false},
		{"unknown", Config{Persist: true, PersistBackend: "s3"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Clients{}
			defer c.Close(logger.NewNop())
			p, backend, err := wirePersistence(context.Background(), logger.NewNop(), tc.cfg, c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("wirePersistence: %v", err)
			}
			if backend != tc.backend {
				t.Fatalf("backend: want=%q got=%q", tc.backend, backend)
			}
			// Every backend starts empty.
			s := store.New(context.Background(), logger.NewNop(), p)
			if s.Len() != 0 {
				t.Fatalf("store should start empty")
			}
		})
	}
}

func TestWireServicesWithoutClients(t *testing.T) {
	log := logger.NewNop()
	s := store.New(context.Background(), log, nil)
	svcs, err := wireServices(log, Config{RankCacheSize: 8}, &Clients{}, s)
	if err != nil {
		t.Fatalf("wireServices: %v", err)
	}
	if svcs.Generator.Configured() {
		t.Fatalf("generator should be unconfigured without an API key")
	}
	if svcs.Ranker.Loaded() {
		t.Fatalf("ranker should be unloaded without a catalog")
	}
}

func TestWireClientsSurvivesUnreachableBackends(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"redis", Config{Persist: true, PersistBackend: PersistRedis, RedisAddr: "127.0.0.1:1"}},
		{"postgres", Config{Persist: true, PersistBackend: PersistPostgres,
			DBDSN: "host=127.0.0.1 port=1 user=careerpath dbname=careerpath sslmode=disable connect_timeout=1"}},
		{"postgres without dsn", Config{Persist: true, PersistBackend: PersistPostgres}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := logger.NewNop()
			tc.cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.csv")
			clients, err := wireClients(context.Background(), log, tc.cfg)
			if err != nil {
				t.Fatalf("wireClients: %v", err)
			}
			defer clients.Close(log)
			if clients.PersistBackend != tc.cfg.PersistBackend {
				t.Fatalf("backend: want=%q got=%q", tc.cfg.PersistBackend, clients.PersistBackend)
			}

			s := store.New(context.Background(), log, clients.Persistence)
			if s.Len() != 0 {
				t.Fatalf("store should start empty, got=%d", s.Len())
			}
			rec := domain.Record{Career: "Data Analyst", GenerationSource: domain.SourceFallback}
			if err := s.Put(context.Background(), "u1", rec); err != nil {
				t.Fatalf("Put with unreachable backend: %v", err)
			}
			if _, err := s.Get("u1"); err != nil {
				t.Fatalf("Get after Put: %v", err)
			}
		})
	}
}

func TestUnavailablePersistenceReportsError(t *testing.T) {
	cause := errors.New("dial refused")
	p := unavailable(logger.NewNop(), PersistPostgres, cause)
	if _, err := p.Load(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("Load: want=%v got=%v", cause, err)
	}
	if err := p.SaveAll(context.Background(), nil); !errors.Is(err, cause) {
		t.Fatalf("SaveAll: want=%v got=%v", cause, err)
	}
}
