package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/careerpath-backend/internal/clients/redis"
	"github.com/yungbote/careerpath-backend/internal/data/db"
	roadmaprepo "github.com/yungbote/careerpath-backend/internal/data/repos/roadmap"
	"github.com/yungbote/careerpath-backend/internal/data/store"
	"github.com/yungbote/careerpath-backend/internal/modules/career"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
	"github.com/yungbote/careerpath-backend/internal/platform/openai"
)

const defaultSQLitePath = "user_roadmaps.db"

type Clients struct {
	// Primary and Secondary are nil when no API key is configured.
	Primary   openai.Client
	Secondary openai.Client

	Persistence    store.Persistence
	PersistBackend string

	Catalog *career.Catalog

	closers []func() error
}

func (c *Clients) Close(log *logger.Logger) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Warn("client close failed", "error", err)
		}
	}
	c.closers = nil
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (*Clients, error) {
	log.Info("Wiring clients...")
	c := &Clients{}

	persistence, backend, err := wirePersistence(ctx, log, cfg, c)
	if err != nil {
		c.Close(log)
		return nil, err
	}
	c.Persistence = persistence
	c.PersistBackend = backend

	// Openai
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		primary, err := openai.NewClient(log, openai.Config{
			APIKey:            cfg.OpenAIAPIKey,
			BaseURL:           cfg.OpenAIBaseURL,
			Model:             cfg.OpenAIModel,
			MaxRetries:        cfg.OpenAIMaxRetries,
			RequestsPerMinute: cfg.OpenAIRequestsPerMinute,
		})
		if err != nil {
			c.Close(log)
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		c.Primary = primary
		if m := strings.TrimSpace(cfg.OpenAISecondaryModel); m != "" {
			c.Secondary = primary.WithModel(m)
		}
	} else {
		log.Warn("OPENAI_API_KEY not set; roadmaps will use the fallback templates")
	}

	// Careers catalog
	catalog, err := career.LoadCatalog(cfg.CatalogPath, cfg.CareerNameColumn)
	if err != nil {
		log.Warn("careers catalog unavailable; /recommend disabled", "path", cfg.CatalogPath, "error", err)
	} else {
		c.Catalog = catalog
	}
	return c, nil
}

// wirePersistence picks the document backend. A backend that cannot be opened is logged
// and replaced by one that reports the failure, so the process still starts with an empty,
// memory-only store. Only an unknown backend name is a startup error.
func wirePersistence(ctx context.Context, log *logger.Logger, cfg Config, c *Clients) (store.Persistence, string, error) {
	if !cfg.Persist {
		log.Info("Persistence disabled")
		return store.NoopPersistence{}, "none", nil
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.PersistBackend))
	switch backend {
	case "", PersistFile:
		return store.NewFilePersistence(cfg.DataPath), PersistFile, nil

	case PersistSQLite, PersistPostgres:
		p, err := openDocumentRepo(ctx, log, backend, cfg.DBDSN, c)
		if err != nil {
			return unavailable(log, backend, err), backend, nil
		}
		return p, backend, nil

	case PersistRedis:
		doc, err := redis.NewRoadmapDocument(log, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			return unavailable(log, backend, fmt.Errorf("init redis persistence: %w", err)), PersistRedis, nil
		}
		c.closers = append(c.closers, doc.Close)
		return doc, PersistRedis, nil
	}
	return nil, "", fmt.Errorf("unknown PERSIST_BACKEND %q", cfg.PersistBackend)
}

func openDocumentRepo(ctx context.Context, log *logger.Logger, backend, dsn string, c *Clients) (store.Persistence, error) {
	if dsn == "" && backend == PersistSQLite {
		dsn = defaultSQLitePath
	}
	svc, err := db.Open(log, backend, dsn)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", backend, err)
	}
	c.closers = append(c.closers, svc.Close)
	repo := roadmaprepo.NewDocumentRepo(svc.DB(), "", log)
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("%s automigrate: %w", backend, err)
	}
	return repo, nil
}

func unavailable(log *logger.Logger, backend string, err error) store.Persistence {
	log.Warn("Persistence backend unavailable, roadmaps are kept in memory only", "backend", backend, "error", err.Error())
	return store.UnavailablePersistence{Err: err}
}
