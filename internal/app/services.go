package app

import (
	"fmt"
	"time"

	"github.com/yungbote/careerpath-backend/internal/data/store"
	"github.com/yungbote/careerpath-backend/internal/modules/career"
	roadmapmod "github.com/yungbote/careerpath-backend/internal/modules/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
	"github.com/yungbote/careerpath-backend/internal/services"
)

const defaultBreakerCooldown = 30 * time.Second

type Services struct {
	Generator      *roadmapmod.Generator
	Ranker         career.Ranker
	Roadmap        services.RoadmapService
	Recommendation services.RecommendationService
}

func wireServices(log *logger.Logger, cfg Config, clients *Clients, roadmaps *store.RoadmapStore) (Services, error) {
	log.Info("Wiring services...")

	genCfg := roadmapmod.GeneratorConfig{
		Timeout:         cfg.GenerationTimeout,
		BreakerCooldown: defaultBreakerCooldown,
	}
	if cfg.GenerationBreakerFailures > 0 {
		genCfg.BreakerFailures = uint32(cfg.GenerationBreakerFailures)
	}
	if clients.Primary != nil {
		genCfg.Primary = clients.Primary
		genCfg.PrimaryName = clients.Primary.Model()
	}
	if clients.Secondary != nil {
		genCfg.Secondary = clients.Secondary
		genCfg.SecondaryName = clients.Secondary.Model()
	}
	generator := roadmapmod.NewGenerator(log, genCfg)

	ranker, err := career.NewRanker(log, clients.Catalog, cfg.RankCacheSize)
	if err != nil {
		return Services{}, fmt.Errorf("init career ranker: %w", err)
	}

	return Services{
		Generator:      generator,
		Ranker:         ranker,
		Roadmap:        services.NewRoadmapService(log, generator, roadmaps),
		Recommendation: services.NewRecommendationService(log, ranker, generator),
	}, nil
}
