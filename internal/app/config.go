package app

import (
	"time"

	"github.com/yungbote/careerpath-backend/internal/platform/envutil"
)

const (
	PersistFile     = "file"
	PersistSQLite   = "sqlite"
	PersistPostgres = "postgres"
	PersistRedis    = "redis"
)

type Config struct {
	Port    string
	LogMode string

	Persist        bool
	PersistBackend string
	DataPath       string
	DBDSN          string
	RedisAddr      string
	RedisKey       string

	OpenAIAPIKey            string
	OpenAIBaseURL           string
	OpenAIModel             string
	OpenAISecondaryModel    string
	OpenAIMaxRetries        int
	OpenAIRequestsPerMinute int

	GenerationTimeout         time.Duration
	GenerationBreakerFailures int

	CatalogPath      string
	CareerNameColumn string
	RankCacheSize    int
	CORSAllowOrigins []string
	JWTSecretKey     string

	OtelEnabled     bool
	OtelEndpoint    string
	OtelHeaders     string
	OtelInsecure    bool
	OtelSampleRatio float64
	Environment     string
}

func LoadConfig() Config {
	return Config{
		Port:    envutil.String("PORT", "8000"),
		LogMode: envutil.String("LOG_MODE", "development"),

		Persist:        envutil.Bool("PERSIST", true),
		PersistBackend: envutil.String("PERSIST_BACKEND", PersistFile),
		DataPath:       envutil.String("DATA_PATH", "user_roadmaps.json"),
		DBDSN:          envutil.String("DB_DSN", ""),
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		RedisKey:       envutil.String("REDIS_ROADMAP_KEY", ""),

		OpenAIAPIKey:            envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:           envutil.String("OPENAI_BASE_URL", ""),
		OpenAIModel:             envutil.String("OPENAI_MODEL", "gpt-4o"),
		OpenAISecondaryModel:    envutil.String("OPENAI_SECONDARY_MODEL", "gpt-4o-mini"),
		OpenAIMaxRetries:        envutil.Int("OPENAI_MAX_RETRIES", 2),
		OpenAIRequestsPerMinute: envutil.Int("OPENAI_REQUESTS_PER_MINUTE", 0),

		GenerationTimeout:         envutil.Seconds("GENERATION_TIMEOUT_SECONDS", 30*time.Second),
		GenerationBreakerFailures: envutil.Int("GENERATION_BREAKER_FAILURES", 5),

		CatalogPath:      envutil.String("CAREERS_CATALOG_PATH", "careers.csv"),
		CareerNameColumn: envutil.String("CAREER_NAME_COLUMN", ""),
		RankCacheSize:    envutil.Int("RANK_CACHE_SIZE", 256),
		CORSAllowOrigins: envutil.CSV("CORS_ALLOW_ORIGINS", []string{"*"}),
		JWTSecretKey:     envutil.String("JWT_SECRET_KEY", ""),

		OtelEnabled:     envutil.Bool("OTEL_ENABLED", false),
		OtelEndpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelHeaders:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
		OtelInsecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OtelSampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
		Environment:     envutil.String("APP_ENV", "development"),
	}
}

func (c Config) Address() string { return ":" + c.Port }
