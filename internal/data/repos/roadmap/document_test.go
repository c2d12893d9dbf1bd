package roadmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

func sqliteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "roadmaps.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func postgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	return db
}

func record(career string, status domain.Status) domain.Record {
	return domain.Record{
		Career: career,
		Roadmap: domain.Roadmap{
			Beginner:     []domain.Item{{Name: "Python", Status: status}},
			Intermediate: []domain.Item{},
			Advanced:     []domain.Item{},
			MiniProjects: []domain.Item{},
			MainProjects: []domain.Item{{Name: "Capstone", Status: domain.StatusPending}},
		},
		GenerationSource: domain.SourceFallback,
	}
}

func exerciseRepo(t *testing.T, repo DocumentRepo) {
	ctx := context.Background()
	if err := repo.AutoMigrate(ctx); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	empty, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("Load empty: want 0 records got=%d", len(empty))
	}

	if err := repo.SaveAll(ctx, map[string]domain.Record{"u1": record("Data Analyst", domain.StatusPending)}); err != nil {
		t.Fatalf("SaveAll first: %v", err)
	}
	if err := repo.SaveAll(ctx, map[string]domain.Record{
		"u1": record("Data Analyst", domain.StatusCompleted),
		"u2": record("Web Developer", domain.StatusPending),
	}); err != nil {
		t.Fatalf("SaveAll second: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load: want 2 records got=%d", len(got))
	}
	if got["u1"].Roadmap.Beginner[0].Status != domain.StatusCompleted {
		t.Fatalf("u1 not overwritten: %+v", got["u1"])
	}
	if got["u2"].Roadmap.MainProjects[0].Name != "Capstone" {
		t.Fatalf("u2 projects: %+v", got["u2"].Roadmap.MainProjects)
	}
}

func TestDocumentRepoSQLite(t *testing.T) {
	exerciseRepo(t, NewDocumentRepo(sqliteDB(t), "", logger.NewNop()))
}

func TestDocumentRepoPostgres(t *testing.T) {
	db := postgresDB(t)
	name := "test_" + t.Name()
	t.Cleanup(func() {
		_ = db.Where("name = ?", name).Delete(&Document{}).Error
	})
	exerciseRepo(t, NewDocumentRepo(db, name, logger.NewNop()))
}
