package roadmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

// DefaultDocumentName keys the single row holding every user's roadmap.
const DefaultDocumentName = "user_roadmaps"

// Document is one whole user -> record map stored as a JSON payload.
type Document struct {
	Name      string         `gorm:"column:name;primaryKey;size:128" json:"name"`
	Payload   datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	Records   int            `gorm:"column:records;not null;default:0" json:"records"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Document) TableName() string { return "roadmap_document" }

type DocumentRepo interface {
	AutoMigrate(ctx context.Context) error
	Load(ctx context.Context) (map[string]domain.Record, error)
	SaveAll(ctx context.Context, records map[string]domain.Record) error
}

type documentRepo struct {
	db   *gorm.DB
	name string
	log  *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, name string, baseLog *logger.Logger) DocumentRepo {
	if name == "" {
		name = DefaultDocumentName
	}
	return &documentRepo{db: db, name: name, log: baseLog.With("repo", "RoadmapDocumentRepo")}
}

func (r *documentRepo) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Document{})
}

func (r *documentRepo) Load(ctx context.Context) (map[string]domain.Record, error) {
	var row Document
	err := r.db.WithContext(ctx).Where("name = ?", r.name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load roadmap document: %w", err)
	}
	out := map[string]domain.Record{}
	if len(row.Payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(row.Payload, &out); err != nil {
		return nil, fmt.Errorf("decode roadmap document: %w", err)
	}
	return out, nil
}

func (r *documentRepo) SaveAll(ctx context.Context, records map[string]domain.Record) error {
	if records == nil {
		records = map[string]domain.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode roadmap document: %w", err)
	}
	row := Document{
		Name:      r.name,
		Payload:   datatypes.JSON(raw),
		Records:   len(records),
		UpdatedAt: time.Now().UTC(),
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "records", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save roadmap document: %w", err)
	}
	return nil
}
