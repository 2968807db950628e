package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Document is one keyed JSON record in the documents table.
type Document struct {
	Collection string         `gorm:"primaryKey;type:text"`
	Key        string         `gorm:"primaryKey;type:text"`
	Body       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

// PostgresConfig holds the relational fallback settings.
type PostgresConfig struct {
	DSN         string
	Silent      bool
	AutoMigrate bool
}

// PostgresStore keeps records as jsonb rows keyed by (collection, key).
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Silent {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&Document{}); err != nil {
			return nil, fmt.Errorf("failed to migrate documents table: %w", err)
		}
	}
	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an open gorm handle.
func NewPostgresStoreFromDB(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FetchCollection(ctx context.Context, path string) (map[string]Record, error) {
	if err := ValidateCollection(path); err != nil {
		return nil, err
	}
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", path).
		Order("key").
		Find(&docs).Error
	if err != nil {
		return nil, fetchErr("fetch collection", path, err)
	}

	out := make(map[string]Record, len(docs))
	for _, d := range docs {
		rec, err := decodeBody(d.Body)
		if err != nil {
			return nil, fetchErr("fetch collection", path, fmt.Errorf("record %q: %w", d.Key, err))
		}
		out[d.Key] = rec
	}
	return out, nil
}

func (s *PostgresStore) FetchRecord(ctx context.Context, path string) (Record, error) {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	err = s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", coll, key).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fetchErr("fetch record", path, err)
	}
	rec, err := decodeBody(doc.Body)
	if err != nil {
		return nil, fetchErr("fetch record", path, err)
	}
	return rec, nil
}

func (s *PostgresStore) PutRecord(ctx context.Context, path string, rec Record) error {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", path, err)
	}
	doc := Document{Collection: coll, Key: key, Body: datatypes.JSON(body)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&doc).Error
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func decodeBody(body datatypes.JSON) (Record, error) {
	if len(body) == 0 {
		return Record{}, nil
	}
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("body is not a JSON object")
	}
	return rec, nil
}
