package database

import (
	"fmt"
	"os"
	"path/filepath"

	"tune-go/internal/config"
	"tune-go/internal/tune"
)

// NewDatabaseFromConfig creates a tune.Database implementation based on the
// database config type. File-backed databases are migrated on open;
// in-memory databases get the full schema applied directly.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (tune.Database, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "favourites.db")
		db, err := NewSQLiteDatabase(dbPath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating favourites database: %w", err)
		}
		return db, nil
	case "memory":
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			return nil, err
		}
		if _, err := db.db.Exec(Schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
