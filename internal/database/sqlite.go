package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bigdecks/catalog/internal/cards"
	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open establishes a SQLite connection and migrates the catalog schema.
func Open(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// The ingestion run owns this handle exclusively.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&cards.Card{}, &cards.CardFace{}, &cards.RelatedPart{}); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}

// Rebuild removes the catalog store file and recreates an empty schema.
func Rebuild(path string, logger *zap.Logger) (*gorm.DB, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove database file: %w", err)
	}
	if logger != nil {
		logger.Info("database file removed", zap.String("path", path))
	}
	return Open(path, logger)
}

// Close releases the underlying connection of a gorm handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
