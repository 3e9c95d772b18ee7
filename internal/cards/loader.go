package cards

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultBatchSize = 1000

var (
	errLoaderMissingDatabase = errors.New("cards: loader requires a database handle")
	errPayloadNotArray       = errors.New("cards: payload is not a JSON array")
)

// LoaderConfig carries the dependencies for a Loader.
type LoaderConfig struct {
	Database  *gorm.DB
	Logger    *zap.Logger
	BatchSize int
}

// Loader streams a bulk payload file and loads it into the catalog store in
// bounded-size transactions. The payload can be far larger than process
// memory, so records are decoded one at a time off a forward-only token
// stream and never held together.
type Loader struct {
	db        *gorm.DB
	logger    *zap.Logger
	batchSize int
}

// Stats aggregates the outcome of one ingestion run.
type Stats struct {
	Processed int
	Inserted  int
	Skipped   int
	Batches   int
	Elapsed   time.Duration
}

// NewLoader validates dependencies and returns a Loader.
func NewLoader(cfg LoaderConfig) (*Loader, error) {
	if cfg.Database == nil {
		return nil, errLoaderMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Loader{db: cfg.Database, logger: logger, batchSize: batchSize}, nil
}

// Run ingests the payload file at payloadPath. Per-record failures (decode,
// normalize, stage) are logged and skipped; the run keeps its forward
// progress. An error return means a whole-run failure: the open transaction
// is rolled back, but batches committed before the failure stay durable.
func (l *Loader) Run(ctx context.Context, payloadPath string) (Stats, error) {
	start := time.Now()
	stats := Stats{}

	file, err := os.Open(payloadPath)
	if err != nil {
		return stats, fmt.Errorf("open payload: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(bufio.NewReader(file))
	if err := expectArrayStart(decoder); err != nil {
		return stats, err
	}

	l.logger.Info("starting catalog population", zap.String("payload", payloadPath))

	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return stats, fmt.Errorf("begin transaction: %w", tx.Error)
	}

	pending := 0
	for decoder.More() {
		var raw RawCard
		if err := decoder.Decode(&raw); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				// The decoder has skipped past the offending value, so the
				// stream is still positioned on the next element.
				stats.Processed++
				stats.Skipped++
				l.logger.Warn("skipping malformed record",
					zap.String("name", displayName(&raw)), zap.Error(err))
				continue
			}
			tx.Rollback()
			return stats, fmt.Errorf("decode payload: %w", err)
		}
		stats.Processed++

		rows, err := Normalize(&raw)
		if err != nil {
			stats.Skipped++
			l.logger.Warn("skipping record",
				zap.String("name", displayName(&raw)), zap.Error(err))
			continue
		}

		if err := stage(tx, rows); err != nil {
			stats.Skipped++
			l.logger.Warn("error staging record",
				zap.String("name", rows.Core.Name), zap.Error(err))
			continue
		}
		stats.Inserted++
		pending++

		if pending == l.batchSize {
			if err := tx.Commit().Error; err != nil {
				return stats, fmt.Errorf("commit batch: %w", err)
			}
			stats.Batches++
			pending = 0
			l.logger.Info("batch committed",
				zap.Int("processed", stats.Processed),
				zap.Int("inserted", stats.Inserted),
				zap.Duration("elapsed", time.Since(start)))

			tx = l.db.WithContext(ctx).Begin()
			if tx.Error != nil {
				return stats, fmt.Errorf("begin transaction: %w", tx.Error)
			}
		}
	}

	if pending > 0 {
		if err := tx.Commit().Error; err != nil {
			return stats, fmt.Errorf("commit final batch: %w", err)
		}
		stats.Batches++
	} else {
		tx.Rollback()
	}

	stats.Elapsed = time.Since(start)
	l.logger.Info("catalog population complete",
		zap.Int("processed", stats.Processed),
		zap.Int("inserted", stats.Inserted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("batches", stats.Batches),
		zap.Duration("elapsed", stats.Elapsed))

	return stats, nil
}

// stage upserts the core row keyed by its external id and replaces the face
// and related-part rows it owns.
func stage(tx *gorm.DB, rows *CardRows) error {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scryfall_id"}},
		UpdateAll: true,
	}).Create(&rows.Core).Error; err != nil {
		return fmt.Errorf("upsert core row: %w", err)
	}

	if err := tx.Where("core_id = ?", rows.Core.ScryfallID).Delete(&CardFace{}).Error; err != nil {
		return fmt.Errorf("clear card faces: %w", err)
	}
	if len(rows.Faces) > 0 {
		if err := tx.Create(&rows.Faces).Error; err != nil {
			return fmt.Errorf("insert card faces: %w", err)
		}
	}

	if err := tx.Where("core_id = ?", rows.Core.ScryfallID).Delete(&RelatedPart{}).Error; err != nil {
		return fmt.Errorf("clear related parts: %w", err)
	}
	if len(rows.Parts) > 0 {
		if err := tx.Create(&rows.Parts).Error; err != nil {
			return fmt.Errorf("insert related parts: %w", err)
		}
	}

	return nil
}

func expectArrayStart(decoder *json.Decoder) error {
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("read payload head: %w", err)
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != '[' {
		return fmt.Errorf("%w: leading token %v", errPayloadNotArray, token)
	}
	return nil
}

func displayName(raw *RawCard) string {
	if raw.Name != "" {
		return raw.Name
	}
	return "unknown"
}
