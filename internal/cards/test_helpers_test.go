package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cards.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&Card{}, &CardFace{}, &RelatedPart{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

// payloadRecord builds a minimal well-formed upstream card object. Overrides
// are merged on top, with a nil value deleting the key.
func payloadRecord(name string, overrides map[string]any) map[string]any {
	record := map[string]any{
		"id":               uuid.NewString(),
		"name":             name,
		"layout":           "normal",
		"type_line":        "Instant",
		"cmc":              1.0,
		"collector_number": "1",
		"set":              "tst",
		"set_name":         "Test Set",
		"color_identity":   []string{},
		"keywords":         []string{},
		"legalities":       map[string]string{},
	}
	for key, value := range overrides {
		if value == nil {
			delete(record, key)
			continue
		}
		record[key] = value
	}
	return record
}

func writePayload(t *testing.T, records []map[string]any) string {
	t.Helper()

	encoded, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	path := filepath.Join(t.TempDir(), "default_cards.json")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	return path
}

func manyRecords(count int) []map[string]any {
	records := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, payloadRecord(fmt.Sprintf("Card %d", i), map[string]any{
			"collector_number": fmt.Sprintf("%d", i+1),
		}))
	}
	return records
}

func decodeRaw(t *testing.T, record map[string]any) *RawCard {
	t.Helper()

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("encode record: %v", err)
	}
	var raw RawCard
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return &raw
}
