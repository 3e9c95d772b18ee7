package cards

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestLoaderCommitsInBatches(t *testing.T) {
	db := openTestDB(t)
	payload := writePayload(t, manyRecords(2500))

	loader, err := NewLoader(LoaderConfig{Database: db, BatchSize: 1000})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	stats, err := loader.Run(context.Background(), payload)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Processed != 2500 || stats.Inserted != 2500 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Batches != 3 {
		t.Fatalf("expected 3 commits for 2500 records, got %d", stats.Batches)
	}

	var count int64
	if err := db.Model(&Card{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2500 {
		t.Fatalf("expected 2500 rows, got %d", count)
	}
}

func TestLoaderSkipsMalformedRecords(t *testing.T) {
	records := []map[string]any{
		payloadRecord("One", nil),
		payloadRecord("Two", nil),
		payloadRecord("Broken", map[string]any{"id": "not-a-uuid"}),
		payloadRecord("Three", nil),
		payloadRecord("Four", nil),
	}

	db := openTestDB(t)
	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	stats, err := loader.Run(context.Background(), writePayload(t, records))
	if err != nil {
		t.Fatalf("a bad record must not fail the run: %v", err)
	}
	if stats.Processed != 5 || stats.Inserted != 4 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	var count int64
	if err := db.Model(&Card{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 rows, got %d", count)
	}
}

func TestLoaderIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	payload := writePayload(t, manyRecords(10))

	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := loader.Run(context.Background(), payload); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&Card{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 10 {
		t.Fatalf("double ingestion must not duplicate rows, got %d", count)
	}
}

func TestLoaderUpsertConverges(t *testing.T) {
	db := openTestDB(t)
	id := uuid.NewString()

	first := payloadRecord("Before", map[string]any{
		"id":     id,
		"prices": map[string]any{"usd": "0.50"},
		"card_faces": []map[string]any{
			{"name": "Before A", "mana_cost": "{W}", "type_line": "Instant"},
			{"name": "Before B", "mana_cost": "{U}", "type_line": "Sorcery"},
		},
	})
	second := payloadRecord("After", map[string]any{
		"id":     id,
		"prices": map[string]any{"usd": "2.00"},
		"card_faces": []map[string]any{
			{"name": "After A", "mana_cost": "{W}", "type_line": "Instant"},
			{"name": "After B", "mana_cost": "{U}", "type_line": "Sorcery"},
		},
	})

	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if _, err := loader.Run(context.Background(), writePayload(t, []map[string]any{first})); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := loader.Run(context.Background(), writePayload(t, []map[string]any{second})); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var count int64
	if err := db.Model(&Card{}).Where("scryfall_id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row per external id, got %d", count)
	}

	var card Card
	if err := db.Where("scryfall_id = ?", id).Take(&card).Error; err != nil {
		t.Fatalf("fetch row: %v", err)
	}
	if card.Name != "After" {
		t.Fatalf("expected newer payload to win, got %q", card.Name)
	}
	if card.PriceUSD == nil || *card.PriceUSD != "2.00" {
		t.Fatalf("expected updated price, got %v", card.PriceUSD)
	}

	var faces []CardFace
	if err := db.Where("core_id = ?", id).Find(&faces).Error; err != nil {
		t.Fatalf("fetch faces: %v", err)
	}
	if len(faces) != 2 {
		t.Fatalf("faces must be replaced, not accumulated: got %d", len(faces))
	}
	if faces[0].Name != "After A" {
		t.Fatalf("expected replaced face, got %q", faces[0].Name)
	}
}

func TestLoaderFailsWhenPayloadMissing(t *testing.T) {
	db := openTestDB(t)
	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	if _, err := loader.Run(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing payload file")
	}
}

func TestLoaderFailsOnNonArrayPayload(t *testing.T) {
	db := openTestDB(t)
	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	path := filepath.Join(t.TempDir(), "object.json")
	if err := os.WriteFile(path, []byte(`{"object":"list"}`), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	if _, err := loader.Run(context.Background(), path); err == nil {
		t.Fatalf("expected an error for a non-array payload")
	}
}
