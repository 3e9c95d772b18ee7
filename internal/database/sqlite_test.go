package database

import (
	"path/filepath"
	"testing"

	"github.com/bigdecks/catalog/internal/cards"
)

func TestOpenCreatesCatalogSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")

	db, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(db) //nolint:errcheck

	for _, table := range []string{"core", "card_faces", "all_parts"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %q after open", table)
		}
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
}

func TestRebuildDropsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")

	db, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	card := cards.Card{
		ScryfallID:      "4a2e428e-dd25-484c-bbc8-2d6ce10ef42c",
		Layout:          "normal",
		Name:            "Shock",
		TypeLine:        "Instant",
		Supertype:       "[]",
		Cardtype:        `["Instant"]`,
		Subtype:         "[]",
		ColorIdentity:   `["R"]`,
		Keywords:        "[]",
		CollectorNumber: "159",
		SetCode:         "m21",
		SetName:         "Core Set 2021",
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	rebuilt, err := Rebuild(path, nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	defer Close(rebuilt) //nolint:errcheck

	var count int64
	if err := rebuilt.Model(&cards.Card{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rebuild must start from an empty store, got %d rows", count)
	}
}

func TestRebuildToleratesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.db")

	db, err := Rebuild(path, nil)
	if err != nil {
		t.Fatalf("rebuild without existing file: %v", err)
	}
	defer Close(db) //nolint:errcheck
}
