package cards

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedPayload(t *testing.T, db *gorm.DB, records []map[string]any) {
	t.Helper()

	loader, err := NewLoader(LoaderConfig{Database: db})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if _, err := loader.Run(context.Background(), writePayload(t, records)); err != nil {
		t.Fatalf("seed payload: %v", err)
	}
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestCardByScryfallIDAssemblesOwnedRows(t *testing.T) {
	db := openTestDB(t)
	id := uuid.NewString()
	tokenID := uuid.NewString()

	seedPayload(t, db, []map[string]any{
		payloadRecord("Goblin Instigator", map[string]any{
			"id":        id,
			"type_line": "Creature — Goblin",
			"colors":    []string{"R"},
			"keywords":  []string{"Haste"},
			"card_faces": []map[string]any{
				{"name": "Front", "mana_cost": "{R}", "type_line": "Creature — Goblin"},
				{"name": "Back", "mana_cost": "", "type_line": "Creature — Goblin"},
			},
			"all_parts": []map[string]any{
				{"id": id, "component": "combo_piece", "name": "Goblin Instigator",
					"type_line": "Creature — Goblin"},
				{"id": tokenID, "component": "token", "name": "Goblin",
					"type_line": "Token Creature — Goblin"},
			},
		}),
	})

	service := newTestService(t, db)
	detail, err := service.CardByScryfallID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetch by id: %v", err)
	}

	if detail.ScryfallID != id {
		t.Fatalf("unexpected id: %q", detail.ScryfallID)
	}
	if !reflect.DeepEqual(detail.CardTypes, []string{"Creature"}) {
		t.Fatalf("unexpected card types: %#v", detail.CardTypes)
	}
	if !reflect.DeepEqual(detail.ColorList, []string{"R"}) {
		t.Fatalf("unexpected colors: %#v", detail.ColorList)
	}
	if !reflect.DeepEqual(detail.KeywordList, []string{"Haste"}) {
		t.Fatalf("unexpected keywords: %#v", detail.KeywordList)
	}
	if len(detail.Faces) != 2 {
		t.Fatalf("expected both faces, got %d", len(detail.Faces))
	}
	// The card's own entry in its part list is filtered out of the view.
	if len(detail.Parts) != 1 || detail.Parts[0].Name != "Goblin" {
		t.Fatalf("unexpected parts: %#v", detail.Parts)
	}
}

func TestCardByScryfallIDNotFound(t *testing.T) {
	service := newTestService(t, openTestDB(t))

	_, err := service.CardByScryfallID(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCardBySetAndNumber(t *testing.T) {
	db := openTestDB(t)
	seedPayload(t, db, []map[string]any{
		payloadRecord("Shock", map[string]any{"set": "m21", "collector_number": "159"}),
	})

	service := newTestService(t, db)
	detail, err := service.CardBySetAndNumber(context.Background(), "m21", "159")
	if err != nil {
		t.Fatalf("fetch by set and number: %v", err)
	}
	if detail.Name != "Shock" {
		t.Fatalf("unexpected card: %q", detail.Name)
	}

	if _, err := service.CardBySetAndNumber(context.Background(), "m21", "999"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestRandomCard(t *testing.T) {
	db := openTestDB(t)
	seedPayload(t, db, manyRecords(3))

	service := newTestService(t, db)
	detail, err := service.RandomCard(context.Background())
	if err != nil {
		t.Fatalf("fetch random: %v", err)
	}
	if detail.Name == "" {
		t.Fatalf("expected a card, got %+v", detail)
	}
}

func TestSearchCardsPagination(t *testing.T) {
	db := openTestDB(t)

	records := make([]map[string]any, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, payloadRecord(fmt.Sprintf("Plains %02d", i), map[string]any{
			"colors": []string{"W"},
		}))
	}
	records = append(records, payloadRecord("Swamp", map[string]any{
		"colors": []string{"B"},
	}))
	seedPayload(t, db, records)

	service := newTestService(t, db)
	result, err := service.SearchCards(context.Background(), SearchQuery{
		Name:     "Plains",
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalCards != 30 {
		t.Fatalf("expected 30 matches, got %d", result.TotalCards)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}
	if len(result.Cards) != 10 {
		t.Fatalf("expected a full page, got %d", len(result.Cards))
	}
	if result.Cards[0].Name != "Plains 10" {
		t.Fatalf("unexpected page ordering, first = %q", result.Cards[0].Name)
	}
}

func TestSearchCardsByColor(t *testing.T) {
	db := openTestDB(t)
	seedPayload(t, db, []map[string]any{
		payloadRecord("Shock", map[string]any{"colors": []string{"R"}}),
		payloadRecord("Opt", map[string]any{"colors": []string{"U"}}),
		payloadRecord("Ornithopter", map[string]any{"colors": []string{}}),
	})

	service := newTestService(t, db)
	result, err := service.SearchCards(context.Background(), SearchQuery{
		Colors: []string{"R"},
		Page:   1,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalCards != 1 || result.Cards[0].Name != "Shock" {
		t.Fatalf("unexpected color search result: %+v", result)
	}
}

func TestPrintingsByName(t *testing.T) {
	db := openTestDB(t)
	seedPayload(t, db, []map[string]any{
		payloadRecord("Shock", map[string]any{
			"set": "m21", "set_name": "Core Set 2021", "collector_number": "159",
			"image_uris": map[string]any{"normal": "https://img.test/shock-m21.jpg"},
		}),
		payloadRecord("Shock", map[string]any{
			"set": "sta", "set_name": "Strixhaven Mystical Archive", "collector_number": "44",
		}),
		payloadRecord("Opt", map[string]any{"set": "m21"}),
	})

	service := newTestService(t, db)
	printings, err := service.PrintingsByName(context.Background(), "Shock")
	if err != nil {
		t.Fatalf("fetch printings: %v", err)
	}

	if len(printings) != 2 {
		t.Fatalf("expected both Shock printings, got %d", len(printings))
	}
	if printings[0].SetName != "Core Set 2021" || printings[1].SetName != "Strixhaven Mystical Archive" {
		t.Fatalf("unexpected printing order: %+v", printings)
	}
	if printings[0].ImageNormal == nil || *printings[0].ImageNormal != "https://img.test/shock-m21.jpg" {
		t.Fatalf("expected the image column carried through, got %+v", printings[0])
	}

	none, err := service.PrintingsByName(context.Background(), "Lightning Bolt")
	if err != nil {
		t.Fatalf("fetch printings of unknown name: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no printings, got %d", len(none))
	}
}

func TestArenaID(t *testing.T) {
	db := openTestDB(t)
	withArena := uuid.NewString()
	withoutArena := uuid.NewString()

	seedPayload(t, db, []map[string]any{
		payloadRecord("Shock", map[string]any{"id": withArena, "arena_id": 71571}),
		payloadRecord("Obscure Reprint", map[string]any{"id": withoutArena}),
	})

	service := newTestService(t, db)

	arenaID, err := service.ArenaID(context.Background(), withArena)
	if err != nil {
		t.Fatalf("fetch arena id: %v", err)
	}
	if arenaID == nil || *arenaID != 71571 {
		t.Fatalf("unexpected arena id: %v", arenaID)
	}

	arenaID, err = service.ArenaID(context.Background(), withoutArena)
	if err != nil {
		t.Fatalf("fetch missing arena id: %v", err)
	}
	if arenaID != nil {
		t.Fatalf("expected nil for a card without an arena id, got %d", *arenaID)
	}

	if _, err := service.ArenaID(context.Background(), uuid.NewString()); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestSearchCardsRejectsNonPositivePage(t *testing.T) {
	service := newTestService(t, openTestDB(t))

	if _, err := service.SearchCards(context.Background(), SearchQuery{Page: 0}); err == nil {
		t.Fatalf("expected an error for page 0")
	}
}
