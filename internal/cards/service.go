package cards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrCardNotFound indicates that no core row matched the lookup.
	ErrCardNotFound = errors.New("cards: card not found")

	errServiceMissingDatabase = errors.New("cards: service requires a database handle")
	errInvalidPage            = errors.New("cards: page must be positive")
)

// ServiceConfig carries the dependencies for a Service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service provides read-only access to the committed catalog. Owned face and
// related-part collections are reassembled through keyed secondary lookups,
// mirroring the decomposition the normalizer performed on the way in.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService validates dependencies and returns a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errServiceMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: cfg.Database, logger: logger}, nil
}

// CardDetail is a core row with its decoded array fields and owned
// collections attached.
type CardDetail struct {
	Card

	Supertypes   []string      `json:"supertypes"`
	CardTypes    []string      `json:"card_types"`
	Subtypes     []string      `json:"subtypes"`
	ColorList    []string      `json:"color_list,omitempty"`
	IdentityList []string      `json:"color_identity_list"`
	KeywordList  []string      `json:"keyword_list"`
	Faces        []CardFace    `json:"faces,omitempty"`
	Parts        []RelatedPart `json:"parts,omitempty"`
}

// CardByScryfallID fetches one card by its upstream identifier.
func (s *Service) CardByScryfallID(ctx context.Context, scryfallID string) (*CardDetail, error) {
	var card Card
	err := s.db.WithContext(ctx).Where("scryfall_id = ?", scryfallID).Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, scryfallID)
		}
		return nil, fmt.Errorf("fetch card %s: %w", scryfallID, err)
	}
	return s.assemble(ctx, &card)
}

// RandomCard fetches one card at random.
func (s *Service) RandomCard(ctx context.Context) (*CardDetail, error) {
	var card Card
	err := s.db.WithContext(ctx).Order("RANDOM()").Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("fetch random card: %w", err)
	}
	return s.assemble(ctx, &card)
}

// CardBySetAndNumber fetches one card by set code and collector number.
func (s *Service) CardBySetAndNumber(ctx context.Context, setCode, collectorNumber string) (*CardDetail, error) {
	var card Card
	err := s.db.WithContext(ctx).
		Where("set_code = ? AND collector_number = ?", setCode, collectorNumber).
		Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrCardNotFound, setCode, collectorNumber)
		}
		return nil, fmt.Errorf("fetch card %s/%s: %w", setCode, collectorNumber, err)
	}
	return s.assemble(ctx, &card)
}

// Printing is one printing of a named card, reduced to the columns a picker
// needs: identity, set, and images.
type Printing struct {
	ScryfallID      string  `gorm:"column:scryfall_id" json:"scryfall_id"`
	SetName         string  `gorm:"column:set_name" json:"set_name"`
	ImagePNG        *string `gorm:"column:png" json:"png,omitempty"`
	ImageBorderCrop *string `gorm:"column:border_crop" json:"border_crop,omitempty"`
	ImageArtCrop    *string `gorm:"column:art_crop" json:"art_crop,omitempty"`
	ImageLarge      *string `gorm:"column:large" json:"large,omitempty"`
	ImageNormal     *string `gorm:"column:normal" json:"normal,omitempty"`
	ImageSmall      *string `gorm:"column:small" json:"small,omitempty"`
}

// PrintingsByName lists every printing sharing the exact card name.
func (s *Service) PrintingsByName(ctx context.Context, name string) ([]Printing, error) {
	var printings []Printing
	err := s.db.WithContext(ctx).Model(&Card{}).
		Where("name = ?", name).
		Order("set_code, collector_number").
		Find(&printings).Error
	if err != nil {
		return nil, fmt.Errorf("fetch printings of %q: %w", name, err)
	}
	return printings, nil
}

// ArenaID reports the Arena identifier for a card; nil when the printing has
// none.
func (s *Service) ArenaID(ctx context.Context, scryfallID string) (*int, error) {
	var card Card
	err := s.db.WithContext(ctx).
		Select("arena_id").
		Where("scryfall_id = ?", scryfallID).
		Take(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, scryfallID)
		}
		return nil, fmt.Errorf("fetch arena id for %s: %w", scryfallID, err)
	}
	return card.ArenaID, nil
}

// SearchQuery describes a paginated name/color search.
type SearchQuery struct {
	Name     string
	Colors   []string
	Page     int
	PageSize int
}

// SearchResult is one page of matches plus the totals computed from the same
// filter predicate.
type SearchResult struct {
	Cards      []Card `json:"cards"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalCards int64  `json:"total_cards"`
	TotalPages int64  `json:"total_pages"`
}

const defaultPageSize = 25

// SearchCards returns one page of cards matching the query. Ordering beyond
// stable LIMIT/OFFSET over the name index is not guaranteed.
func (s *Service) SearchCards(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	if query.Page <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidPage, query.Page)
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filtered := s.db.WithContext(ctx).Model(&Card{})
	if name := strings.TrimSpace(query.Name); name != "" {
		filtered = filtered.Where("name LIKE ?", "%"+name+"%")
	}
	for _, color := range query.Colors {
		filtered = filtered.Where("colors LIKE ?", "%\""+color+"\"%")
	}

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count search matches: %w", err)
	}

	var cards []Card
	err := filtered.
		Order("name").
		Offset((query.Page - 1) * pageSize).
		Limit(pageSize).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &SearchResult{
		Cards:      cards,
		Page:       query.Page,
		PageSize:   pageSize,
		TotalCards: total,
		TotalPages: totalPages,
	}, nil
}

// assemble attaches decoded array fields and, when the core row's flags say
// they exist, the owned face and related-part rows.
func (s *Service) assemble(ctx context.Context, card *Card) (*CardDetail, error) {
	detail := &CardDetail{
		Card:         *card,
		Supertypes:   decodeArray(card.Supertype),
		CardTypes:    decodeArray(card.Cardtype),
		Subtypes:     decodeArray(card.Subtype),
		ColorList:    decodeArrayPtr(card.Colors),
		IdentityList: decodeArray(card.ColorIdentity),
		KeywordList:  decodeArray(card.Keywords),
	}

	if card.HasCardFaces {
		err := s.db.WithContext(ctx).
			Where("core_id = ?", card.ScryfallID).
			Order("id").
			Find(&detail.Faces).Error
		if err != nil {
			return nil, fmt.Errorf("fetch card faces for %s: %w", card.ScryfallID, err)
		}
	}

	if card.HasAllParts {
		// A card's own entry appears in its related-part list upstream; only
		// the other parts are interesting to a reader.
		err := s.db.WithContext(ctx).
			Where("core_id = ? AND name <> ?", card.ScryfallID, card.Name).
			Order("id").
			Find(&detail.Parts).Error
		if err != nil {
			return nil, fmt.Errorf("fetch related parts for %s: %w", card.ScryfallID, err)
		}
	}

	return detail, nil
}

// decodeArray parses JSON-array text into a string slice; malformed text
// decodes as empty rather than failing a read.
func decodeArray(encoded string) []string {
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return []string{}
	}
	if values == nil {
		values = []string{}
	}
	return values
}

// decodeArrayPtr keeps NULL distinct from the empty array on the way out.
func decodeArrayPtr(encoded *string) []string {
	if encoded == nil {
		return nil
	}
	return decodeArray(*encoded)
}
