package cards

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInvalidExternalID indicates a record without a usable upstream UUID.
	ErrInvalidExternalID = errors.New("cards: invalid external id")
	// ErrMissingName indicates a record without a display name.
	ErrMissingName = errors.New("cards: missing card name")
	// ErrMissingTypeLine indicates a record whose type line cannot be recovered,
	// not even from a card face.
	ErrMissingTypeLine = errors.New("cards: missing type line")
)

// CardRows is the flattened output of normalizing one upstream card object:
// exactly one core row plus the face and related-part rows it owns.
type CardRows struct {
	Core  Card
	Faces []CardFace
	Parts []RelatedPart
}

// Normalize maps one upstream card object into relational row shapes. An
// error return means the record is unsalvageable and should be skipped by the
// caller; recoverable gaps (missing image keys, absent prices, unlisted
// legalities) are substituted with their documented defaults instead.
func Normalize(raw *RawCard) (*CardRows, error) {
	if _, err := uuid.Parse(raw.ID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExternalID, raw.ID)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingName, raw.ID)
	}

	typeLine, err := resolveTypeLine(raw)
	if err != nil {
		return nil, err
	}
	types := ParseTypeLine(typeLine)

	rows := &CardRows{
		Core: Card{
			ScryfallID:    raw.ID,
			ArenaID:       raw.ArenaID,
			MtgoID:        raw.MtgoID,
			MtgoFoilID:    raw.MtgoFoilID,
			MultiverseIDs: encodeIntArray(raw.MultiverseIDs),

			Layout:      raw.Layout,
			OracleID:    raw.OracleID,
			RulingsURI:  raw.RulingsURI,
			ScryfallURI: raw.ScryfallURI,
			URI:         raw.URI,

			HasAllParts:  len(raw.AllParts) > 0,
			HasCardFaces: len(raw.CardFaces) > 0,

			Cmc:            manaValue(raw.Cmc),
			ColorIdentity:  encodeArray(raw.ColorIdentity),
			ColorIndicator: encodeArrayPtr(raw.ColorIndicator),
			Colors:         encodeArrayPtr(raw.Colors),
			Defense:        raw.Defense,
			GameChanger:    raw.GameChanger,
			HandModifier:   raw.HandModifier,
			Keywords:       encodeArray(raw.Keywords),

			LegalStandard:        legalityFor(raw.Legalities, "standard"),
			LegalFuture:          legalityFor(raw.Legalities, "future"),
			LegalHistoric:        legalityFor(raw.Legalities, "historic"),
			LegalTimeless:        legalityFor(raw.Legalities, "timeless"),
			LegalGladiator:       legalityFor(raw.Legalities, "gladiator"),
			LegalPioneer:         legalityFor(raw.Legalities, "pioneer"),
			LegalExplorer:        legalityFor(raw.Legalities, "explorer"),
			LegalModern:          legalityFor(raw.Legalities, "modern"),
			LegalLegacy:          legalityFor(raw.Legalities, "legacy"),
			LegalPauper:          legalityFor(raw.Legalities, "pauper"),
			LegalVintage:         legalityFor(raw.Legalities, "vintage"),
			LegalPenny:           legalityFor(raw.Legalities, "penny"),
			LegalCommander:       legalityFor(raw.Legalities, "commander"),
			LegalOathbreaker:     legalityFor(raw.Legalities, "oathbreaker"),
			LegalStandardBrawl:   legalityFor(raw.Legalities, "standardbrawl"),
			LegalBrawl:           legalityFor(raw.Legalities, "brawl"),
			LegalAlchemy:         legalityFor(raw.Legalities, "alchemy"),
			LegalPauperCommander: legalityFor(raw.Legalities, "paupercommander"),
			LegalDuel:            legalityFor(raw.Legalities, "duel"),
			LegalOldSchool:       legalityFor(raw.Legalities, "oldschool"),
			LegalPremodern:       legalityFor(raw.Legalities, "premodern"),
			LegalPredh:           legalityFor(raw.Legalities, "predh"),

			LifeModifier: raw.LifeModifier,
			Loyalty:      raw.Loyalty,
			ManaCost:     raw.ManaCost,
			Name:         raw.Name,
			OracleText:   raw.OracleText,
			Power:        raw.Power,
			ProducedMana: encodeArrayPtr(raw.ProducedMana),
			Reserved:     raw.Reserved,
			Toughness:    raw.Toughness,

			TypeLine:  typeLine,
			Supertype: encodeArray(types.Supertypes),
			Cardtype:  encodeArray(types.CardTypes),
			Subtype:   encodeArray(types.Subtypes),

			Artist:           raw.Artist,
			ArtistIDs:        encodeArrayPtr(raw.ArtistIDs),
			AttractionLights: encodeArrayPtr(raw.AttractionLights),
			Booster:          raw.Booster,
			BorderColor:      raw.BorderColor,
			CardBackID:       raw.CardBackID,
			CollectorNumber:  raw.CollectorNumber,
			ContentWarning:   raw.ContentWarning,
			Digital:          raw.Digital,

			FinishFoil:    slices.Contains(raw.Finishes, "foil"),
			FinishNonfoil: slices.Contains(raw.Finishes, "nonfoil"),
			FinishEtched:  slices.Contains(raw.Finishes, "etched"),

			FlavorName:   raw.FlavorName,
			FlavorText:   raw.FlavorText,
			FrameEffects: encodeArrayPtr(raw.FrameEffects),
			Frame:        raw.Frame,
			FullArt:      raw.FullArt,

			InPaper: slices.Contains(raw.Games, "paper"),
			InArena: slices.Contains(raw.Games, "arena"),
			InMtgo:  slices.Contains(raw.Games, "mtgo"),

			HighresImage:   raw.HighresImage,
			IllustrationID: raw.IllustrationID,
			ImageStatus:    raw.ImageStatus,

			ImagePNG:        raw.ImageURIs.PNG,
			ImageBorderCrop: raw.ImageURIs.BorderCrop,
			ImageArtCrop:    raw.ImageURIs.ArtCrop,
			ImageLarge:      raw.ImageURIs.Large,
			ImageNormal:     raw.ImageURIs.Normal,
			ImageSmall:      raw.ImageURIs.Small,

			Oversized: raw.Oversized,

			PriceUSD:       raw.Prices.USD,
			PriceUSDFoil:   raw.Prices.USDFoil,
			PriceUSDEtched: raw.Prices.USDEtched,
			PriceEUR:       raw.Prices.EUR,
			PriceEURFoil:   raw.Prices.EURFoil,
			PriceEUREtched: raw.Prices.EUREtched,
			PriceTix:       raw.Prices.Tix,

			PrintedName:     raw.PrintedName,
			PrintedText:     raw.PrintedText,
			PrintedTypeLine: raw.PrintedTypeLine,

			Promo:      raw.Promo,
			PromoTypes: encodeArrayPtr(raw.PromoTypes),
			Rarity:     raw.Rarity,
			ReleasedAt: raw.ReleasedAt,
			Reprint:    raw.Reprint,

			ScryfallSetURI: raw.ScryfallSetURI,
			SetName:        raw.SetName,
			SetSearchURI:   raw.SetSearchURI,
			SetType:        raw.SetType,
			SetURI:         raw.SetURI,
			SetCode:        raw.SetCode,
			SetID:          raw.SetID,

			StorySpotlight: raw.StorySpotlight,
			Textless:       raw.Textless,
			Variation:      raw.Variation,
			VariationOf:    raw.VariationOf,
			SecurityStamp:  raw.SecurityStamp,
			Watermark:      raw.Watermark,
		},
	}

	for i := range raw.CardFaces {
		rows.Faces = append(rows.Faces, normalizeFace(raw.ID, &raw.CardFaces[i]))
	}
	for i := range raw.AllParts {
		rows.Parts = append(rows.Parts, normalizePart(raw.ID, &raw.AllParts[i]))
	}

	return rows, nil
}

// resolveTypeLine returns the card's type line, substituting the first face's
// type line for reversible layouts, which carry none at the top level.
func resolveTypeLine(raw *RawCard) (string, error) {
	if raw.TypeLine != nil && *raw.TypeLine != "" {
		return *raw.TypeLine, nil
	}
	if raw.Layout == "reversible_card" && len(raw.CardFaces) > 0 {
		if face := raw.CardFaces[0].TypeLine; face != nil && *face != "" {
			return *face, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingTypeLine, raw.ID)
}

func normalizeFace(coreID string, face *RawCardFace) CardFace {
	var types TypeParts
	if face.TypeLine != nil {
		types = ParseTypeLine(*face.TypeLine)
	} else {
		types = ParseTypeLine("")
	}

	return CardFace{
		CoreID: coreID,

		ArtistID:       face.ArtistID,
		Cmc:            face.Cmc,
		ColorIndicator: encodeArrayPtr(face.ColorIndicator),
		Colors:         encodeArrayPtr(face.Colors),
		Defense:        face.Defense,
		FlavorText:     face.FlavorText,
		IllustrationID: face.IllustrationID,

		ImagePNG:        face.ImageURIs.PNG,
		ImageBorderCrop: face.ImageURIs.BorderCrop,
		ImageArtCrop:    face.ImageURIs.ArtCrop,
		ImageLarge:      face.ImageURIs.Large,
		ImageNormal:     face.ImageURIs.Normal,
		ImageSmall:      face.ImageURIs.Small,

		Layout:          face.Layout,
		Loyalty:         face.Loyalty,
		ManaCost:        face.ManaCost,
		Name:            face.Name,
		OracleID:        face.OracleID,
		OracleText:      face.OracleText,
		Power:           face.Power,
		PrintedName:     face.PrintedName,
		PrintedText:     face.PrintedText,
		PrintedTypeLine: face.PrintedTypeLine,
		Toughness:       face.Toughness,

		TypeLine:  face.TypeLine,
		Supertype: encodeArray(types.Supertypes),
		Cardtype:  encodeArray(types.CardTypes),
		Subtype:   encodeArray(types.Subtypes),

		Watermark: face.Watermark,
	}
}

func normalizePart(coreID string, part *RawRelatedPart) RelatedPart {
	types := ParseTypeLine(part.TypeLine)

	return RelatedPart{
		CoreID:     coreID,
		ScryfallID: part.ID,
		Component:  part.Component,
		Name:       part.Name,
		TypeLine:   part.TypeLine,
		Supertype:  encodeArray(types.Supertypes),
		Cardtype:   encodeArray(types.CardTypes),
		Subtype:    encodeArray(types.Subtypes),
		URI:        part.URI,
	}
}

// manaValue coerces the upstream mana value, which unlike every other
// optional numeric defaults to 0.0 rather than NULL.
func manaValue(cmc *float64) float64 {
	if cmc == nil {
		return 0.0
	}
	return *cmc
}

// legalityFor returns the status for one format, defaulting any format the
// record does not list to not_legal.
func legalityFor(legalities map[string]string, format string) string {
	if status, ok := legalities[format]; ok && status != "" {
		return status
	}
	return "not_legal"
}

// encodeArray serializes a slice to JSON-array text; a nil slice encodes as
// the empty array, matching fields the upstream always reports.
func encodeArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// encodeArrayPtr keeps the absent/empty distinction: nil input stays NULL,
// a present slice (even empty) becomes JSON-array text.
func encodeArrayPtr(values *[]string) *string {
	if values == nil {
		return nil
	}
	encoded := encodeArray(*values)
	return &encoded
}

func encodeIntArray(values *[]int) *string {
	if values == nil {
		return nil
	}
	encoded, err := json.Marshal(*values)
	if err != nil {
		return nil
	}
	text := string(encoded)
	return &text
}
