package cards

// Raw payload shapes mirroring the upstream bulk export. Fields the upstream
// may omit are pointers so that absence survives decoding; array-valued
// fields that must distinguish "absent" from "present but empty" are pointers
// to slices. A JSON null is treated the same as an absent key.

// RawCard is one card object from the bulk payload.
type RawCard struct {
	ID            string `json:"id"`
	ArenaID       *int   `json:"arena_id"`
	MtgoID        *int   `json:"mtgo_id"`
	MtgoFoilID    *int   `json:"mtgo_foil_id"`
	MultiverseIDs *[]int `json:"multiverse_ids"`

	Layout      string  `json:"layout"`
	OracleID    *string `json:"oracle_id"`
	RulingsURI  *string `json:"rulings_uri"`
	ScryfallURI *string `json:"scryfall_uri"`
	URI         *string `json:"uri"`

	AllParts  []RawRelatedPart `json:"all_parts"`
	CardFaces []RawCardFace    `json:"card_faces"`

	Cmc            *float64  `json:"cmc"`
	ColorIdentity  []string  `json:"color_identity"`
	ColorIndicator *[]string `json:"color_indicator"`
	Colors         *[]string `json:"colors"`
	Defense        *string   `json:"defense"`
	GameChanger    bool      `json:"game_changer"`
	HandModifier   *string   `json:"hand_modifier"`
	Keywords       []string  `json:"keywords"`

	Legalities map[string]string `json:"legalities"`

	LifeModifier *string   `json:"life_modifier"`
	Loyalty      *string   `json:"loyalty"`
	ManaCost     *string   `json:"mana_cost"`
	Name         string    `json:"name"`
	OracleText   *string   `json:"oracle_text"`
	Power        *string   `json:"power"`
	ProducedMana *[]string `json:"produced_mana"`
	Reserved     bool      `json:"reserved"`
	Toughness    *string   `json:"toughness"`
	TypeLine     *string   `json:"type_line"`

	Artist           *string   `json:"artist"`
	ArtistIDs        *[]string `json:"artist_ids"`
	AttractionLights *[]string `json:"attraction_lights"`
	Booster          bool      `json:"booster"`
	BorderColor      *string   `json:"border_color"`
	CardBackID       string    `json:"card_back_id"`
	CollectorNumber  string    `json:"collector_number"`
	ContentWarning   bool      `json:"content_warning"`
	Digital          bool      `json:"digital"`

	Finishes []string `json:"finishes"`
	Games    []string `json:"games"`

	FlavorName   *string   `json:"flavor_name"`
	FlavorText   *string   `json:"flavor_text"`
	FrameEffects *[]string `json:"frame_effects"`
	Frame        *string   `json:"frame"`
	FullArt      bool      `json:"full_art"`

	HighresImage   bool    `json:"highres_image"`
	IllustrationID *string `json:"illustration_id"`
	ImageStatus    *string `json:"image_status"`

	ImageURIs RawImageURIs `json:"image_uris"`
	Oversized bool         `json:"oversized"`
	Prices    RawPrices    `json:"prices"`

	PrintedName     *string `json:"printed_name"`
	PrintedText     *string `json:"printed_text"`
	PrintedTypeLine *string `json:"printed_type_line"`

	Promo      bool      `json:"promo"`
	PromoTypes *[]string `json:"promo_types"`
	Rarity     *string   `json:"rarity"`
	ReleasedAt *string   `json:"released_at"`
	Reprint    bool      `json:"reprint"`

	ScryfallSetURI *string `json:"scryfall_set_uri"`
	SetName        string  `json:"set_name"`
	SetSearchURI   *string `json:"set_search_uri"`
	SetType        *string `json:"set_type"`
	SetURI         *string `json:"set_uri"`
	SetCode        string  `json:"set"`
	SetID          *string `json:"set_id"`

	StorySpotlight bool    `json:"story_spotlight"`
	Textless       bool    `json:"textless"`
	Variation      bool    `json:"variation"`
	VariationOf    *string `json:"variation_of"`
	SecurityStamp  *string `json:"security_stamp"`
	Watermark      *string `json:"watermark"`
}

// RawCardFace is one face object nested inside a multi-faced card.
type RawCardFace struct {
	ArtistID       *string   `json:"artist_id"`
	Cmc            *float64  `json:"cmc"`
	ColorIndicator *[]string `json:"color_indicator"`
	Colors         *[]string `json:"colors"`
	Defense        *string   `json:"defense"`
	FlavorText     *string   `json:"flavor_text"`
	IllustrationID *string   `json:"illustration_id"`

	ImageURIs RawImageURIs `json:"image_uris"`

	Layout          *string `json:"layout"`
	Loyalty         *string `json:"loyalty"`
	ManaCost        string  `json:"mana_cost"`
	Name            string  `json:"name"`
	OracleID        *string `json:"oracle_id"`
	OracleText      *string `json:"oracle_text"`
	Power           *string `json:"power"`
	PrintedName     *string `json:"printed_name"`
	PrintedText     *string `json:"printed_text"`
	PrintedTypeLine *string `json:"printed_type_line"`
	Toughness       *string `json:"toughness"`
	TypeLine        *string `json:"type_line"`
	Watermark       *string `json:"watermark"`
}

// RawRelatedPart is one related-card reference nested inside a card.
type RawRelatedPart struct {
	ID        string  `json:"id"`
	Component string  `json:"component"`
	Name      string  `json:"name"`
	TypeLine  string  `json:"type_line"`
	URI       *string `json:"uri"`
}

// RawImageURIs carries the per-resolution image links; every key is optional.
type RawImageURIs struct {
	PNG        *string `json:"png"`
	BorderCrop *string `json:"border_crop"`
	ArtCrop    *string `json:"art_crop"`
	Large      *string `json:"large"`
	Normal     *string `json:"normal"`
	Small      *string `json:"small"`
}

// RawPrices carries the per-currency, per-finish price points as
// decimal-as-text; upstream reports unavailable prices as null.
type RawPrices struct {
	USD       *string `json:"usd"`
	USDFoil   *string `json:"usd_foil"`
	USDEtched *string `json:"usd_etched"`
	EUR       *string `json:"eur"`
	EURFoil   *string `json:"eur_foil"`
	EUREtched *string `json:"eur_etched"`
	Tix       *string `json:"tix"`
}
