package cards

// Card is one physical card printing, flattened into the core table. The
// surrogate ID is assigned by the store on insert; ScryfallID is the stable
// upstream identifier every upsert is keyed by.
//
// Array-valued fields (colors, keywords, type partitions, ...) are stored as
// JSON-array text. A nil pointer means the field was absent upstream; "[]"
// means present but empty.
type Card struct {
	ID         uint   `gorm:"column:id;primaryKey" json:"id"`
	ScryfallID string `gorm:"column:scryfall_id;uniqueIndex;size:36;not null" json:"scryfall_id"`

	ArenaID       *int    `gorm:"column:arena_id" json:"arena_id,omitempty"`
	MtgoID        *int    `gorm:"column:mtgo_id" json:"mtgo_id,omitempty"`
	MtgoFoilID    *int    `gorm:"column:mtgo_foil_id" json:"mtgo_foil_id,omitempty"`
	MultiverseIDs *string `gorm:"column:multiverse_ids" json:"multiverse_ids,omitempty"`

	Layout      string  `gorm:"column:layout;not null" json:"layout"`
	OracleID    *string `gorm:"column:oracle_id;size:36" json:"oracle_id,omitempty"`
	RulingsURI  *string `gorm:"column:rulings_uri" json:"rulings_uri,omitempty"`
	ScryfallURI *string `gorm:"column:scryfall_uri" json:"scryfall_uri,omitempty"`
	URI         *string `gorm:"column:uri" json:"uri,omitempty"`

	HasAllParts  bool `gorm:"column:all_parts;not null;default:false" json:"all_parts"`
	HasCardFaces bool `gorm:"column:card_faces;not null;default:false" json:"card_faces"`

	Cmc            float64 `gorm:"column:cmc;not null;default:0" json:"cmc"`
	ColorIdentity  string  `gorm:"column:color_identity;not null" json:"color_identity"`
	ColorIndicator *string `gorm:"column:color_indicator" json:"color_indicator,omitempty"`
	Colors         *string `gorm:"column:colors" json:"colors,omitempty"`
	Defense        *string `gorm:"column:defense" json:"defense,omitempty"`
	GameChanger    bool    `gorm:"column:game_changer;not null;default:false" json:"game_changer"`
	HandModifier   *string `gorm:"column:hand_modifier" json:"hand_modifier,omitempty"`
	Keywords       string  `gorm:"column:keywords;not null" json:"keywords"`

	LegalStandard        string `gorm:"column:standard;not null;default:not_legal" json:"standard"`
	LegalFuture          string `gorm:"column:future;not null;default:not_legal" json:"future"`
	LegalHistoric        string `gorm:"column:historic;not null;default:not_legal" json:"historic"`
	LegalTimeless        string `gorm:"column:timeless;not null;default:not_legal" json:"timeless"`
	LegalGladiator       string `gorm:"column:gladiator;not null;default:not_legal" json:"gladiator"`
	LegalPioneer         string `gorm:"column:pioneer;not null;default:not_legal" json:"pioneer"`
	LegalExplorer        string `gorm:"column:explorer;not null;default:not_legal" json:"explorer"`
	LegalModern          string `gorm:"column:modern;not null;default:not_legal" json:"modern"`
	LegalLegacy          string `gorm:"column:legacy;not null;default:not_legal" json:"legacy"`
	LegalPauper          string `gorm:"column:pauper;not null;default:not_legal" json:"pauper"`
	LegalVintage         string `gorm:"column:vintage;not null;default:not_legal" json:"vintage"`
	LegalPenny           string `gorm:"column:penny;not null;default:not_legal" json:"penny"`
	LegalCommander       string `gorm:"column:commander;not null;default:not_legal" json:"commander"`
	LegalOathbreaker     string `gorm:"column:oathbreaker;not null;default:not_legal" json:"oathbreaker"`
	LegalStandardBrawl   string `gorm:"column:standardbrawl;not null;default:not_legal" json:"standardbrawl"`
	LegalBrawl           string `gorm:"column:brawl;not null;default:not_legal" json:"brawl"`
	LegalAlchemy         string `gorm:"column:alchemy;not null;default:not_legal" json:"alchemy"`
	LegalPauperCommander string `gorm:"column:paupercommander;not null;default:not_legal" json:"paupercommander"`
	LegalDuel            string `gorm:"column:duel;not null;default:not_legal" json:"duel"`
	LegalOldSchool       string `gorm:"column:oldschool;not null;default:not_legal" json:"oldschool"`
	LegalPremodern       string `gorm:"column:premodern;not null;default:not_legal" json:"premodern"`
	LegalPredh           string `gorm:"column:predh;not null;default:not_legal" json:"predh"`

	LifeModifier *string `gorm:"column:life_modifier" json:"life_modifier,omitempty"`
	Loyalty      *string `gorm:"column:loyalty" json:"loyalty,omitempty"`
	ManaCost     *string `gorm:"column:mana_cost" json:"mana_cost,omitempty"`
	Name         string  `gorm:"column:name;index;not null" json:"name"`
	OracleText   *string `gorm:"column:oracle_text" json:"oracle_text,omitempty"`
	Power        *string `gorm:"column:power" json:"power,omitempty"`
	ProducedMana *string `gorm:"column:produced_mana" json:"produced_mana,omitempty"`
	Reserved     bool    `gorm:"column:reserved;not null;default:false" json:"reserved"`
	Toughness    *string `gorm:"column:toughness" json:"toughness,omitempty"`

	TypeLine  string `gorm:"column:type_line;not null" json:"type_line"`
	Supertype string `gorm:"column:supertype;not null" json:"supertype"`
	Cardtype  string `gorm:"column:cardtype;not null" json:"cardtype"`
	Subtype   string `gorm:"column:subtype;not null" json:"subtype"`

	Artist           *string `gorm:"column:artist" json:"artist,omitempty"`
	ArtistIDs        *string `gorm:"column:artist_ids" json:"artist_ids,omitempty"`
	AttractionLights *string `gorm:"column:attraction_lights" json:"attraction_lights,omitempty"`
	Booster          bool    `gorm:"column:booster;not null;default:false" json:"booster"`
	BorderColor      *string `gorm:"column:border_color" json:"border_color,omitempty"`
	CardBackID       string  `gorm:"column:card_back_id;not null;default:''" json:"card_back_id"`
	CollectorNumber  string  `gorm:"column:collector_number;index:idx_core_set_number,priority:2;not null" json:"collector_number"`
	ContentWarning   bool    `gorm:"column:content_warning;not null;default:false" json:"content_warning"`
	Digital          bool    `gorm:"column:digital;not null;default:false" json:"digital"`

	FinishFoil    bool `gorm:"column:foil;not null;default:false" json:"foil"`
	FinishNonfoil bool `gorm:"column:nonfoil;not null;default:false" json:"nonfoil"`
	FinishEtched  bool `gorm:"column:etched;not null;default:false" json:"etched"`

	FlavorName   *string `gorm:"column:flavor_name" json:"flavor_name,omitempty"`
	FlavorText   *string `gorm:"column:flavor_text" json:"flavor_text,omitempty"`
	FrameEffects *string `gorm:"column:frame_effects" json:"frame_effects,omitempty"`
	Frame        *string `gorm:"column:frame" json:"frame,omitempty"`
	FullArt      bool    `gorm:"column:full_art;not null;default:false" json:"full_art"`

	InPaper bool `gorm:"column:paper;not null;default:false" json:"paper"`
	InArena bool `gorm:"column:arena;not null;default:false" json:"arena"`
	InMtgo  bool `gorm:"column:mtgo;not null;default:false" json:"mtgo"`

	HighresImage   bool    `gorm:"column:highres_image;not null;default:false" json:"highres_image"`
	IllustrationID *string `gorm:"column:illustration_id;size:36" json:"illustration_id,omitempty"`
	ImageStatus    *string `gorm:"column:image_status" json:"image_status,omitempty"`

	ImagePNG        *string `gorm:"column:png" json:"png,omitempty"`
	ImageBorderCrop *string `gorm:"column:border_crop" json:"border_crop,omitempty"`
	ImageArtCrop    *string `gorm:"column:art_crop" json:"art_crop,omitempty"`
	ImageLarge      *string `gorm:"column:large" json:"large,omitempty"`
	ImageNormal     *string `gorm:"column:normal" json:"normal,omitempty"`
	ImageSmall      *string `gorm:"column:small" json:"small,omitempty"`

	Oversized bool `gorm:"column:oversized;not null;default:false" json:"oversized"`

	PriceUSD       *string `gorm:"column:price_usd" json:"price_usd,omitempty"`
	PriceUSDFoil   *string `gorm:"column:price_usd_foil" json:"price_usd_foil,omitempty"`
	PriceUSDEtched *string `gorm:"column:price_usd_etched" json:"price_usd_etched,omitempty"`
	PriceEUR       *string `gorm:"column:price_eur" json:"price_eur,omitempty"`
	PriceEURFoil   *string `gorm:"column:price_eur_foil" json:"price_eur_foil,omitempty"`
	PriceEUREtched *string `gorm:"column:price_eur_etched" json:"price_eur_etched,omitempty"`
	PriceTix       *string `gorm:"column:price_tix" json:"price_tix,omitempty"`

	PrintedName     *string `gorm:"column:printed_name" json:"printed_name,omitempty"`
	PrintedText     *string `gorm:"column:printed_text" json:"printed_text,omitempty"`
	PrintedTypeLine *string `gorm:"column:printed_type_line" json:"printed_type_line,omitempty"`

	Promo      bool    `gorm:"column:promo;not null;default:false" json:"promo"`
	PromoTypes *string `gorm:"column:promo_types" json:"promo_types,omitempty"`
	Rarity     *string `gorm:"column:rarity" json:"rarity,omitempty"`
	ReleasedAt *string `gorm:"column:released_at" json:"released_at,omitempty"`
	Reprint    bool    `gorm:"column:reprint;not null;default:false" json:"reprint"`

	ScryfallSetURI *string `gorm:"column:scryfall_set_uri" json:"scryfall_set_uri,omitempty"`
	SetName        string  `gorm:"column:set_name;not null" json:"set_name"`
	SetSearchURI   *string `gorm:"column:set_search_uri" json:"set_search_uri,omitempty"`
	SetType        *string `gorm:"column:set_type" json:"set_type,omitempty"`
	SetURI         *string `gorm:"column:set_uri" json:"set_uri,omitempty"`
	SetCode        string  `gorm:"column:set_code;index:idx_core_set_number,priority:1;not null" json:"set_code"`
	SetID          *string `gorm:"column:set_id;size:36" json:"set_id,omitempty"`

	StorySpotlight bool    `gorm:"column:story_spotlight;not null;default:false" json:"story_spotlight"`
	Textless       bool    `gorm:"column:textless;not null;default:false" json:"textless"`
	Variation      bool    `gorm:"column:variation;not null;default:false" json:"variation"`
	VariationOf    *string `gorm:"column:variation_of;size:36" json:"variation_of,omitempty"`
	SecurityStamp  *string `gorm:"column:security_stamp" json:"security_stamp,omitempty"`
	Watermark      *string `gorm:"column:watermark" json:"watermark,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (Card) TableName() string {
	return "core"
}

// CardFace is one printed side of a multi-faced card. Faces are exclusively
// owned by their parent core row (keyed by the parent's scryfall id) and are
// replaced wholesale whenever the parent is re-ingested.
type CardFace struct {
	ID     uint   `gorm:"column:id;primaryKey" json:"id"`
	CoreID string `gorm:"column:core_id;index;size:36;not null" json:"core_id"`

	ArtistID       *string  `gorm:"column:artist_id;size:36" json:"artist_id,omitempty"`
	Cmc            *float64 `gorm:"column:cmc" json:"cmc,omitempty"`
	ColorIndicator *string  `gorm:"column:color_indicator" json:"color_indicator,omitempty"`
	Colors         *string  `gorm:"column:colors" json:"colors,omitempty"`
	Defense        *string  `gorm:"column:defense" json:"defense,omitempty"`
	FlavorText     *string  `gorm:"column:flavor_text" json:"flavor_text,omitempty"`
	IllustrationID *string  `gorm:"column:illustration_id;size:36" json:"illustration_id,omitempty"`

	ImagePNG        *string `gorm:"column:png" json:"png,omitempty"`
	ImageBorderCrop *string `gorm:"column:border_crop" json:"border_crop,omitempty"`
	ImageArtCrop    *string `gorm:"column:art_crop" json:"art_crop,omitempty"`
	ImageLarge      *string `gorm:"column:large" json:"large,omitempty"`
	ImageNormal     *string `gorm:"column:normal" json:"normal,omitempty"`
	ImageSmall      *string `gorm:"column:small" json:"small,omitempty"`

	Layout          *string `gorm:"column:layout" json:"layout,omitempty"`
	Loyalty         *string `gorm:"column:loyalty" json:"loyalty,omitempty"`
	ManaCost        string  `gorm:"column:mana_cost;not null;default:''" json:"mana_cost"`
	Name            string  `gorm:"column:name;not null" json:"name"`
	OracleID        *string `gorm:"column:oracle_id;size:36" json:"oracle_id,omitempty"`
	OracleText      *string `gorm:"column:oracle_text" json:"oracle_text,omitempty"`
	Power           *string `gorm:"column:power" json:"power,omitempty"`
	PrintedName     *string `gorm:"column:printed_name" json:"printed_name,omitempty"`
	PrintedText     *string `gorm:"column:printed_text" json:"printed_text,omitempty"`
	PrintedTypeLine *string `gorm:"column:printed_type_line" json:"printed_type_line,omitempty"`
	Toughness       *string `gorm:"column:toughness" json:"toughness,omitempty"`

	TypeLine  *string `gorm:"column:type_line" json:"type_line,omitempty"`
	Supertype string  `gorm:"column:supertype;not null" json:"supertype"`
	Cardtype  string  `gorm:"column:cardtype;not null" json:"cardtype"`
	Subtype   string  `gorm:"column:subtype;not null" json:"subtype"`

	Watermark *string `gorm:"column:watermark" json:"watermark,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (CardFace) TableName() string {
	return "card_faces"
}

// RelatedPart references another card or token related to a core row by a
// non-print relationship (token, meld counterpart, combo piece). The related
// card's identity is stored as a denormalized snapshot rather than a foreign
// key: the referenced card may land later in the same ingestion stream.
type RelatedPart struct {
	ID     uint   `gorm:"column:id;primaryKey" json:"id"`
	CoreID string `gorm:"column:core_id;index;size:36;not null" json:"core_id"`

	ScryfallID string  `gorm:"column:scryfall_id;size:36;not null" json:"scryfall_id"`
	Component  string  `gorm:"column:component;not null" json:"component"`
	Name       string  `gorm:"column:name;not null" json:"name"`
	TypeLine   string  `gorm:"column:type_line;not null" json:"type_line"`
	Supertype  string  `gorm:"column:supertype;not null" json:"supertype"`
	Cardtype   string  `gorm:"column:cardtype;not null" json:"cardtype"`
	Subtype    string  `gorm:"column:subtype;not null" json:"subtype"`
	URI        *string `gorm:"column:uri" json:"uri,omitempty"`
}

// TableName provides the explicit table binding for GORM.
func (RelatedPart) TableName() string {
	return "all_parts"
}
