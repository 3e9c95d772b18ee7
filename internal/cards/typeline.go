package cards

import "strings"

// The two closed vocabularies a type line is partitioned against. Tokens in
// neither set are subtypes: unknown or future type words degrade into subtype
// instead of being dropped.
var knownSupertypes = map[string]struct{}{
	"Basic":     {},
	"Elite":     {},
	"Legendary": {},
	"Ongoing":   {},
	"Snow":      {},
	"Token":     {},
	"World":     {},
}

var knownCardTypes = map[string]struct{}{
	"Artifact":     {},
	"Battle":       {},
	"Conspiracy":   {},
	"Creature":     {},
	"Dungeon":      {},
	"Emblem":       {},
	"Enchantment":  {},
	"Hero":         {},
	"Instant":      {},
	"Kindred":      {},
	"Tribal":       {},
	"Land":         {},
	"Phenomenon":   {},
	"Plane":        {},
	"Planeswalker": {},
	"Scheme":       {},
	"Sorcery":      {},
	"Vanguard":     {},
}

// TypeParts holds the partition of a type line into its three type groups.
type TypeParts struct {
	Supertypes []string
	CardTypes  []string
	Subtypes   []string
}

// ParseTypeLine partitions a free-text type line such as
// "Legendary Creature — Human Wizard" into supertypes, card types, and
// subtypes. Segments are separated by an em-dash or a double slash (the
// front/back group marker); tokens are deduplicated, first occurrence wins.
func ParseTypeLine(line string) TypeParts {
	replacer := strings.NewReplacer(" — ", " ", " // ", " ")
	tokens := strings.Fields(replacer.Replace(line))

	parts := TypeParts{
		Supertypes: []string{},
		CardTypes:  []string{},
		Subtypes:   []string{},
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, duplicate := seen[token]; duplicate {
			continue
		}
		seen[token] = struct{}{}

		if _, ok := knownSupertypes[token]; ok {
			parts.Supertypes = append(parts.Supertypes, token)
			continue
		}
		if _, ok := knownCardTypes[token]; ok {
			parts.CardTypes = append(parts.CardTypes, token)
			continue
		}
		parts.Subtypes = append(parts.Subtypes, token)
	}

	return parts
}
