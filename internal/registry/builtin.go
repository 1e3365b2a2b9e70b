package registry

import "github.com/vovakirdan/stickrace/internal/match"

// DefaultVariant is the preset used when none is named.
const DefaultVariant = "classic"

func init() {
	Register(Variant{
		ID:          "short",
		Title:       "Short",
		Description: "7 columns, a quick race",
		Columns:     7,
		Starting:    match.Blue,
	})
	Register(Variant{
		ID:          "classic",
		Title:       "Classic",
		Description: "9 columns, blue throws first",
		Columns:     9,
		Starting:    match.Blue,
	})
	Register(Variant{
		ID:          "wide",
		Title:       "Wide",
		Description: "11 columns",
		Columns:     11,
		Starting:    match.Blue,
	})
	Register(Variant{
		ID:          "grand",
		Title:       "Grand",
		Description: "13 columns",
		Columns:     13,
		Starting:    match.Blue,
	})
	Register(Variant{
		ID:          "marathon",
		Title:       "Marathon",
		Description: "15 columns, the longest track",
		Columns:     15,
		Starting:    match.Blue,
	})
}
