// Package registry holds the named board presets a match can be started
// from. Presets register themselves in init() functions, so the CLI and
// the menus discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/stickrace/internal/engine"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/topology"
)

// Variant is a named board preset.
type Variant struct {
	ID          string
	Title       string
	Description string
	Columns     int
	Starting    match.Color
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if a variant with the same ID is already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}

	v.Columns = topology.NormalizeColumns(v.Columns)
	if v.Starting == match.NoColor {
		v.Starting = match.Blue
	}
	variants[v.ID] = v
}

// List returns all registered variants, narrowest board first.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Columns != result[j].Columns {
			return result[i].Columns < result[j].Columns
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a variant by its ID.
func Lookup(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	return v, nil
}

// NewEngine builds an engine and starts a match on the variant's board.
func (v Variant) NewEngine(die engine.Roller, obs engine.Observer, opts engine.Options) *engine.Engine {
	e := engine.New(die, obs, opts)
	e.Start(v.Columns, v.Starting)
	return e
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}

// ForColumns returns the first listed variant played on the given board
// width. Widths without a preset get the default variant resized to fit.
func ForColumns(columns int) Variant {
	columns = topology.NormalizeColumns(columns)
	for _, v := range List() {
		if v.Columns == columns {
			return v
		}
	}

	v, err := Lookup(DefaultVariant)
	if err != nil {
		v = Variant{ID: DefaultVariant, Title: "Classic", Starting: match.Blue}
	}
	v.Columns = columns
	return v
}
