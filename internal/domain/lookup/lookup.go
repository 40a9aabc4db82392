// Package lookup resolves map and civilization ids to display names.
//
// The tables are owned by the game data set and may be incomplete. Unknown
// map ids are reported to the caller; unknown civilization ids resolve to a
// placeholder so team building never fails on a mod civilization.
package lookup

import (
	"fmt"
	"maps"
)

// Table holds the id -> name mappings.
type Table struct {
	maps map[int]string
	civs map[int]string
}

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithMaps overlays map names on top of the built-in table.
func WithMaps(names map[int]string) Option {
	return func(t *Table) {
		maps.Copy(t.maps, names)
	}
}

// WithCivs overlays civilization names on top of the built-in table.
func WithCivs(names map[int]string) Option {
	return func(t *Table) {
		maps.Copy(t.civs, names)
	}
}

// WithoutDefaults starts from empty tables instead of the built-in ones.
// It must come before WithMaps/WithCivs to have an effect on them.
func WithoutDefaults() Option {
	return func(t *Table) {
		t.maps = make(map[int]string)
		t.civs = make(map[int]string)
	}
}

// New creates a Table seeded with the built-in names.
func New(opts ...Option) *Table {
	t := &Table{
		maps: maps.Clone(defaultMaps),
		civs: maps.Clone(defaultCivs),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MapName returns the display name for a map id.
func (t *Table) MapName(id int) (string, bool) {
	name, ok := t.maps[id]
	return name, ok
}

// CivName returns the display name for a civilization id, or a placeholder
// naming the id when the table has no entry.
func (t *Table) CivName(id int) string {
	if name, ok := t.civs[id]; ok {
		return name
	}
	return UnknownCiv(id)
}

// UnknownCiv is the placeholder used for civilization ids missing from the table.
// Distinct ids keep distinct placeholders.
func UnknownCiv(id int) string {
	return fmt.Sprintf("Unknown civ %d", id)
}

// Len returns the number of map and civilization entries.
func (t *Table) Len() (mapCount, civCount int) {
	return len(t.maps), len(t.civs)
}
