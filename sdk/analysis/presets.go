package analysis

import (
	"maps"
	"slices"
)

// builtinPresets are common opening ranges by position.
var builtinPresets = map[string]string{
	"utg-tight":     "AA, KK, QQ, JJ, TT, AKs, AKo",
	"utg-standard":  "99+, AJs+, AQo+, KQs",
	"co-open":       "77+, ATs+, AJo+, KQs, KJs+, QJs",
	"btn-wide":      "55+, A8s+, ATo+, KTs+, KJo+, QTs+, JTs, T9s",
	"btn-very-wide": "22+, A2s+, A5o+, K9s+, KJo+, Q9s+, J9s+, T8s+, 97s+, 86s+, 75s+",
	"3bet-tight":    "JJ+, AKs, AKo",
	"any-two": "22+, A2s+, A2o+, K2s+, K2o+, Q2s+, Q2o+, J2s+, J2o+, T2s+, T2o+, " +
		"92s+, 92o+, 82s+, 82o+, 72s+, 72o+, 62s+, 62o+, 52s+, 52o+, 42s+, 42o+, 32s, 32o",
}

// Presets returns a copy of the built-in named ranges.
func Presets() map[string]string {
	return maps.Clone(builtinPresets)
}

// Preset returns the notation of a built-in named range.
func Preset(name string) (string, bool) {
	notation, ok := builtinPresets[name]
	return notation, ok
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(builtinPresets))
}

// PresetBook resolves preset names against the built-ins plus any overrides,
// such as those loaded from a config file.
type PresetBook struct {
	entries map[string]string
}

// NewPresetBook returns a book holding the built-ins with overrides applied.
func NewPresetBook(overrides map[string]string) *PresetBook {
	entries := Presets()
	maps.Copy(entries, overrides)
	return &PresetBook{entries: entries}
}

// Lookup returns the notation for name.
func (b *PresetBook) Lookup(name string) (string, bool) {
	notation, ok := b.entries[name]
	return notation, ok
}

// Names returns every preset name in the book, sorted.
func (b *PresetBook) Names() []string {
	return slices.Sorted(maps.Keys(b.entries))
}

// All returns a copy of every entry.
func (b *PresetBook) All() map[string]string {
	return maps.Clone(b.entries)
}
