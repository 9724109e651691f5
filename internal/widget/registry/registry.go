package registry

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"widget-srv/internal/widget"
)

// Registry maps normalized widget names to widget types. It is built once at startup
// and read concurrently afterwards.
type Registry struct {
	widgets map[string]widget.Widget
}

// New registers ws, failing on the first widget that cannot be classified or whose name is taken.
func New(ws ...widget.Widget) (*Registry, error) {
	r := &Registry{widgets: make(map[string]widget.Widget, len(ws))}
	for _, w := range ws {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds w under its normalized name.
func (r *Registry) Register(w widget.Widget) error {
	if _, err := Classify(w); err != nil {
		return fmt.Errorf("registry.Register %q: %w", w.Name(), err)
	}
	name := NormalizeName(w.Name())
	if _, ok := r.widgets[name]; ok {
		return fmt.Errorf("registry.Register: duplicate widget %q", name)
	}
	r.widgets[name] = w
	return nil
}

// Resolve accepts a widget value or a name. Names are normalized first; unknown names are absent.
func (r *Registry) Resolve(id any) (widget.Widget, bool) {
	switch v := id.(type) {
	case widget.Widget:
		return v, true
	case string:
		return r.Lookup(v)
	}
	return nil, false
}

// Lookup resolves a widget by name.
func (r *Registry) Lookup(name string) (widget.Widget, bool) {
	w, ok := r.widgets[NormalizeName(name)]
	return w, ok
}

// Names lists the registered names in order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Classify returns the capability of w, checked in the order Table, Chart, Custom, Static.
func Classify(w widget.Widget) (widget.Kind, error) {
	switch w.(type) {
	case widget.Table:
		return widget.KindTable, nil
	case widget.Chart:
		return widget.KindChart, nil
	case widget.Custom:
		return widget.KindCustom, nil
	case widget.Static:
		return widget.KindStatic, nil
	}
	return "", widget.ErrConfiguration
}

// NormalizeName maps Keywords::SearchVolumeTable, keywords/search-volume-table and
// keywords/search_volume_table to the same key.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(strings.ReplaceAll(name, "::", "/"), "/")

	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, c := range runes {
		switch {
		case c == '-' || c == ' ':
			b.WriteByte('_')
		case unicode.IsUpper(c):
			if i > 0 && needsUnderscore(runes, i) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// needsUnderscore reports whether the upper-case rune at i starts a new word.
// HTMLParser becomes html_parser.
func needsUnderscore(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '/' || prev == '_' || prev == '-' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
