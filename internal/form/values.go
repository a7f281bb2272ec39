// Package form collects the values of a recipe form, validates them and
// submits them to the backend as a multipart post.
//
// A value made only of whitespace counts as absent: Validate rejects it the
// same as a field that was never set.
package form

import (
	"strings"
	"sync"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/recipe"
)

// Value is what the user entered for one field. Path is set for file fields
// and names a local file; Text holds everything else.
type Value struct {
	Text string
	Path string
}

// Text returns a Value holding s.
func Text(s string) Value { return Value{Text: s} }

// File returns a Value pointing at a local file.
func File(path string) Value { return Value{Path: path} }

// Present reports whether the value counts as entered. Whitespace alone
// does not.
func (v Value) Present() bool {
	return strings.TrimSpace(v.Path) != "" || strings.TrimSpace(v.Text) != ""
}

// Values maps field names to entered values. Set overwrites, so the last
// edit of a field wins. Safe for concurrent use.
type Values struct {
	mu sync.RWMutex
	m  map[string]Value
}

// NewValues returns an empty value set.
func NewValues() *Values {
	return &Values{m: make(map[string]Value)}
}

// Set stores v under name, replacing any earlier value.
func (vs *Values) Set(name string, v Value) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if vs.m == nil {
		vs.m = make(map[string]Value)
	}
	vs.m[name] = v
}

// SetText is Set(name, Text(s)).
func (vs *Values) SetText(name, s string) { vs.Set(name, Text(s)) }

// Get returns the value stored under name.
func (vs *Values) Get(name string) (Value, bool) {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	v, ok := vs.m[name]
	return v, ok
}

// Len returns the number of stored values.
func (vs *Values) Len() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.m)
}

// Validate walks r's fields in declaration order and fails on the first one
// without a value.
func Validate(r recipe.Recipe, vs *Values) error {
	for _, f := range r.Fields {
		v, ok := vs.Get(f.Name)
		if !ok || !v.Present() {
			return &apperr.ValidationError{Field: f.Name, Label: f.Label}
		}
	}
	return nil
}
