// Package recipe holds the static registry of dataset recipes: for every
// dataset type the backend can generate, the form the console renders and
// the endpoint the form is posted to.
package recipe

import (
	"fmt"
	"strings"
)

// Kind selects the control rendered for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindTextArea Kind = "textarea"
	KindSelect   Kind = "select"
	KindFile     Kind = "file"
)

func (k Kind) String() string { return string(k) }

// FieldDescriptor is the declarative description of one form control.
type FieldDescriptor struct {
	Name        string   `yaml:"name" validate:"required"`
	Label       string   `yaml:"label" validate:"required"`
	Kind        Kind     `yaml:"kind" validate:"required,oneof=text number textarea select file"`
	Options     []string `yaml:"options,omitempty" validate:"required_if=Kind select,dive,required"`
	Step        string   `yaml:"step,omitempty" validate:"omitempty,numeric"`
	Placeholder string   `yaml:"placeholder,omitempty"`

	// Accept lists the file extensions a file field offers in the picker.
	Accept []string `yaml:"accept,omitempty"`
}

// Recipe is a named dataset-generation form definition.
type Recipe struct {
	Key      string            `yaml:"key" validate:"required"`
	Label    string            `yaml:"label" validate:"required"`
	Endpoint string            `yaml:"endpoint" validate:"required,startswith=/"`
	Fields   []FieldDescriptor `yaml:"fields" validate:"required,min=1,dive"`
}

// Field returns the descriptor with the given form name.
func (r Recipe) Field(name string) (FieldDescriptor, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldNames returns the form names in declaration order.
func (r Recipe) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the registered recipe for key.
func Lookup(key string) (Recipe, bool) {
	key = strings.TrimSpace(key)
	for _, r := range Registry() {
		if r.Key == key {
			return r, true
		}
	}
	return Recipe{}, false
}

// MustLookup is Lookup for keys known at compile time.
func MustLookup(key string) Recipe {
	r, ok := Lookup(key)
	if !ok {
		panic(fmt.Sprintf("recipe: unknown key %q", key))
	}
	return r
}

// Keys returns the registered recipe keys in display order.
func Keys() []string {
	reg := Registry()
	keys := make([]string, len(reg))
	for i, r := range reg {
		keys[i] = r.Key
	}
	return keys
}
