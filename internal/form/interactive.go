package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

// Renderer builds an interactive huh form for a recipe and copies what the
// user entered into a Values set.
type Renderer struct {
	Recipe recipe.Recipe

	// storage for form values, one pointer per field
	store map[string]*string
}

// NewRenderer prepares a renderer for r. Initial values, when given, prefill
// the matching controls.
func NewRenderer(r recipe.Recipe, initial *Values) *Renderer {
	store := make(map[string]*string, len(r.Fields))
	for _, f := range r.Fields {
		val := ""
		if initial != nil {
			if v, ok := initial.Get(f.Name); ok {
				val = v.Text
				if f.Kind == recipe.KindFile {
					val = v.Path
				}
			}
		}
		store[f.Name] = &val
	}
	return &Renderer{Recipe: r, store: store}
}

// Form builds the huh form: an intro note followed by one control per field
// in declaration order.
func (rd *Renderer) Form() *huh.Form {
	fields := []huh.Field{
		huh.NewNote().
			Title(rd.Recipe.Label).
			Description(fmt.Sprintf("Posts to %s\nAll fields are required.", rd.Recipe.Endpoint)),
	}
	for _, f := range rd.Recipe.Fields {
		fields = append(fields, rd.createField(f))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// Run shows the form and returns the entered values. Aborting the form
// returns apperr.ErrCancelled.
func (rd *Renderer) Run(ctx context.Context) (*Values, error) {
	if err := rd.Form().RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, apperr.ErrCancelled
		}
		return nil, err
	}
	return rd.Values(), nil
}

// Values snapshots the current control contents.
func (rd *Renderer) Values() *Values {
	vs := NewValues()
	for _, f := range rd.Recipe.Fields {
		raw := *rd.store[f.Name]
		if f.Kind == recipe.KindFile {
			vs.Set(f.Name, File(raw))
		} else {
			vs.SetText(f.Name, raw)
		}
	}
	return vs
}

func (rd *Renderer) createField(f recipe.FieldDescriptor) huh.Field {
	valuePtr := rd.store[f.Name]

	switch f.Kind {
	case recipe.KindTextArea:
		return huh.NewText().
			Title(f.Label).
			Placeholder(f.Placeholder).
			Value(valuePtr).
			Lines(5).
			CharLimit(4000).
			Validate(requireText)

	case recipe.KindSelect:
		return huh.NewSelect[string]().
			Title(f.Label).
			Options(huh.NewOptions(f.Options...)...).
			Value(valuePtr).
			Validate(requireText)

	case recipe.KindFile:
		picker := huh.NewFilePicker().
			Title(f.Label).
			Description(fileDescription(f)).
			CurrentDirectory(".").
			Value(valuePtr).
			Validate(requireText)
		if len(f.Accept) > 0 {
			picker = picker.AllowedTypes(f.Accept)
		}
		return picker

	case recipe.KindNumber:
		return huh.NewInput().
			Title(f.Label).
			Description(numberDescription(f)).
			Placeholder(f.Placeholder).
			Value(valuePtr).
			Validate(requireNumber)

	default: // recipe.KindText
		return huh.NewInput().
			Title(f.Label).
			Placeholder(f.Placeholder).
			Value(valuePtr).
			Validate(requireText)
	}
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

func requireNumber(s string) error {
	if err := requireText(s); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func numberDescription(f recipe.FieldDescriptor) string {
	if f.Step == "" {
		return ui.Muted.Render("Whole number")
	}
	return ui.Muted.Render("Step " + f.Step)
}

func fileDescription(f recipe.FieldDescriptor) string {
	if len(f.Accept) == 0 {
		return ui.Muted.Render("Pick a local file to upload")
	}
	return ui.Muted.Render("Pick a local file to upload") + " " + ui.Dim.Render("("+strings.Join(f.Accept, ", ")+")")
}
