// Package console is the interactive terminal console: a bubbletea program
// with a generate page (pick a recipe) and a datasets page (browse, preview
// and delete generated files).
package console

import (
	"strings"
	"sync"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/recipe"
)

// Page is one of the two console pages.
type Page string

const (
	PageGenerate Page = "generate"
	PageDatasets Page = "datasets"
)

// ParsePage accepts a page name as typed on the command line.
func ParsePage(s string) (Page, error) {
	switch Page(strings.ToLower(strings.TrimSpace(s))) {
	case "", PageGenerate:
		return PageGenerate, nil
	case PageDatasets:
		return PageDatasets, nil
	default:
		return "", apperr.Userf("unknown page %q (want generate or datasets)", s)
	}
}

// Shell holds the navigation state that survives between program runs:
// the active page and the selected recipe. Transitions are synchronous.
type Shell struct {
	mu     sync.Mutex
	page   Page
	recipe string
}

// NewShell starts on the generate page with the first recipe selected.
func NewShell() *Shell {
	return &Shell{page: PageGenerate, recipe: recipe.Keys()[0]}
}

func (s *Shell) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Shell) SetPage(p Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = p
}

// TogglePage flips between the two pages and returns the new one.
func (s *Shell) TogglePage() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == PageDatasets {
		s.page = PageGenerate
	} else {
		s.page = PageDatasets
	}
	return s.page
}

// RecipeKey returns the selected recipe key.
func (s *Shell) RecipeKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe
}

// Recipe returns the selected recipe.
func (s *Shell) Recipe() recipe.Recipe {
	return recipe.MustLookup(s.RecipeKey())
}

// SelectRecipe makes key the selected recipe. Unknown keys leave the
// selection unchanged.
func (s *Shell) SelectRecipe(key string) error {
	r, ok := recipe.Lookup(key)
	if !ok {
		return apperr.Userf("unknown recipe %q (known: %s)", key, strings.Join(recipe.Keys(), ", "))
	}
	s.mu.Lock()
	s.recipe = r.Key
	s.mu.Unlock()
	return nil
}
