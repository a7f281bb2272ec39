package console

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsgen/dsgen-cli/internal/form"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

// recipeItem is one row of the recipe picker.
type recipeItem struct {
	r recipe.Recipe
}

func (i recipeItem) Title() string { return i.r.Label }

func (i recipeItem) Description() string {
	return ui.Dim.Render(fmt.Sprintf("%s · %d fields · POST %s", i.r.Key, len(i.r.Fields), i.r.Endpoint))
}

func (i recipeItem) FilterValue() string { return i.r.Key + " " + i.r.Label }

type generatePage struct {
	list list.Model
}

func newGeneratePage(selected string) generatePage {
	reg := recipe.Registry()
	items := make([]list.Item, len(reg))
	start := 0
	for i, r := range reg {
		items[i] = recipeItem{r: r}
		if r.Key == selected {
			start = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ui.ColorHighlight).
		BorderForeground(ui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ui.ColorTextDim).
		BorderForeground(ui.ColorPrimary)

	l := list.New(items, delegate, 60, 3*len(items)+4)
	l.Title = "Dataset recipes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Select(start)

	return generatePage{list: l}
}

func (g *generatePage) setSize(w, h int) {
	g.list.SetSize(w-4, h-10)
}

func (g *generatePage) selectedKey() string {
	if it, ok := g.list.SelectedItem().(recipeItem); ok {
		return it.r.Key
	}
	return recipe.Keys()[0]
}

func (g *generatePage) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		g.list.CursorUp()
	case "down", "j":
		g.list.CursorDown()
	}
	return nil
}

func (g *generatePage) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.list, cmd = g.list.Update(msg)
	return cmd
}

func (g *generatePage) view(outcome *form.Outcome) string {
	var b strings.Builder
	if outcome != nil {
		b.WriteString(ui.OutcomeBox(outcome.OK(), outcome.Message))
		b.WriteString("\n\n")
	}
	b.WriteString(g.list.View())
	return b.String()
}
