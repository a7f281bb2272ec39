package console

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/dsgen/dsgen-cli/internal/browser"
	"github.com/dsgen/dsgen-cli/internal/form"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

// Action is what the user asked for when the program exited.
type Action int

const (
	ActionQuit Action = iota
	// ActionGenerate means: run the form for Selection.Recipe, then come back.
	ActionGenerate
)

// Selection is returned by Run.
type Selection struct {
	Action Action
	Recipe string
}

// Options wires a console program to its collaborators.
type Options struct {
	Shell   *Shell
	Browser *browser.Browser

	// Outcome is the last submission result, shown on the generate page.
	Outcome *form.Outcome
}

// Model is the bubbletea model for the whole console.
type Model struct {
	ctx     context.Context
	shell   *Shell
	browser *browser.Browser
	outcome *form.Outcome

	gen  generatePage
	data datasetsPage

	selection Selection
	quitting  bool
	width     int
	height    int
}

// New builds the console model. A nil Shell starts from the defaults.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	shell := opts.Shell
	if shell == nil {
		shell = NewShell()
	}
	m := &Model{
		ctx:     ctx,
		shell:   shell,
		browser: opts.Browser,
		outcome: opts.Outcome,
		width:   80,
		height:  24,
	}
	m.gen = newGeneratePage(shell.RecipeKey())
	m.data = newDatasetsPage(opts.Browser)
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.shell.Page() == PageDatasets {
		return m.data.selectCmd(m.ctx, m.data.current())
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gen.setSize(msg.Width, msg.Height)
		m.data.setSize(msg.Width, msg.Height)
		return m, nil

	case filesMsg, previewMsg, deletedMsg, openedMsg:
		return m, m.data.update(msg)
	}

	if m.shell.Page() == PageGenerate {
		return m, m.gen.update(msg)
	}
	return m, m.data.update(msg)
}

// handleKey routes one key press. Global keys first, then the active page.
func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return m.quit()
	}
	// Text entry in the preview filter swallows everything else.
	if m.shell.Page() == PageDatasets && m.data.capturingInput() {
		return m, m.data.handleKey(m.ctx, key)
	}

	switch key {
	case "q":
		return m.quit()
	case "tab":
		if m.shell.TogglePage() == PageDatasets {
			return m, m.data.selectCmd(m.ctx, m.data.current())
		}
		return m, nil
	}

	if m.shell.Page() == PageGenerate {
		if key == "enter" {
			picked := m.gen.selectedKey()
			if err := m.shell.SelectRecipe(picked); err != nil {
				return m, nil
			}
			m.selection = Selection{Action: ActionGenerate, Recipe: picked}
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.gen.handleKey(key)
	}
	return m, m.data.handleKey(m.ctx, key)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.selection = Selection{Action: ActionQuit}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.shell.Page() == PageGenerate {
		b.WriteString(m.gen.view(m.outcome))
		b.WriteString("\n\n")
		b.WriteString(ui.KeyHelp("↑/↓", "choose", "enter", "open form", "tab", "datasets", "q", "quit"))
	} else {
		b.WriteString(m.data.view())
	}
	return b.String()
}

func (m *Model) header() string {
	tabs := []struct {
		page  Page
		label string
	}{
		{PageGenerate, "Generate"},
		{PageDatasets, "Datasets"},
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t.page == m.shell.Page() {
			parts[i] = ui.ActiveTab.Render(t.label)
		} else {
			parts[i] = ui.InactiveTab.Render(t.label)
		}
	}
	return ui.Title.Render("dsgen") + "  " + strings.Join(parts, " ")
}

// Selection reports how the program ended.
func (m *Model) Selection() Selection { return m.selection }

// Run starts the console and blocks until the user quits or picks a recipe.
func Run(ctx context.Context, opts Options) (Selection, error) {
	m := New(ctx, opts)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return Selection{}, err
	}
	if fm, ok := final.(*Model); ok {
		return fm.Selection(), nil
	}
	return m.Selection(), nil
}
