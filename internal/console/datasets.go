package console

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/dsgen/dsgen-cli/internal/browser"
	"github.com/dsgen/dsgen-cli/internal/preview"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

const maxColumnWidth = 30

// Results of backend calls started from the datasets page. Each one is
// applied as it arrives; a late reply overwrites newer state.
type (
	filesMsg struct {
		datasetType string
		files       []string
	}
	previewMsg struct {
		filename string
		preview  *browser.Preview
		err      error
	}
	deletedMsg struct {
		datasetType string
		filename    string
		files       []string
	}
	openedMsg struct {
		url string
		err error
	}
)

type fileItem string

func (i fileItem) Title() string       { return string(i) }
func (i fileItem) Description() string { return "" }
func (i fileItem) FilterValue() string { return string(i) }

type datasetsPage struct {
	browser *browser.Browser
	types   []recipe.Recipe
	typeIdx int

	files    list.Model
	listType string // type the shown list was fetched for
	loading  bool
	status  string
	confirm string // file awaiting delete confirmation

	// preview modal
	modal     *browser.Preview
	grid      table.Model
	shown     int
	sortCol   int
	desc      bool
	filter    textinput.Model
	filtering bool

	width  int
	height int
}

func newDatasetsPage(b *browser.Browser) datasetsPage {
	types := recipe.Registry()
	idx := 0
	if b != nil {
		for i, r := range types {
			if r.Key == b.Selected() {
				idx = i
			}
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ui.ColorHighlight).
		BorderForeground(ui.ColorPrimary)

	l := list.New([]list.Item{}, delegate, 60, 12)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "filter rows..."
	ti.CharLimit = 120
	ti.SetWidth(40)

	p := datasetsPage{
		browser: b,
		types:   types,
		typeIdx: idx,
		files:   l,
		filter:  ti,
		sortCol: -1,
		width:   80,
		height:  24,
	}
	if b != nil {
		p.setFiles(b.Files())
		p.listType = b.Selected()
	}
	return p
}

func (d *datasetsPage) current() string { return d.types[d.typeIdx].Key }

func (d *datasetsPage) currentLabel() string { return d.types[d.typeIdx].Label }

func (d *datasetsPage) setSize(w, h int) {
	d.width, d.height = w, h
	d.files.SetSize(w-4, max(h-10, 3))
	if d.modal != nil {
		d.rebuildGrid()
	}
}

func (d *datasetsPage) capturingInput() bool { return d.modal != nil && d.filtering }

func (d *datasetsPage) setFiles(files []string) {
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = fileItem(f)
	}
	d.files.SetItems(items)
}

// actionable reports whether the shown list belongs to the current tab and
// no fetch for it is pending. A late reply for another type may still be on
// screen; its files must not be previewed, opened or deleted in this bucket.
func (d *datasetsPage) actionable() bool {
	return d.browser != nil && !d.loading && d.listType == d.current()
}

func (d *datasetsPage) selectedFile() (string, bool) {
	if it, ok := d.files.SelectedItem().(fileItem); ok {
		return string(it), true
	}
	return "", false
}

// selectCmd switches to datasetType right away, dropping the old list, and
// returns the fetch for the new one.
func (d *datasetsPage) selectCmd(ctx context.Context, datasetType string) tea.Cmd {
	if d.browser == nil {
		return nil
	}
	d.browser.Use(datasetType)
	d.setFiles(nil)
	d.listType = datasetType
	return d.listCmd(ctx, datasetType)
}

func (d *datasetsPage) listCmd(ctx context.Context, datasetType string) tea.Cmd {
	if d.browser == nil {
		return nil
	}
	d.loading = true
	b := d.browser
	return func() tea.Msg {
		return filesMsg{datasetType: datasetType, files: b.List(ctx, datasetType)}
	}
}

// The file actions capture the dataset type when the key is pressed.

func (d *datasetsPage) previewCmd(ctx context.Context, filename string) tea.Cmd {
	b, datasetType := d.browser, d.current()
	d.status = ui.Dim.Render("Loading " + filename + "...")
	return func() tea.Msg {
		p, err := b.PreviewIn(ctx, datasetType, filename)
		return previewMsg{filename: filename, preview: p, err: err}
	}
}

func (d *datasetsPage) deleteCmd(ctx context.Context, filename string) tea.Cmd {
	b, datasetType := d.browser, d.current()
	return func() tea.Msg {
		return deletedMsg{datasetType: datasetType, filename: filename, files: b.DeleteIn(ctx, datasetType, filename)}
	}
}

func (d *datasetsPage) openCmd(datasetType, filename string) tea.Cmd {
	b := d.browser
	u := b.RawURLIn(datasetType, filename)
	return func() tea.Msg {
		return openedMsg{url: u, err: b.OpenURL(datasetType, u)}
	}
}

func (d *datasetsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case filesMsg:
		if msg.datasetType == d.current() {
			d.loading = false
		}
		d.setFiles(msg.files)
		d.listType = msg.datasetType
		return nil

	case previewMsg:
		if msg.err != nil {
			d.status = ui.Error.Render(fmt.Sprintf("Could not load %s: %v", msg.filename, msg.err))
			return nil
		}
		d.status = ""
		d.openModal(msg.preview)
		return nil

	case deletedMsg:
		d.setFiles(msg.files)
		d.listType = msg.datasetType
		d.status = ui.Dim.Render("Deleted " + msg.filename + ", list refreshed")
		return nil

	case openedMsg:
		if msg.err != nil {
			d.status = ui.Error.Render(fmt.Sprintf("Could not open %s: %v", msg.url, msg.err))
		} else {
			d.status = ui.Dim.Render("Opened " + msg.url)
		}
		return nil
	}

	var cmd tea.Cmd
	switch {
	case d.modal != nil && d.filtering:
		d.filter, cmd = d.filter.Update(msg)
	case d.modal != nil:
		d.grid, cmd = d.grid.Update(msg)
	default:
		d.files, cmd = d.files.Update(msg)
	}
	return cmd
}

func (d *datasetsPage) handleKey(ctx context.Context, key string) tea.Cmd {
	if d.modal != nil {
		return d.handleModalKey(key)
	}

	if d.confirm != "" {
		name := d.confirm
		d.confirm = ""
		if key == "y" {
			return d.deleteCmd(ctx, name)
		}
		d.status = ui.Dim.Render("Delete cancelled")
		return nil
	}

	switch key {
	case "left", "h":
		d.typeIdx = (d.typeIdx - 1 + len(d.types)) % len(d.types)
		d.status = ""
		return d.selectCmd(ctx, d.current())
	case "right", "l":
		d.typeIdx = (d.typeIdx + 1) % len(d.types)
		d.status = ""
		return d.selectCmd(ctx, d.current())
	case "r":
		return d.listCmd(ctx, d.current())
	case "up", "k":
		d.files.CursorUp()
	case "down", "j":
		d.files.CursorDown()
	case "p", "enter", "o", "d":
		f, ok := d.selectedFile()
		if !ok || !d.actionable() {
			return nil
		}
		switch key {
		case "o":
			return d.openCmd(d.current(), f)
		case "d":
			d.confirm = f
		default:
			return d.previewCmd(ctx, f)
		}
	}
	return nil
}

func (d *datasetsPage) handleModalKey(key string) tea.Cmd {
	if d.filtering {
		switch key {
		case "enter":
			d.filtering = false
			d.filter.Blur()
		case "esc":
			d.filtering = false
			d.filter.Blur()
			d.filter.SetValue("")
		case "backspace":
			v := d.filter.Value()
			if v != "" {
				_, size := utf8.DecodeLastRuneInString(v)
				d.filter.SetValue(v[:len(v)-size])
			}
		case "space":
			d.filter.SetValue(d.filter.Value() + " ")
		default:
			if utf8.RuneCountInString(key) == 1 {
				d.filter.SetValue(d.filter.Value() + key)
			}
		}
		d.rebuildGrid()
		return nil
	}

	switch key {
	case "esc":
		d.closeModal()
	case "/":
		d.filtering = true
		return d.filter.Focus()
	case "s":
		// cycle: unsorted, then each column in turn
		d.sortCol++
		if d.sortCol >= len(d.modal.Table.Columns) {
			d.sortCol = -1
		}
		d.rebuildGrid()
	case "S":
		d.desc = !d.desc
		d.rebuildGrid()
	case "up", "k":
		d.grid.MoveUp(1)
	case "down", "j":
		d.grid.MoveDown(1)
	case "o":
		return d.openCmd(d.modal.Type, d.modal.Filename)
	}
	return nil
}

func (d *datasetsPage) openModal(p *browser.Preview) {
	d.modal = p
	d.sortCol = -1
	d.desc = false
	d.filtering = false
	d.filter.SetValue("")
	d.rebuildGrid()
}

func (d *datasetsPage) closeModal() {
	d.modal = nil
	d.filtering = false
	if d.browser != nil {
		d.browser.ClosePreview()
	}
}

// visible applies the modal's sort and filter to a copy of the preview.
func (d *datasetsPage) visible() preview.TablePreview {
	t := d.modal.Table
	if d.sortCol >= 0 && d.sortCol < len(t.Columns) {
		t = t.SortBy(t.Columns[d.sortCol], d.desc)
	}
	return t.Filter(d.filter.Value())
}

func (d *datasetsPage) rebuildGrid() {
	t := d.visible()
	records := t.Records()
	d.shown = len(records)

	cols := make([]table.Column, len(t.Columns))
	total := 0
	for i, title := range t.Columns {
		w := lipgloss.Width(title)
		for _, rec := range records {
			w = max(w, lipgloss.Width(rec[i]))
		}
		if i == d.sortCol {
			if d.desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cols[i] = table.Column{Title: title, Width: min(max(w, lipgloss.Width(title), 4), maxColumnWidth)}
		total += cols[i].Width + 2 // cell padding
	}

	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row(rec)
	}

	grid := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithWidth(max(total, 10)),
		table.WithHeight(max(min(len(rows)+2, d.height-10), 4)),
	)
	s := table.DefaultStyles()
	s.Header = ui.TableHeader.Style()
	s.Selected = ui.TableSelected.Style()
	grid.SetStyles(s)
	d.grid = grid
}

func (d *datasetsPage) view() string {
	var b strings.Builder

	tabs := make([]string, len(d.types))
	for i, r := range d.types {
		if i == d.typeIdx {
			tabs[i] = ui.ActiveTab.Render(r.Key)
		} else {
			tabs[i] = ui.InactiveTab.Render(r.Key)
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n")
	b.WriteString(ui.SectionHeader.Render(d.currentLabel()))
	b.WriteString("\n\n")

	switch {
	case d.modal != nil:
		b.WriteString(d.modalView())
	case d.loading:
		b.WriteString(ui.Dim.Render("Loading files..."))
	case len(d.files.Items()) == 0:
		b.WriteString(ui.Muted.Render(EmptyPlaceholder(d.currentLabel())))
	default:
		b.WriteString(d.files.View())
	}

	if d.confirm != "" {
		b.WriteString("\n\n")
		b.WriteString(ui.Warning.Render(fmt.Sprintf("Delete %s? (y/n)", d.confirm)))
	}
	if d.status != "" {
		b.WriteString("\n\n")
		b.WriteString(d.status)
	}

	b.WriteString("\n\n")
	if d.modal != nil {
		b.WriteString(ui.KeyHelp("↑/↓", "scroll", "s", "sort column", "S", "reverse", "/", "filter", "o", "open raw", "esc", "close"))
	} else {
		b.WriteString(ui.KeyHelp("←/→", "type", "↑/↓", "file", "p", "preview", "o", "open raw", "d", "delete", "r", "refresh", "tab", "generate", "q", "quit"))
	}
	return b.String()
}

func (d *datasetsPage) modalView() string {
	p := d.modal
	var b strings.Builder
	b.WriteString(ui.Title.Render(p.Filename))
	b.WriteString(" ")
	b.WriteString(ui.Dim.Render(fmt.Sprintf("%s · %d of %d rows", humanize.Bytes(uint64(p.Size)), d.shown, len(p.Table.Rows))))
	b.WriteString("\n")

	if d.filtering || d.filter.Value() != "" {
		b.WriteString(ui.Dim.Render("Filter: "))
		b.WriteString(d.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.Table.Empty() {
		b.WriteString(ui.Muted.Render("Empty file"))
	} else {
		b.WriteString(d.grid.View())
	}
	return ui.HighlightBox.Render(b.String())
}

// EmptyPlaceholder is shown instead of the file list when a dataset type
// has no files.
func EmptyPlaceholder(label string) string {
	return fmt.Sprintf("No datasets generated for %s yet.", label)
}
