// Package browser lists, previews, opens and deletes the dataset files the
// backend generated for one dataset type at a time.
package browser

import (
	"context"
	"io"
	"sync"

	pkgbrowser "github.com/pkg/browser"

	"github.com/dsgen/dsgen-cli/internal/logging"
	"github.com/dsgen/dsgen-cli/internal/preview"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Datasets:", PrefixColor: ui.FgYellow, Field: "type"}

// SetLogger sets an optional destination for browser logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

// Backend is the part of the API client the browser needs.
type Backend interface {
	ListDatasets(ctx context.Context, datasetType string) ([]string, error)
	FetchDataset(ctx context.Context, datasetType, filename string) ([]byte, error)
	DeleteDataset(ctx context.Context, datasetType, filename string) error
	DatasetURL(datasetType, filename string) string
}

// Preview is an opened file: its parsed table and the raw size.
type Preview struct {
	Type     string
	Filename string
	Table    preview.TablePreview
	Size     int
}

// Browser holds the selected dataset type, its file list and the open
// preview. Concurrent calls are memory safe but not coordinated: whichever
// response lands last overwrites the state it touches.
type Browser struct {
	backend Backend

	// Open launches a URL outside the console. Defaults to the system browser.
	Open func(url string) error

	mu       sync.Mutex
	selected string
	files    []string
	open     *Preview
}

// New returns a Browser with nothing selected.
func New(backend Backend) *Browser {
	return &Browser{backend: backend, Open: pkgbrowser.OpenURL, files: []string{}}
}

// Selected returns the current dataset type.
func (b *Browser) Selected() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// Files returns a copy of the current file list.
func (b *Browser) Files() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.files...)
}

// Empty reports whether the current type has no files.
func (b *Browser) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files) == 0
}

// Use makes datasetType current and discards the previous type's list. It
// does not fetch.
func (b *Browser) Use(datasetType string) {
	b.mu.Lock()
	b.selected = datasetType
	b.files = []string{}
	b.mu.Unlock()
}

// Select makes datasetType current and loads its file list.
func (b *Browser) Select(ctx context.Context, datasetType string) []string {
	b.Use(datasetType)
	return b.List(ctx, datasetType)
}

// Refresh re-fetches the current type's file list.
func (b *Browser) Refresh(ctx context.Context) []string {
	return b.List(ctx, b.Selected())
}

// List fetches datasetType's files and stores them as the file list without
// touching the selection. A failed fetch is logged and leaves an empty list.
func (b *Browser) List(ctx context.Context, datasetType string) []string {
	files, err := b.backend.ListDatasets(ctx, datasetType)
	if err != nil {
		logger.Logf(datasetType, "list failed (%v)", err)
		files = []string{}
	}
	b.SetFiles(files)
	return append([]string(nil), files...)
}

// SetFiles replaces the file list. Used when a list arrives asynchronously.
func (b *Browser) SetFiles(files []string) {
	if files == nil {
		files = []string{}
	}
	b.mu.Lock()
	b.files = append([]string(nil), files...)
	b.mu.Unlock()
}

// Preview fetches filename from the current type, parses it and keeps it as
// the open preview.
func (b *Browser) Preview(ctx context.Context, filename string) (*Preview, error) {
	return b.PreviewIn(ctx, b.Selected(), filename)
}

// PreviewIn is Preview against an explicit dataset type.
func (b *Browser) PreviewIn(ctx context.Context, datasetType, filename string) (*Preview, error) {
	body, err := b.backend.FetchDataset(ctx, datasetType, filename)
	if err != nil {
		logger.Logf(datasetType, "preview %s failed (%v)", filename, err)
		return nil, err
	}

	p := &Preview{
		Type:     datasetType,
		Filename: filename,
		Table:    preview.Parse(string(body)),
		Size:     len(body),
	}
	b.mu.Lock()
	b.open = p
	b.mu.Unlock()
	return p, nil
}

// OpenPreview returns the preview currently shown, if any.
func (b *Browser) OpenPreview() (*Preview, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open, b.open != nil
}

// ClosePreview dismisses the open preview.
func (b *Browser) ClosePreview() {
	b.mu.Lock()
	b.open = nil
	b.mu.Unlock()
}

// RawURL is the backend URL serving filename untouched.
func (b *Browser) RawURL(filename string) string {
	return b.RawURLIn(b.Selected(), filename)
}

// RawURLIn is RawURL against an explicit dataset type.
func (b *Browser) RawURLIn(datasetType, filename string) string {
	return b.backend.DatasetURL(datasetType, filename)
}

// OpenRaw hands the raw URL of filename to Open.
func (b *Browser) OpenRaw(filename string) error {
	return b.OpenURL(b.Selected(), b.RawURL(filename))
}

// OpenURL hands u to Open, logging it under datasetType.
func (b *Browser) OpenURL(datasetType, u string) error {
	logger.Logf(datasetType, "open %s", u)
	open := b.Open
	if open == nil {
		open = pkgbrowser.OpenURL
	}
	return open(u)
}

// Delete removes filename from the current type and then re-fetches the
// list exactly once, whether or not the delete succeeded. The delete error is
// only logged.
func (b *Browser) Delete(ctx context.Context, filename string) []string {
	return b.DeleteIn(ctx, b.Selected(), filename)
}

// DeleteIn is Delete against an explicit dataset type. The re-fetch is for
// that type too.
func (b *Browser) DeleteIn(ctx context.Context, datasetType, filename string) []string {
	if err := b.backend.DeleteDataset(ctx, datasetType, filename); err != nil {
		logger.Logf(datasetType, "delete %s failed (%v)", filename, err)
	}
	return b.List(ctx, datasetType)
}
