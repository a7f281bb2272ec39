package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/recipe"
)

// numericField is the only field name coerced to a number before sending.
// Other number fields go out exactly as entered.
const numericField = "num_pairs"

// Payload is an encoded multipart body ready to post.
type Payload struct {
	ContentType string
	Body        []byte
}

// Reader returns a fresh reader over the body.
func (p *Payload) Reader() io.Reader { return bytes.NewReader(p.Body) }

// BuildPayload validates vs against r and encodes one multipart part per
// field, in declaration order. File fields are read from fsys.
func BuildPayload(fsys afero.Fs, r recipe.Recipe, vs *Values) (*Payload, error) {
	if err := Validate(r, vs); err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range r.Fields {
		v, _ := vs.Get(f.Name)

		if f.Kind == recipe.KindFile {
			if err := writeFilePart(w, fsys, f, v); err != nil {
				return nil, err
			}
			continue
		}

		text := v.Text
		if f.Name == numericField {
			n, err := coerceNumber(text)
			if err != nil {
				return nil, &apperr.ValidationError{Field: f.Name, Label: f.Label, Reason: "must be a number"}
			}
			text = n
		}
		if err := w.WriteField(f.Name, text); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	return &Payload{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

func writeFilePart(w *multipart.Writer, fsys afero.Fs, f recipe.FieldDescriptor, v Value) error {
	path := strings.TrimSpace(v.Path)
	if path == "" {
		path = strings.TrimSpace(v.Text)
	}

	src, err := fsys.Open(path)
	if err != nil {
		return apperr.Userf("%s: cannot open %s: %v", f.Label, path, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Name, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// coerceNumber parses s as a number and renders it canonically,
// e.g. " 05 " -> "5", "2.50" -> "2.5".
func coerceNumber(s string) (string, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}
