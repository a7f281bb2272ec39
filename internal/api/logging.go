package api

import (
	"io"

	"github.com/dsgen/dsgen-cli/internal/logging"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "API:", PrefixColor: ui.FgMagenta, Field: "target"}

// SetLogger sets an optional destination for backend request logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(target string, format string, args ...any) {
	logger.Logf(target, format, args...)
}
