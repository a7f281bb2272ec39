package form

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/spf13/afero"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/logging"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Form:", PrefixColor: ui.FgCyan, Field: "recipe"}

// SetLogger sets an optional destination for submission logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

// GenericFailure is shown when the backend gives no usable detail.
const GenericFailure = "backend error"

// ErrBusy is returned when Submit is called while a submission is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// OutcomeKind tags a submission outcome.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	Failure
)

func (k OutcomeKind) String() string {
	if k == Success {
		return "success"
	}
	return "failure"
}

// Outcome is the result of one submit attempt. Err holds the underlying
// error for failures.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Kind == Success }

// Poster sends an encoded body to a recipe endpoint.
type Poster interface {
	Submit(ctx context.Context, endpoint, contentType string, body io.Reader) (string, error)
}

// Submitter submits one recipe's form. It retains exactly one outcome and
// refuses overlapping submissions.
type Submitter struct {
	Recipe  recipe.Recipe
	Backend Poster
	Fs      afero.Fs // file fields are read from here; nil means the OS

	mu      sync.Mutex
	busy    bool
	outcome *Outcome
}

// NewSubmitter returns a Submitter for r posting through backend.
func NewSubmitter(r recipe.Recipe, backend Poster) *Submitter {
	return &Submitter{Recipe: r, Backend: backend}
}

// Busy reports whether a submission is in flight.
func (s *Submitter) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Outcome returns the retained outcome, if any.
func (s *Submitter) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Submit validates vs, posts it and records the outcome. The previous
// outcome is cleared before anything else happens. Validation failures never
// reach the backend.
func (s *Submitter) Submit(ctx context.Context, vs *Values) (Outcome, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	s.outcome = nil
	s.busy = true
	s.mu.Unlock()

	out := s.submit(ctx, vs)

	s.mu.Lock()
	s.busy = false
	s.outcome = &out
	s.mu.Unlock()

	return out, nil
}

func (s *Submitter) submit(ctx context.Context, vs *Values) Outcome {
	key := s.Recipe.Key

	payload, err := BuildPayload(s.Fs, s.Recipe, vs)
	if err != nil {
		logf(key, "not submitted (%v)", err)
		return Outcome{Kind: Failure, Message: err.Error(), Err: err}
	}

	logf(key, "submitting %d field(s) to %s", len(s.Recipe.Fields), s.Recipe.Endpoint)
	msg, err := s.Backend.Submit(ctx, s.Recipe.Endpoint, payload.ContentType, payload.Reader())
	if err != nil {
		logf(key, "failed (%v)", err)
		return Outcome{Kind: Failure, Message: failureMessage(err), Err: err}
	}

	logf(key, "ok")
	return Outcome{Kind: Success, Message: msg}
}

// failureMessage surfaces the backend detail when there is one and the
// generic message otherwise. Transport failures are not told apart from
// backend failures.
func failureMessage(err error) string {
	var be *apperr.BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	return GenericFailure
}

func logf(key string, format string, args ...any) {
	logger.Logf(key, format, args...)
}
