package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dsgen/dsgen-cli/internal/apperr"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// errorBody covers the error shapes the backend produces: {"detail": "..."}
// from HTTPException, {"detail": [{"msg": ...}]} from request validation and
// {"error": "..."} from the dataset routes.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// decodeDetail extracts a human readable message from an error body.
// It returns "" when the body carries none.
func decodeDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var issues []validationIssue
		if err := json.Unmarshal(eb.Detail, &issues); err == nil && len(issues) > 0 {
			msgs := make([]string, 0, len(issues))
			for _, is := range issues {
				if field := lastLoc(is.Loc); field != "" {
					msgs = append(msgs, field+": "+is.Msg)
				} else {
					msgs = append(msgs, is.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if s := strings.TrimSpace(eb.Error); s != "" {
		return s
	}
	return strings.TrimSpace(eb.Message)
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

// backendError builds an *apperr.BackendError from a non-2xx response.
func backendError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &apperr.BackendError{
		StatusCode: resp.StatusCode,
		Detail:     decodeDetail(body),
	}
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }
