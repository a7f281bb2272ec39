package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dsgen/dsgen-cli/internal/apperr"
)

// SubmitResponse is the success body of a /generate/* call.
type SubmitResponse struct {
	Message string `json:"message"`
}

// Submit posts a multipart body to a recipe endpoint and returns the
// backend's success message.
//
// Non-2xx responses yield *apperr.BackendError; transport failures yield
// *apperr.NetworkError.
func (c *Client) Submit(ctx context.Context, endpoint, contentType string, body io.Reader) (string, error) {
	endpoint = "/" + strings.TrimLeft(strings.TrimSpace(endpoint), "/")
	op := http.MethodPost + " " + endpoint
	logf(endpoint, "POST")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logf(endpoint, "request error (%v)", err)
		return "", &apperr.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		logf(endpoint, "non-2xx status=%d", resp.StatusCode)
		return "", backendError(resp)
	}

	var parsed SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		logf(endpoint, "decode error (%v)", err)
		return "", err
	}
	logf(endpoint, "ok")
	return parsed.Message, nil
}
