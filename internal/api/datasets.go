package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dsgen/dsgen-cli/internal/apperr"
)

// DatasetList is the body of GET /datasets. Older backends answer with a
// "files" key instead of "datasets".
type DatasetList struct {
	Datasets []string `json:"datasets"`
	Files    []string `json:"files"`
}

// Names returns whichever list the backend filled.
func (l DatasetList) Names() []string {
	if l.Datasets != nil {
		return l.Datasets
	}
	if l.Files != nil {
		return l.Files
	}
	return []string{}
}

// DatasetURL is the retrieval URL of one generated file.
func (c *Client) DatasetURL(datasetType, filename string) string {
	return fmt.Sprintf("%s/datasets/%s/%s", c.baseURL(), url.PathEscape(datasetType), url.PathEscape(filename))
}

// ListDatasets returns the filenames in a dataset-type bucket.
func (c *Client) ListDatasets(ctx context.Context, datasetType string) ([]string, error) {
	params := url.Values{}
	params.Set("dataset_type", datasetType)
	u := c.baseURL() + "/datasets?" + params.Encode()
	logf(datasetType, "GET /datasets")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logf(datasetType, "request error (%v)", err)
		return nil, &apperr.NetworkError{Op: "GET /datasets", Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		logf(datasetType, "non-2xx status=%d", resp.StatusCode)
		return nil, backendError(resp)
	}

	var parsed DatasetList
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logf(datasetType, "decode error (%v)", err)
		return nil, err
	}
	names := parsed.Names()
	logf(datasetType, "ok files=%d", len(names))
	return names, nil
}

// FetchDataset returns the raw body of one generated file.
//
// Some backend versions answer a missing file with 200 and a JSON
// {"error": ...} body; that case is reported as a 404 BackendError.
func (c *Client) FetchDataset(ctx context.Context, datasetType, filename string) ([]byte, error) {
	u := c.DatasetURL(datasetType, filename)
	logf(datasetType, "GET %s", filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logf(datasetType, "request error (%v)", err)
		return nil, &apperr.NetworkError{Op: "GET " + filename, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		logf(datasetType, "non-2xx status=%d", resp.StatusCode)
		return nil, backendError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.NetworkError{Op: "GET " + filename, Err: err}
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		if detail := decodeDetail(body); detail != "" {
			logf(datasetType, "error body for %s: %s", filename, detail)
			return nil, &apperr.BackendError{StatusCode: http.StatusNotFound, Detail: detail}
		}
	}

	logf(datasetType, "ok bytes=%d", len(body))
	return body, nil
}

// DeleteDataset removes one generated file.
func (c *Client) DeleteDataset(ctx context.Context, datasetType, filename string) error {
	u := c.DatasetURL(datasetType, filename)
	logf(datasetType, "DELETE %s", filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logf(datasetType, "request error (%v)", err)
		return &apperr.NetworkError{Op: "DELETE " + filename, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		logf(datasetType, "non-2xx status=%d", resp.StatusCode)
		return backendError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	logf(datasetType, "deleted %s", filename)
	return nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(strings.TrimSpace(contentType), "application/json")
	}
	return mt == "application/json"
}
