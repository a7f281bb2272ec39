package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dsgen/dsgen-cli/internal/apperr"
)

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s", r.Method)
		}
		if r.URL.Path != "/generate/sft" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "multipart/form-data; boundary=xyz" {
			t.Fatalf("Content-Type = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("expected X-Request-ID header")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Fatalf("body = %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "SFT dataset generated successfully."})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0, "")
	msg, err := c.Submit(context.Background(), "/generate/sft", "multipart/form-data; boundary=xyz", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if msg != "SFT dataset generated successfully." {
		t.Fatalf("message = %q", msg)
	}
}

func TestSubmit_BackendErrorShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"Unsupported file format"}`, "Unsupported file format"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","topic"],"msg":"field required"},{"loc":["body","model"],"msg":"field required"}]}`, "topic: field required; model: field required"},
		{"error key", http.StatusBadRequest, `{"error":"Unsupported file format"}`, "Unsupported file format"},
		{"no body", http.StatusInternalServerError, ``, ""},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := &Client{BaseURL: srv.URL}
			_, err := c.Submit(context.Background(), "generate/rag_qa", "multipart/form-data", strings.NewReader(""))
			var be *apperr.BackendError
			if !errors.As(err, &be) {
				t.Fatalf("expected BackendError, got %T %v", err, err)
			}
			if be.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", be.StatusCode, tt.status)
			}
			if be.Detail != tt.want {
				t.Fatalf("detail = %q, want %q", be.Detail, tt.want)
			}
		})
	}
}

func TestSubmit_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, "")
	_, err := c.Submit(context.Background(), "/generate/sft", "multipart/form-data", strings.NewReader(""))
	if !apperr.IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %T %v", err, err)
	}
}

func TestClient_SetsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t0k" {
			t.Fatalf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, `{"datasets":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, "  t0k  ")
	if _, err := c.ListDatasets(context.Background(), "sft"); err != nil {
		t.Fatalf("ListDatasets error: %v", err)
	}
}

func TestListDatasets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datasets" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		switch r.URL.Query().Get("dataset_type") {
		case "sft":
			_, _ = io.WriteString(w, `{"datasets":["a.csv","b.csv"]}`)
		case "legacy":
			_, _ = io.WriteString(w, `{"files":["old.csv"]}`)
		default:
			_, _ = io.WriteString(w, `{"datasets":[]}`)
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	tests := []struct {
		typ  string
		want []string
	}{
		{"sft", []string{"a.csv", "b.csv"}},
		{"legacy", []string{"old.csv"}},
		{"rag_qa", []string{}},
	}
	for _, tt := range tests {
		got, err := c.ListDatasets(context.Background(), tt.typ)
		if err != nil {
			t.Fatalf("ListDatasets(%s) error: %v", tt.typ, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ListDatasets(%s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestFetchDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/datasets/sft/my file.csv":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = io.WriteString(w, "a,b\n1,2\n")
		case "/datasets/sft/gone.csv":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"error":"File not found"}`)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"File not found"}`)
		}
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}

	body, err := c.FetchDataset(context.Background(), "sft", "my file.csv")
	if err != nil {
		t.Fatalf("FetchDataset error: %v", err)
	}
	if !bytes.Equal(body, []byte("a,b\n1,2\n")) {
		t.Fatalf("body = %q", body)
	}

	_, err = c.FetchDataset(context.Background(), "sft", "gone.csv")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found for JSON error body, got %v", err)
	}

	_, err = c.FetchDataset(context.Background(), "sft", "missing.csv")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found for 404, got %v", err)
	}
	if err.Error() != "File not found" {
		t.Fatalf("detail = %q", err.Error())
	}
}

func TestDeleteDataset(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method = %s", r.Method)
		}
		if r.URL.Path == "/datasets/nl_sql/missing.csv" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"File not found"}`)
			return
		}
		deleted = r.URL.Path
		_, _ = io.WriteString(w, `{"message":"Dataset deleted successfully"}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if err := c.DeleteDataset(context.Background(), "nl_sql", "q.csv"); err != nil {
		t.Fatalf("DeleteDataset error: %v", err)
	}
	if deleted != "/datasets/nl_sql/q.csv" {
		t.Fatalf("deleted path = %q", deleted)
	}
	if err := c.DeleteDataset(context.Background(), "nl_sql", "missing.csv"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDatasetURL_EscapesAndDefaults(t *testing.T) {
	c := &Client{}
	got := c.DatasetURL("sft", "a b.csv")
	if got != "http://localhost:8000/datasets/sft/a%20b.csv" {
		t.Fatalf("DatasetURL = %q", got)
	}
}

func TestSetLogger_WritesRequestLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"datasets":[]}`)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	c := &Client{BaseURL: srv.URL}
	if _, err := c.ListDatasets(context.Background(), "classification"); err != nil {
		t.Fatalf("ListDatasets error: %v", err)
	}
	if !strings.Contains(buf.String(), "target=classification") {
		t.Fatalf("expected log line for classification, got %q", buf.String())
	}
}
