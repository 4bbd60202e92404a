package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/papergest/internal/config"
	"github.com/dgallion1/papergest/internal/paper"
	"github.com/dgallion1/papergest/internal/parser"
	"github.com/dgallion1/papergest/internal/source"
)

type fakeIngester struct {
	doc  *paper.Document
	err  error
	last source.Descriptor
}

func (f *fakeIngester) Ingest(ctx context.Context, d source.Descriptor) (*paper.Document, error) {
	f.last = d
	return f.doc, f.err
}

func newTestServer(t *testing.T, pipe Ingester, cfg config.Config) *Server {
	t.Helper()
	return NewServer(pipe, nil, slog.New(slog.DiscardHandler), cfg)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeIngester{}, config.Config{})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestIngest_Success(t *testing.T) {
	title := "A Study of Paper Segmentation"
	fi := &fakeIngester{doc: &paper.Document{
		Title:      &title,
		PDFPath:    "/tmp/paper_cache/arxiv_2301.00001.pdf",
		Pages:      4,
		Sections:   []paper.Section{{Title: "Abstract", Content: "Body."}},
		Source:     "2301.00001",
		SourceType: "arxiv",
	}}
	s := newTestServer(t, fi, config.Config{})

	body := strings.NewReader(`{"source_type":"arxiv","source":"2301.00001"}`)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/papers", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if fi.last.Kind != source.KindArxiv || fi.last.Value != "2301.00001" {
		t.Errorf("descriptor not passed through: %+v", fi.last)
	}

	var doc paper.Document
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not a document: %v", err)
	}
	if doc.Title == nil || *doc.Title != title {
		t.Errorf("expected title %q, got %v", title, doc.Title)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Title != "Abstract" {
		t.Errorf("unexpected sections %+v", doc.Sections)
	}
}

func TestIngest_BadRequests(t *testing.T) {
	s := newTestServer(t, &fakeIngester{}, config.Config{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing source", `{"source_type":"arxiv"}`},
		{"unknown source type", `{"source_type":"ftp","source":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/papers", strings.NewReader(tt.body)))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestIngest_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &source.NotFoundError{Source: "x"}, http.StatusNotFound},
		{"download failed", &source.DownloadError{URL: "http://x", Status: 503}, http.StatusBadGateway},
		{"corrupt file", &parser.CorruptError{Path: "/x.pdf", Err: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeIngester{err: tt.err}, config.Config{})

			body := strings.NewReader(`{"source_type":"local","source":"x"}`)
			rr := httptest.NewRecorder()
			s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/papers", body))

			if rr.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rr.Code)
			}
			var envelope map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if envelope["error"] == "" {
				t.Error("expected error message in envelope")
			}
		})
	}
}

func TestList_DisabledIndex(t *testing.T) {
	s := newTestServer(t, &fakeIngester{}, config.Config{})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/papers", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 when index disabled, got %d", rr.Code)
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, &fakeIngester{doc: &paper.Document{Sections: []paper.Section{}}}, config.Config{APIKey: "secret"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"valid key", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/papers", strings.NewReader(`{"source_type":"local","source":"x"}`))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			s.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestAuth_HealthStaysOpen(t *testing.T) {
	s := newTestServer(t, &fakeIngester{}, config.Config{APIKey: "secret"})

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected health without auth, got %d", rr.Code)
	}
}
