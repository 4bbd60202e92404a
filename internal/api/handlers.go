package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/papergest/internal/parser"
	"github.com/dgallion1/papergest/internal/source"
)

type ingestRequest struct {
	SourceType string `json:"source_type"`
	Source     string `json:"source"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		jsonError(w, "source is required", http.StatusBadRequest)
		return
	}

	kind, err := source.ParseKind(req.SourceType)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := s.pipe.Ingest(r.Context(), source.Descriptor{Kind: kind, Value: req.Source})
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.idx == nil {
		jsonError(w, "paper index is disabled", http.StatusNotFound)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := s.idx.List(r.Context(), limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"papers": records})
}

// statusFor maps pipeline failures to HTTP statuses. The response body shape
// is the same JSON error envelope in every case.
func statusFor(err error) int {
	var notFound *source.NotFoundError
	var download *source.DownloadError
	var corrupt *parser.CorruptError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &download):
		return http.StatusBadGateway
	case errors.As(err, &corrupt):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
