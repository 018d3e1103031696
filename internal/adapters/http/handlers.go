package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/carbondash/carbondash"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/oapi-codegen/runtime"
)

// apiVersion tracks the OpenAPI document served at /openapi.yaml.
const apiVersion = "1.0.0"

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "carbondash-http",
		"version":     carbondash.Version,
		"api_version": apiVersion,
	})
}

// GetAreas handles the GET /api/v1/areas request.
func (s *Server) GetAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Areas())
}

// GetSeries handles the GET /api/v1/series request.
func (s *Server) GetSeries(w http.ResponseWriter, r *http.Request) {
	areas, ok := s.bindAreas(w, r)
	if !ok {
		return
	}

	series, err := s.svc.Series(r.Context(), areas)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// GetHeatmap handles the GET /api/v1/heatmap request.
func (s *Server) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	areas, ok := s.bindAreas(w, r)
	if !ok {
		return
	}

	hm, err := s.svc.Heatmap(r.Context(), areas)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hm)
}

// GetSummary handles the GET /api/v1/summary request.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Summary())
}

// PostReload handles the POST /api/v1/reload request.
func (s *Server) PostReload(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("reload failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Summary())
}

// bindAreas extracts the comma-separated "areas" query parameter using
// form-style binding, matching the OpenAPI parameter definition.
func (s *Server) bindAreas(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var areas []string
	err := runtime.BindQueryParameter("form", false, true, "areas", r.URL.Query(), &areas)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid areas parameter: %v", err))
		return nil, false
	}
	return areas, true
}

func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAreaNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoData):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Status is already written; nothing left to do but note it.
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSSE(w http.ResponseWriter, event, data string) {
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
