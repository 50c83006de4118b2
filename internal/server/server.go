package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/youmna-rabie/uid2gateway/internal/history"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

const defaultListLimit = 50

// GatewayLookup resolves phone numbers against the gateway file.
type GatewayLookup interface {
	FindGateway(phone string) types.Result
	Records() ([]types.Record, error)
}

// Server exposes gateway lookups over HTTP and keeps a history of what it served.
type Server struct {
	lookup  GatewayLookup
	history history.Store
	router  chi.Router
	logger  *slog.Logger
}

// NewServer creates a Server wired with the given dependencies.
func NewServer(lookup GatewayLookup, store history.Store, logger *slog.Logger) *Server {
	s := &Server{
		lookup:  lookup,
		history: store,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(Recovery(logger))

	r.Get("/gateways/{phone}", s.handleLookup)
	r.Get("/health", s.handleHealth)
	r.Get("/admin/lookups", s.handleAdminLookups)
	r.Get("/admin/records", s.handleAdminRecords)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleLookup serves GET /gateways/{phone}.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	start := time.Now()
	res := s.lookup.FindGateway(phone)
	observeLookup(res.Status, time.Since(start))

	entry := types.LookupEntry{
		PhoneNumber: phone,
		GatewayID:   res.GatewayID,
		Status:      res.Status,
		RequestID:   RequestIDFromContext(r.Context()),
		Timestamp:   start,
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	if err := s.history.Save(entry); err != nil {
		s.logger.Warn("failed to record lookup", "error", err, "request_id", entry.RequestID)
	}

	switch res.Status {
	case types.StatusFound:
		writeJSON(w, http.StatusOK, types.Record{GatewayID: res.GatewayID, PhoneNumber: phone})
	case types.StatusNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("no gateway for %s", phone),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to read gateway file",
		})
	}
}

// handleHealth responds to GET /health with a simple liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminLookups responds to GET /admin/lookups with recent lookups.
func (s *Server) handleAdminLookups(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("invalid limit: %q", v),
			})
			return
		}
		limit = n
	}

	entries, err := s.history.List(limit, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to list lookups",
		})
		return
	}
	if entries == nil {
		entries = []types.LookupEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lookups": entries,
		"count":   len(entries),
	})
}

// handleAdminRecords responds to GET /admin/records with the whole gateway file.
func (s *Server) handleAdminRecords(w http.ResponseWriter, _ *http.Request) {
	records, err := s.lookup.Records()
	if err != nil {
		s.logger.Error("error reading gateway file", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to read gateway file",
		})
		return
	}
	if records == nil {
		records = []types.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
