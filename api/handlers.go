// Package api exposes the expiring registry over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/krisalay/expiring-registry/types"
)

const (
	healthStatus = "I am healthier than you BROther"
	maxBodyBytes = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// domainRequest uses pointers so a missing field can be told apart from a zero value.
type domainRequest struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	Duration *int    `json:"duration"`
}

// Server routes HTTP requests to a Registry.
type Server struct {
	reg    Registry
	stats  func() any
	logger *log.Logger
}

// NewServer builds the HTTP layer. stats may be nil, in which case /stats is not served.
func NewServer(reg Registry, stats func() any) *Server {
	return &Server{
		reg:    reg,
		stats:  stats,
		logger: log.New(os.Stderr, "http: ", log.LstdFlags),
	}
}

// Routes returns the handler for every endpoint, wrapped in request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /domains", s.AddDomainHandler)
	mux.HandleFunc("GET /domains/active", s.ActiveDomainsHandler)
	mux.HandleFunc("GET /domains/{id}", s.DomainStatusHandler)
	mux.HandleFunc("GET /health", s.HealthHandler)
	if s.stats != nil {
		mux.HandleFunc("GET /stats", s.StatsHandler)
	}

	return s.logRequests(mux)
}

func (s *Server) AddDomainHandler(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == nil || req.Name == nil || req.Duration == nil {
		writeError(w, http.StatusBadRequest, "id, name and duration are required")
		return
	}

	rec, err := s.reg.Insert(r.Context(), types.Record{
		ID:       *req.ID,
		Name:     *req.Name,
		Duration: *req.Duration,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.logger.Printf("domain added: %+v", rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) ActiveDomainsHandler(w http.ResponseWriter, r *http.Request) {
	active := s.reg.ListActive()
	if active == nil {
		active = []types.Record{}
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) DomainStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a 32-bit integer")
		return
	}

	st, err := s.reg.GetStatus(int(id))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: healthStatus})
}

func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats())
}

// StatusFor maps a registry error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidRecord):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}
