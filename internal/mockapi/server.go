// Package mockapi serves a local stand-in for the remote assessment API:
// paginated noisy patient records, transient faults, and the submit
// endpoint. It exists so the pipeline's shape adapters and retry policy
// can be exercised end to end without the real service.
package mockapi

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"github.com/medwatch/triage/internal/domain/model"
	"github.com/medwatch/triage/pkg/logger"
)

// Envelope shapes rotated across pages when RotateShapes is on.
var shapeKeys = []string{"data", "patients", "result"}

// Fault statuses injected at the configured rate.
var faultStatuses = []int{429, 500, 503}

// Server implements the mock assessment API.
type Server struct {
	cfg    Config
	roster []patientRecord
	log    logger.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	requests int
}

// New creates a Server with a roster generated from cfg.
func New(cfg Config, log logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		roster: generateRoster(cfg),
		log:    log,
		rng:    rand.New(rand.NewSource(cfg.Seed + 1)), //nolint:gosec // fault injection only
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/patients", s.handlePatients)
	mux.HandleFunc("/submit-assessment", s.handleSubmit)
	return mux
}

// RosterSize reports how many patients the server holds.
func (s *Server) RosterSize() int { return len(s.roster) }

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	if s.injectFault(w, r) {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 20 {
		limit = 20
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(s.roster) {
		start = len(s.roster)
	}
	if end > len(s.roster) {
		end = len(s.roster)
	}
	records := s.roster[start:end]

	totalPages := (len(s.roster) + limit - 1) / limit
	body := map[string]interface{}{
		s.shapeKey(page): records,
		"pagination": map[string]interface{}{
			"page":       page,
			"totalPages": totalPages,
			"hasNext":    page < totalPages,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.injectFault(w, r) {
		return
	}

	var payload model.AlertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "malformed payload"})
		return
	}

	if s.log != nil {
		s.log.Info(r.Context(), "assessment received",
			logger.Int("high_risk", len(payload.HighRisk)),
			logger.Int("fever", len(payload.Fever)),
			logger.Int("data_quality", len(payload.DataQuality)),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "accepted",
		"counts": map[string]int{
			"high_risk_patients":  len(payload.HighRisk),
			"fever_patients":      len(payload.Fever),
			"data_quality_issues": len(payload.DataQuality),
		},
	})
}

// injectFault answers a transient failure at the configured rate.
// Rate limits advertise a short Retry-After so clients exercising the
// header path stay fast.
func (s *Server) injectFault(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	s.requests++
	fault := s.cfg.FaultRate > 0 && s.rng.Float64() < s.cfg.FaultRate
	var status int
	if fault {
		status = faultStatuses[s.rng.Intn(len(faultStatuses))]
	}
	s.mu.Unlock()

	if !fault {
		return false
	}

	if status == 429 {
		w.Header().Set("Retry-After", "1")
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"transient"}`))

	if s.log != nil {
		s.log.Debug(r.Context(), "injected fault", logger.Int("status", status))
	}
	return true
}

// shapeKey picks the envelope key for a page.
func (s *Server) shapeKey(page int) string {
	if !s.cfg.RotateShapes {
		return "data"
	}
	return shapeKeys[(page-1)%len(shapeKeys)]
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
