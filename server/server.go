package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slide_illustrator/constraints"
	"slide_illustrator/generator"
	"slide_illustrator/template"
)

const requestTimeout = 90 * time.Second

// Server is the HTTP boundary. It holds only read-only collaborators, so
// every request is handled independently with no shared mutable state.
type Server struct {
	agents    map[generator.DiagramKind]*generator.Agent
	templates *template.Store
	store     *constraints.Store
	logger    *zap.Logger
}

// New wires the server and verifies at startup that every template variant
// has matching constraint definitions; a mismatch is a configuration error,
// not something to discover mid-request.
func New(agents map[generator.DiagramKind]*generator.Agent, templates *template.Store, store *constraints.Store, logger *zap.Logger) (*Server, error) {
	if templates == nil || store == nil {
		return nil, errors.New("template and constraint stores are required")
	}
	for _, kind := range []generator.DiagramKind{generator.KindPyramid, generator.KindFunnel, generator.KindCircles} {
		if agents[kind] == nil {
			return nil, fmt.Errorf("agent for %s diagrams is required", kind)
		}
	}
	if err := templates.CheckAgainst(store); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{agents: agents, templates: templates, store: store, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pyramid/generate", s.handlePyramid)
	mux.HandleFunc("/api/funnel/generate", s.handleFunnel)
	mux.HandleFunc("/api/circles/generate", s.handleCircles)
	mux.HandleFunc("/api/variants", s.handleVariants)
	mux.HandleFunc("/api/health", s.handleHealth)
	return s.logMiddleware(mux)
}

// --- Handlers ---

func (s *Server) handlePyramid(w http.ResponseWriter, r *http.Request) {
	var req pyramidRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.NumLevels < 3 || req.NumLevels > 6 {
		s.writeError(w, http.StatusBadRequest, "num_levels must be between 3 and 6")
		return
	}
	if req.GenerateOverview && req.NumLevels > 4 {
		s.writeError(w, http.StatusBadRequest, "generate_overview is only available for 3 and 4 level pyramids")
		return
	}
	variant := fmt.Sprintf("pyramid_%d", req.NumLevels)
	if req.GenerateOverview {
		variant += "_overview"
	}
	s.generate(w, r, generator.KindPyramid, variant, req.NumLevels, req.requestCommon)
}

func (s *Server) handleFunnel(w http.ResponseWriter, r *http.Request) {
	var req funnelRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.NumStages < 3 || req.NumStages > 5 {
		s.writeError(w, http.StatusBadRequest, "num_stages must be between 3 and 5")
		return
	}
	s.generate(w, r, generator.KindFunnel, fmt.Sprintf("funnel_%d", req.NumStages), req.NumStages, req.requestCommon)
}

func (s *Server) handleCircles(w http.ResponseWriter, r *http.Request) {
	var req circlesRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.NumCircles < 3 || req.NumCircles > 5 {
		s.writeError(w, http.StatusBadRequest, "num_circles must be between 3 and 5")
		return
	}
	s.generate(w, r, generator.KindCircles, fmt.Sprintf("circles_%d", req.NumCircles), req.NumCircles, req.requestCommon)
}

// generate runs the shared pipeline: orchestrate attempts, fill the template,
// assemble the response.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, kind generator.DiagramKind, variant string, sections int, common requestCommon) {
	if len(strings.TrimSpace(common.Topic)) < 3 {
		s.writeError(w, http.StatusBadRequest, "topic must be at least 3 characters")
		return
	}
	theme, err := template.LookupTheme(common.Theme)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := template.LookupSize(common.Size)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tpl, err := s.templates.Get(variant)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	maxRetries := generator.DefaultMaxRetries
	if common.MaxRetries != nil {
		if *common.MaxRetries < 0 {
			s.writeError(w, http.StatusBadRequest, "max_retries must not be negative")
			return
		}
		maxRetries = *common.MaxRetries
	}
	tone := common.Tone
	if tone == "" {
		tone = "professional"
	}
	audience := common.Audience
	if audience == "" {
		audience = "general"
	}

	spec := generator.Spec{
		Kind:         kind,
		Variant:      variant,
		Sections:     sections,
		Topic:        strings.TrimSpace(common.Topic),
		TargetLabels: common.TargetLabels,
		Narrative:    common.NarrativeContext,
		Tone:         tone,
		Audience:     audience,
		MaxRetries:   maxRetries,
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	outcome, err := s.agents[kind].Generate(ctx, spec)
	if err != nil {
		if generator.IsModelError(err) {
			s.writeError(w, http.StatusBadGateway, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	tokens := make(map[string]string, len(outcome.Content)+10)
	for k, v := range theme.Tokens() {
		tokens[k] = v
	}
	for k, v := range size.Tokens() {
		tokens[k] = v
	}
	for k, v := range outcome.Content {
		tokens[k] = v
	}
	markup := template.Fill(tpl, tokens)

	counts, err := constraints.Counts(s.store, variant, outcome.Content)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	doc := generator.Assemble(outcome, markup, counts, time.Since(start))
	writeJSON(w, http.StatusOK, generateResponse{
		Success:         true,
		Markup:          doc.Markup,
		Content:         doc.Content,
		CharacterCounts: doc.Counts,
		Validation:      doc.Validation,
		Metadata:        doc.Metadata,
		PresentationID:  common.PresentationID,
		SlideID:         common.SlideID,
		SlideNumber:     common.SlideNumber,
	})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	variants := make([]variantInfo, 0)
	for _, variant := range s.store.Variants() {
		specs, err := s.store.Fields(variant)
		if err != nil {
			continue
		}
		fields := make([]fieldInfo, len(specs))
		for i, fs := range specs {
			fields[i] = fieldInfo{Field: fs.Field, MinChars: fs.Min, MaxChars: fs.Max, Note: fs.Note}
		}
		variants = append(variants, variantInfo{Variant: variant, Fields: fields})
	}
	writeJSON(w, http.StatusOK, map[string]any{"variants": variants})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("request_id", uuid.NewString()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
