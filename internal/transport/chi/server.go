// Package chi exposes the articles API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/newsdeck/articles-api/internal/domain"
	articlesuc "github.com/newsdeck/articles-api/internal/usecase/articles"
	healthuc "github.com/newsdeck/articles-api/internal/usecase/health"
)

// notConfiguredDetail is the message clients rely on when the engine
// client was never built.
const notConfiguredDetail = "Elasticsearch client not configured. " +
	"Please set ELASTICSEARCH_ENDPOINT and ES_API_KEY environment variables."

// Server holds the HTTP handlers.
type Server struct {
	articles    *articlesuc.Service
	health      *healthuc.Service
	defaultSize int
	maxSize     int
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	articles *articlesuc.Service,
	health *healthuc.Service,
	defaultSize, maxSize int,
	logger *zap.Logger,
) *Server {
	return &Server{
		articles:    articles,
		health:      health,
		defaultSize: defaultSize,
		maxSize:     maxSize,
		logger:      logger,
	}
}

// Routes mounts all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/articles", s.ListArticles)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ListArticles handles GET /articles.
func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	size, err := intParam(r, "size", s.defaultSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if size < 1 || size > s.maxSize {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("size must be between 1 and %d", s.maxSize))
		return
	}

	page, err := intParam(r, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if page < 1 {
		writeError(w, http.StatusBadRequest, "page must be greater than or equal to 1")
		return
	}

	var requested []string
	if raw := r.URL.Query().Get("fields"); raw != "" {
		requested = strings.Split(raw, ",")
		for i := range requested {
			requested[i] = strings.TrimSpace(requested[i])
		}
	}

	result, err := s.articles.List(r.Context(), size, page, requested)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check()

	httpStatus := http.StatusOK
	if report.Status != healthuc.OK {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, statusResponse{Status: string(report.Status)})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// detailResponse is the error payload shape: {"detail": "..."}.
type detailResponse struct {
	Detail string `json:"detail"`
}

// statusResponse is the /health payload shape.
type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	var ife *domain.InvalidFieldsError
	switch {
	case errors.As(err, &ife):
		writeError(w, http.StatusBadRequest, ife.Error())
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEngineNotConfigured):
		s.logger.Warn("engine not configured")
		writeError(w, http.StatusInternalServerError, notConfiguredDetail)
	default:
		s.logger.Error("retrieve articles", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error retrieving articles: "+err.Error())
	}
}

// intParam reads an integer query parameter, falling back to def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
