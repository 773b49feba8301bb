// Package http exposes the detection pipeline over HTTP alongside the
// health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/troposcan/detection-service/internal/domain"
	"github.com/troposcan/detection-service/internal/pipeline"
	"github.com/troposcan/detection-service/internal/samples"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 10 << 20

// Alerter publishes non-low detection results to downstream consumers.
// A nil Alerter disables alerting.
type Alerter interface {
	PublishAlert(ctx context.Context, requestID string, result domain.Result) error
}

// SampleCatalog lists the pre-supplied demonstration images.
type SampleCatalog interface {
	List() []samples.Info
}

// ModelInfo describes the segmentation variant selected at startup.
type ModelInfo struct {
	ModelType   domain.ModelType `json:"model_type"`
	ModelPath   string           `json:"model_path,omitempty"`
	ModelLoaded bool             `json:"model_loaded"`
}

// Server exposes the detection API.
type Server struct {
	httpServer     *http.Server
	detector       *pipeline.Detector
	catalog        SampleCatalog
	alerter        Alerter
	modelInfo      ModelInfo
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewServer creates the detection HTTP server. Pass a nil alerter to disable
// alert publishing.
func NewServer(addr string, detector *pipeline.Detector, catalog SampleCatalog, alerter Alerter, modelInfo ModelInfo, requestTimeout time.Duration, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		detector:       detector,
		catalog:        catalog,
		alerter:        alerter,
		modelInfo:      modelInfo,
		requestTimeout: requestTimeout,
		logger:         logger,
	}

	mux.HandleFunc("POST /api/detect", s.handleDetect)
	mux.HandleFunc("POST /api/sample/{id}", s.handleSample)
	mux.HandleFunc("GET /api/sample-images", s.handleSampleList)
	mux.HandleFunc("GET /api/model-info", s.handleModelInfo)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type detectionResponse struct {
	Success   bool          `json:"success"`
	RequestID string        `json:"request_id"`
	Result    domain.Result `json:"result"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form with an 'image' field")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image file provided; use 'image' as the form field name")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	logger.Debug("upload received", "filename", header.Filename, "bytes", header.Size)

	s.runDetection(w, r, requestID, logger, func(ctx context.Context) (domain.Result, error) {
		return s.detector.Detect(ctx, raw)
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	sampleID := r.PathValue("id")
	logger := s.logger.With("request_id", requestID, "sample_id", sampleID)

	s.runDetection(w, r, requestID, logger, func(ctx context.Context) (domain.Result, error) {
		return s.detector.DetectSample(ctx, sampleID)
	})
}

func (s *Server) runDetection(w http.ResponseWriter, r *http.Request, requestID string, logger *slog.Logger, detect func(context.Context) (domain.Result, error)) {
	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	result, err := detect(ctx)
	if err != nil {
		status := statusFor(err)
		logger.Warn("detection failed", "status", status, "error", err)
		writeError(w, status, err.Error())
		return
	}

	s.publishAlert(requestID, logger, result)

	writeJSON(w, http.StatusOK, detectionResponse{
		Success:   true,
		RequestID: requestID,
		Result:    result,
	})
}

// publishAlert forwards non-low results to the alerter. Publish failures are
// logged, never surfaced to the client.
func (s *Server) publishAlert(requestID string, logger *slog.Logger, result domain.Result) {
	if s.alerter == nil || result.Tier == domain.TierLow {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.alerter.PublishAlert(ctx, requestID, result); err != nil {
		logger.Error("alert publish failed", "tier", result.Tier, "error", err)
	}
}

func (s *Server) handleSampleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"samples": s.catalog.List()})
}

func (s *Server) handleModelInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.modelInfo)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_type":   s.modelInfo.ModelType,
		"model_loaded": s.modelInfo.ModelLoaded,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.detector.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDecode), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, samples.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
