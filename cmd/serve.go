package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/engine"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/validation"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation API server",
	Long: `Run an HTTP server exposing the recommendation engine.

Endpoints:
  POST /api/v1/recommend   score a usage profile against the catalog
  GET  /api/v1/plans       list the loaded plan catalog
  GET  /healthz            liveness probe
  GET  /metrics            Prometheus metrics`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "address to bind")
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().Int("top", 3, "default number of recommendations per request")
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tariffai_http_requests_total",
		Help: "Total HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tariffai_http_request_duration_seconds",
		Help:    "HTTP request latency by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	recommendationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tariffai_recommendations_total",
		Help: "Total recommendation records served.",
	})
)

// recommendRequest is the POST /api/v1/recommend payload.
type recommendRequest struct {
	Usage models.UsageProfile `json:"usage"`
	TopN  int                 `json:"top_n,omitempty"`
}

// recommendResponse is the POST /api/v1/recommend reply.
type recommendResponse struct {
	RequestID       string                          `json:"request_id"`
	CustomerID      string                          `json:"customer_id"`
	Recommendations []models.RecommendationCandidate `json:"recommendations"`
}

type apiError struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// server carries the immutable state shared by all handlers.
type server struct {
	engine     engine.RecommendationEngine
	catalog    models.Catalog
	defaultTop int
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	defaultTop, _ := cmd.Flags().GetInt("top")

	catalog, skipped, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("Loaded plan catalog", "plans", len(catalog), "skipped", len(skipped))

	srv := &server{
		engine:     engine.New(logger),
		catalog:    catalog,
		defaultTop: defaultTop,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/recommend", srv.instrument("recommend", srv.handleRecommend))
	mux.HandleFunc("/api/v1/plans", srv.instrument("plans", srv.handlePlans))
	mux.HandleFunc("/healthz", srv.instrument("healthz", srv.handleHealth))
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", httpServer.Addr, "version", version.GetVersion())
		serverErrors <- httpServer.ListenAndServe()
	}()

	// Wait for interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-interrupt:
		logger.Info("Shutting down server", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			if closeErr := httpServer.Close(); closeErr != nil {
				logger.Error("Failed to force close server", "error", closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// instrument wraps a handler with request ID assignment, logging and metrics.
func (s *server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	logger := GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(withRequestID(r.Context(), requestID)))

		duration := time.Since(start)
		requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", rec.status)).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
		logger.Debug("Handled request",
			"request_id", requestID,
			"endpoint", endpoint,
			"method", r.Method,
			"status", rec.status,
			"duration", duration)
	}
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	if r.Method != http.MethodPost {
		writeJSONError(w, requestID, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, requestID, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Usage.CustomerID == "" {
		req.Usage.CustomerID = requestID
	}
	if result := validation.ValidateUsage(&req.Usage); !result.Valid {
		writeJSONError(w, requestID, http.StatusBadRequest, result.Errors[0].Error())
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.defaultTop
	}

	candidates := s.engine.Recommend(req.Usage, s.catalog, topN)
	recommendationsTotal.Add(float64(len(candidates)))

	writeJSON(w, http.StatusOK, recommendResponse{
		RequestID:       requestID,
		CustomerID:      req.Usage.CustomerID,
		Recommendations: candidates,
	})
}

func (s *server) handlePlans(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	if r.Method != http.MethodGet {
		writeJSONError(w, requestID, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"request_id": requestID,
		"total":      len(s.catalog),
		"plans":      s.catalog,
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		GetLogger().Error("Failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, requestID string, status int, msg string) {
	writeJSON(w, status, apiError{RequestID: requestID, Error: msg})
}
