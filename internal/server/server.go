package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zgpcy/flowclock-exporter/internal/collector"
	"github.com/zgpcy/flowclock-exporter/internal/config"
	"github.com/zgpcy/flowclock-exporter/internal/logger"
	"github.com/zgpcy/flowclock-exporter/internal/provider"
	"github.com/zgpcy/flowclock-exporter/internal/version"
)

//go:embed templates/index.html
var indexTemplate string

var indexPage = template.Must(template.New("index").Parse(indexTemplate))

// HTTP server timeout constants
const (
	DefaultReadTimeout  = 15 * time.Second // Maximum duration for reading the entire request
	DefaultWriteTimeout = 15 * time.Second // Maximum duration before timing out writes of the response
	DefaultIdleTimeout  = 60 * time.Second // Maximum amount of time to wait for the next request
)

// indexPageData holds template data for the index page
type indexPageData struct {
	StatusClass    string
	StatusText     string
	LastSample     string
	WallClock      string
	DriftSeconds   string
	SampleInterval int
	Version        string
	FlagCount      int
	Flags          []provider.FlagState
}

// nowResponse is the body of /now
type nowResponse struct {
	SampledAt    time.Time        `json:"sampled_at"`
	DriftSeconds float64          `json:"drift_seconds"`
	Reading      provider.Reading `json:"reading"`
}

// Server represents the HTTP server
type Server struct {
	server    *http.Server
	collector *collector.ClockCollector
	cfg       *config.Config
	logger    *logger.Logger
}

// NewServer creates a new HTTP server. Metrics are served from gatherer.
func NewServer(cfg *config.Config, collector *collector.ClockCollector, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      mux,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		collector: collector,
		cfg:       cfg,
		logger:    log,
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/now", s.handleNow)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// handleIndex serves a simple landing page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	statusClass := "not-ready"
	statusText := "Not Ready"
	if s.collector.IsReady() {
		statusClass = "ready"
		statusText = "Ready"
	}

	lastSampleText := "Never"
	if lastSample := s.collector.LastSampleTime(); !lastSample.IsZero() {
		lastSampleText = lastSample.Format("2006-01-02 15:04:05 MST")
	}

	wallClockText := "Unknown"
	reading, ok := s.collector.LatestReading()
	if ok {
		wallClockText = fmt.Sprintf("%.3f", reading.WallSeconds)
	}

	data := indexPageData{
		StatusClass:    statusClass,
		StatusText:     statusText,
		LastSample:     lastSampleText,
		WallClock:      wallClockText,
		DriftSeconds:   fmt.Sprintf("%.3f", s.collector.Drift().Seconds()),
		SampleInterval: s.cfg.SampleInterval,
		Version:        version.Version,
		FlagCount:      s.collector.FlagCount(),
		Flags:          reading.Flags,
	}

	w.Header().Set("Content-Type", "text/html")
	if err := indexPage.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute index template", "error", err)
	}
}

// handleHealth handles health check requests (always returns 200 for liveness)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("Failed to write health response", "error", err)
	}
}

// handleReady handles readiness check requests (returns 200 only after a successful sample)
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := s.collector.LastError(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		s.writeJSON(w, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}

	if !s.collector.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"status":"not ready","message":"waiting for initial sample"}`)); err != nil {
			s.logger.Error("Failed to write ready response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ready"}`)); err != nil {
		s.logger.Error("Failed to write ready response", "error", err)
	}
}

// handleNow returns the latest reading as JSON
func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reading, ok := s.collector.LatestReading()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(`{"status":"not ready","message":"waiting for initial sample"}`)); err != nil {
			s.logger.Error("Failed to write now response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	s.writeJSON(w, nowResponse{
		SampledAt:    s.collector.LastSampleTime().UTC(),
		DriftSeconds: s.collector.Drift().Seconds(),
		Reading:      reading,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}
