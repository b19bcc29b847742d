// Package server serves the dashboard over HTTP: an HTML page, a JSON API,
// upload and export endpoints.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"fjacquet/dre-report/internal/aggregator"
	"fjacquet/dre-report/internal/currencyutils"
	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

// MaxUploadBytes caps the size of an uploaded spreadsheet.
const MaxUploadBytes = 32 << 20

// MsgNoData is shown when there is no dataset to compute from.
const MsgNoData = "Nenhum dado carregado. Envie uma planilha para começar."

// Options configures the server.
type Options struct {
	Addr       string
	Aggregator aggregator.Options
	Export     export.Options
	ExportFile string
}

// Server is the dashboard HTTP server.
type Server struct {
	http.Server
	session   *viewstate.Session
	datasets  *dataset.Service
	opts      Options
	templates *template.Template
	logger    logging.Logger
}

// NewServer builds a server around session. datasets handles uploads.
func NewServer(opts Options, datasets *dataset.Service, session *viewstate.Session, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if session == nil {
		session = viewstate.NewSession()
	}
	if opts.ExportFile == "" {
		opts.ExportFile = export.DefaultFileName
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"brl":   currencyutils.FormatBRL,
		"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"neg":   func(d decimal.Decimal) bool { return d.IsNegative() },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		session:   session,
		datasets:  datasets,
		opts:      opts,
		templates: tmpl,
		logger:    logger.WithField("component", "server"),
	}
	s.Addr = opts.Addr
	s.Handler = s.routes()
	s.ReadTimeout = 30 * time.Second
	s.WriteTimeout = 30 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/stores", s.handleStores)
	mux.HandleFunc("POST /api/upload", s.handleAPIUpload)
	mux.HandleFunc("POST /upload", s.handleFormUpload)
	mux.HandleFunc("GET /export/summary.csv", s.handleExportSummary(export.FormatCSV))
	mux.HandleFunc("GET /export/summary.xlsx", s.handleExportSummary(export.FormatXLSX))
	mux.HandleFunc("GET /export/rows.csv", s.handleExportRows)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting dashboard server", logging.F(logging.FieldAddr, s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}

func filtersFrom(r *http.Request) viewstate.Filters {
	q := r.URL.Query()
	return viewstate.Filters{Store: q.Get("store"), Account: q.Get("account")}
}

// view builds the dashboard for the request filters. ok is false when no
// dataset is loaded.
func (s *Server) view(r *http.Request) (d dashboard.Dashboard, ok bool) {
	s.session.View(filtersFrom(r), func(st viewstate.State) {
		if !st.HasData() {
			return
		}
		d = dashboard.Build(st, s.opts.Aggregator)
		ok = true
	})
	return d, ok
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("Failed to write JSON response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Handled request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	})
}

func uploadStatus(err error) int {
	if parsererror.IsUserError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
