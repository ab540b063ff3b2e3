// Package webapp is the upload-and-analyze front end. It only calls the
// pipeline entry point and renders the returned envelopes; it contains no
// scheduling logic of its own.
package webapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/dataset"
)

const maxUploadBytes = 32 << 20

// PipelineFactory builds a pipeline for one request's target column.
type PipelineFactory func(target string) input.PipelineRunner

type Config struct {
	Addr      string
	UploadDir string
	ReportDir string
	Pipelines PipelineFactory
	Logger    output.LoggerPort
}

type Server struct {
	addr      string
	uploadDir string
	reportDir string
	pipelines PipelineFactory
	logger    output.LoggerPort
	server    *http.Server
}

func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	s := &Server{
		addr:      cfg.Addr,
		uploadDir: cfg.UploadDir,
		reportDir: cfg.ReportDir,
		pipelines: cfg.Pipelines,
		logger:    cfg.Logger,
	}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Routes builds the router. Exposed for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httplog.RequestLogger(httplog.NewLogger("aiagents-web", httplog.Options{Concise: true})))

	r.Get("/", s.handleHome)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/download", s.handleDownload)
	return r
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("web front end listening", "addr", s.addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, "", "")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderIndex(w, "Could not read upload: "+err.Error(), "error")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderIndex(w, "No file uploaded.", "error")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.renderIndex(w, "Please upload a CSV file.", "error")
		return
	}

	target := strings.TrimSpace(r.FormValue("target"))

	path := filepath.Join(s.uploadDir, uuid.New().String()+".csv")
	if err := saveUpload(file, path); err != nil {
		s.renderIndex(w, "Could not store upload: "+err.Error(), "error")
		return
	}

	ds, err := dataset.Load(path)
	if err != nil {
		os.Remove(path)
		s.renderIndex(w, "Error reading CSV file: "+err.Error(), "error")
		return
	}

	if target != "" {
		if _, ok := ds.Column(target); !ok {
			os.Remove(path)
			s.renderIndex(w, fmt.Sprintf(
				"Target column %q not found in CSV. Available columns: %s",
				target, strings.Join(ds.ColumnNames(), ", ")), "error")
			return
		}
	}

	s.logger.Info("analysis requested", "file", header.Filename, "target", target)

	results := s.pipelines(target).Run(r.Context(), ds)
	s.renderResults(w, ds, target, results)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || !s.allowedArtifact(path) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// allowedArtifact restricts downloads to files inside the report directory.
func (s *Server) allowedArtifact(path string) bool {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(s.reportDir)
	if err != nil {
		return false
	}
	if !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// resultView is what the results template renders per envelope.
type resultView struct {
	Name     string
	Status   string
	OK       bool
	Duration string
	Error    string
}

func (s *Server) renderResults(w http.ResponseWriter, ds *entity.Dataset, target string, results *entity.ResultSet) {
	rows, cols := ds.Shape()

	view := struct {
		Rows, Cols int
		Target     string
		Results    []resultView
		PDFPath    string
	}{Rows: rows, Cols: cols, Target: target}

	for _, res := range results.All() {
		rv := resultView{
			Name:     res.AgentID,
			OK:       res.OK(),
			Status:   strings.ToUpper(string(res.Status)),
			Duration: fmt.Sprintf("%.2fs", res.Duration.Seconds()),
			Error:    res.Error,
		}
		view.Results = append(view.Results, rv)
	}

	if rep, ok := results.Get("report"); ok && rep.OK() {
		if artifact, ok := rep.Payload.(*entity.ReportArtifact); ok {
			view.PDFPath = artifact.PDFPath
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "results.html", view); err != nil {
		s.logger.Error("render results page", "error", err)
	}
}

func (s *Server) renderIndex(w http.ResponseWriter, flash, flashKind string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Flash     string
		FlashKind string
	}{Flash: flash, FlashKind: flashKind}
	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render index page", "error", err)
	}
}
