// Package web serves the variant viewer: an HTML table of enriched
// variants backed by the store, plus a form for adding input rows.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/variantlab/variantview/internal/store"
	"github.com/variantlab/variantview/internal/vcf"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Server renders the viewer pages.
type Server struct {
	store  *store.Store
	logger *zap.Logger
}

// NewServer creates a viewer over the given store.
func NewServer(s *store.Store) *Server {
	return &Server{
		store:  s,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for request and error messages.
func (s *Server) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/inputs", s.handleInputs)
	r.Get("/add", s.handleAddForm)
	r.Post("/add", s.handleAddSubmit)
	r.Get("/healthz", s.handleHealthz)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListEnriched()
	if err != nil {
		s.serverError(w, "list enriched variants", err)
		return
	}
	s.render(w, "variants.html", rows)
}

func (s *Server) handleInputs(w http.ResponseWriter, r *http.Request) {
	inputs, err := s.store.ListInputs()
	if err != nil {
		s.serverError(w, "list inputs", err)
		return
	}
	s.render(w, "inputs.html", inputs)
}

// addPage carries form feedback back into the add template.
type addPage struct {
	Error string
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "add_variant.html", addPage{})
}

func (s *Server) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	in, err := parseAddForm(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "add_variant.html", addPage{Error: err.Error()})
		return
	}

	if err := s.store.InsertInput(in); err != nil {
		s.logger.Warn("manual variant insert failed",
			zap.Int("patient", in.PatientID),
			zap.Int("ordinal", in.VariantNumber),
			zap.Error(err))
		w.WriteHeader(http.StatusConflict)
		s.render(w, "add_variant.html", addPage{Error: "variant already exists or could not be stored"})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func parseAddForm(r *http.Request) (store.Input, error) {
	patientID, err := strconv.Atoi(r.FormValue("patient_id"))
	if err != nil || patientID <= 0 {
		return store.Input{}, fmt.Errorf("patient_id must be a positive integer")
	}
	variantNumber, err := strconv.Atoi(r.FormValue("variant_number"))
	if err != nil || variantNumber < 1 {
		return store.Input{}, fmt.Errorf("variant_number must be a positive integer")
	}
	pos, err := strconv.ParseInt(r.FormValue("pos"), 10, 64)
	if err != nil || pos < 1 {
		return store.Input{}, fmt.Errorf("pos must be a positive integer")
	}

	chrom := strings.TrimSpace(r.FormValue("chrom"))
	ref := strings.TrimSpace(r.FormValue("ref"))
	alt := strings.TrimSpace(r.FormValue("alt"))
	if chrom == "" || ref == "" || alt == "" {
		return store.Input{}, fmt.Errorf("chrom, ref, and alt are required")
	}

	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		id = "."
	}

	return store.Input{
		PatientID:     patientID,
		VariantNumber: variantNumber,
		Record: vcf.Record{
			Chrom: chrom,
			Pos:   pos,
			ID:    id,
			Ref:   ref,
			Alt:   alt,
		},
	}, nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render template failed",
			zap.String("template", name),
			zap.Error(err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	s.logger.Error("request failed", zap.String("operation", what), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
