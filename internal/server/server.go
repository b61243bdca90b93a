// Package server implements the civmod backend HTTP service: document
// load/save, export/build, validation, and reference data, served as
// JSON over a chi router.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/buildinfo"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/storage"
)

// Server is the backend HTTP service.
type Server struct {
	store   storage.Store
	refdata *refdata.Store
	logger  *log.Logger
	router  chi.Router
}

// New assembles the service around a document store and a reference
// data store.
func New(store storage.Store, rd *refdata.Store, logger *log.Logger) *Server {
	s := &Server{
		store:   store,
		refdata: rd,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/refdata", s.handleCatalogNames)
		r.Get("/refdata/{name}", s.handleCatalog)
		r.Post("/load", s.handleLoad)
		r.Post("/save", s.handleSave)
		r.Post("/export", s.handleExport)
		r.Post("/export-to-disk", s.handleExportToDisk)
		r.Post("/build", s.handleBuild)
		r.Post("/validate/field", s.handleValidateField)
		r.Post("/validate/document", s.handleValidateDocument)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// logRequests logs each request with method, path, status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error's code to an HTTP status and emits the
// structured {error, code} payload.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidField, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidModID, errors.ErrCodeInvalidEntity:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeCatalogNotFound,
		errors.ErrCodeDocumentNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
