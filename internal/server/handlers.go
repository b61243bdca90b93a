package server

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/export"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/validate"
)

// modIDFromPath extracts the mod id from a client-supplied document
// path. Clients address documents as "mods/<id>.json" or bare "<id>".
func modIDFromPath(p string) string {
	base := path.Base(strings.TrimSpace(p))
	return strings.TrimSuffix(base, ".json")
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id := modIDFromPath(req.Path)
	doc, err := s.store.Load(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": doc.Tree(),
		"path": "mods/" + id + ".json",
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string         `json:"path"`
		Data map[string]any `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	doc := document.FromTree(req.Data)
	if ok, issues := validate.ValidateDocument(doc.Tree()); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": strings.Join(validate.Messages(issues), "; "),
			"code":  string(errors.ErrCodeInvalidDocument),
		})
		return
	}

	id := modIDFromPath(req.Path)
	if id == "" || id == "." {
		id = doc.GetString(document.At(document.SectionMetadata).Key("id"))
	}
	if err := s.store.Save(r.Context(), id, doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": "mods/" + id + ".json"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	data, err := export.Export(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleExportToDisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data      map[string]any `json:"data"`
		OutputDir string         `json:"output_dir"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	doc := document.FromTree(req.Data)
	if !s.gate(w, doc) {
		return
	}
	if err := export.ExportToDir(doc, req.OutputDir); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"output_dir": req.OutputDir})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	data, err := export.Build(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FieldName string         `json:"field_name"`
		Value     string         `json:"value"`
		DataType  string         `json:"data_type"` // accepted for contract compatibility, values always arrive as strings
		Data      map[string]any `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	v := validate.NewFieldValidator(s.refdata)
	result, err := v.ValidateField(r.Context(), req.FieldName, req.Value, req.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ok, issues := validate.ValidateDocument(req.Data)
	if issues == nil {
		issues = []validate.Issue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"isValid": ok,
		"errors":  issues,
	})
}

func (s *Server) handleCatalogNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.refdata.Names(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"names": names})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	catalog, err := s.refdata.Get(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": catalog})
}

// decodeDocument reads a {data} payload and runs the document gate.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*document.Store, bool) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return nil, false
	}

	doc := document.FromTree(req.Data)
	if !s.gate(w, doc) {
		return nil, false
	}
	return doc, true
}

func (s *Server) gate(w http.ResponseWriter, doc *document.Store) bool {
	ok, issues := validate.ValidateDocument(doc.Tree())
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": strings.Join(validate.Messages(issues), "; "),
			"code":  string(errors.ErrCodeInvalidDocument),
		})
	}
	return ok
}
