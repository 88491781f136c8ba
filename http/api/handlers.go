package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"comfyhost/scanner"
	"comfyhost/workflow"
)

const applySuffix = "/apply"

func (s *Server) handleWorkflows(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	entries, err := s.store.List()
	if err != nil {
		log.Error("Failed to list workflows", "error", err)
		writeError(w, log, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, log, http.StatusOK, entries)
}

func (s *Server) handleParseWorkflow(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	name := r.PathValue("name")

	data, err := s.store.Read(name)
	if err != nil {
		s.writeLoadError(w, r, name, err)
		return
	}

	etag := `"` + workflow.Fingerprint(data) + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	doc, err := workflow.Decode(data)
	if err != nil {
		s.writeLoadError(w, r, name, err)
		return
	}

	result := workflow.Parse(doc)
	if result.Error != "" {
		log.Warn("Workflow parsed with errors", "workflow", name, "error", result.Error)
	}

	writeJSON(w, log, http.StatusOK, result)
}

type applyResponse struct {
	Workflow workflow.Document `json:"workflow"`
}

func (s *Server) handleApplyWorkflow(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	name, ok := strings.CutSuffix(r.PathValue("name"), applySuffix)
	if !ok {
		writeError(w, log, http.StatusNotFound, "Not found")
		return
	}

	doc, err := s.store.Load(name)
	if err != nil {
		s.writeLoadError(w, r, name, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeError(w, log, http.StatusBadRequest, "Failed to read payload: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, log, http.StatusBadRequest, "No JSON payload provided")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		writeError(w, log, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := dec.Decode(new(interface{})); err != io.EOF {
		writeError(w, log, http.StatusBadRequest, "Invalid JSON payload: trailing data after object")
		return
	}
	if len(payload) == 0 {
		writeError(w, log, http.StatusBadRequest, "No JSON payload provided")
		return
	}

	patched, err := workflow.Patch(doc, payload["inputs"])
	if err != nil {
		log.Warn("Rejected workflow edits", "workflow", name, "error", err)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	log.Debug("Applied workflow edits", "workflow", name)
	writeJSON(w, log, http.StatusOK, applyResponse{Workflow: patched})
}

func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, name string, err error) {
	log := requestLogger(r)

	switch {
	case errors.Is(err, workflow.ErrNotFound):
		writeError(w, log, http.StatusNotFound, "Workflow not found")
	default:
		log.Error("Failed to load workflow", "workflow", name, "error", err)
		writeError(w, log, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	tree := scanner.ModelTree(s.config.Paths.Models)
	if flat := r.URL.Query().Get("flat"); flat == "1" || flat == "true" {
		writeJSON(w, log, http.StatusOK, scanner.Flatten(tree))
		return
	}

	writeJSON(w, log, http.StatusOK, tree)
}

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	if s.config.Paths.Media == "" {
		writeError(w, log, http.StatusBadRequest, "media directory not configured")
		return
	}

	kind, err := scanner.ParseMediaKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	files, err := scanner.ListMedia(s.config.Paths.Media, kind)
	switch {
	case errors.Is(err, scanner.ErrMediaRootMissing):
		writeError(w, log, http.StatusNotFound, err.Error())
	case err != nil:
		log.Error("Failed to list media", "error", err)
		writeError(w, log, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, log, http.StatusOK, files)
	}
}

func (s *Server) handleServeMedia(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	if s.config.Paths.Media == "" {
		writeError(w, log, http.StatusBadRequest, "media directory not configured")
		return
	}

	full, err := scanner.ResolveWithin(s.config.Paths.Media, r.PathValue("path"))
	if err != nil {
		writeError(w, log, http.StatusBadRequest, "Invalid path")
		return
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		writeError(w, log, http.StatusNotFound, "File not found")
		return
	}

	http.ServeFile(w, r, full)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, requestLogger(r), http.StatusOK, s.status.GetStatus())
}
