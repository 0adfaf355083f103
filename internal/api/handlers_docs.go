package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studypdf/studypdf/internal/docstore"
	"github.com/studypdf/studypdf/internal/parser"
)

// emptyExtractionGuidance is returned when a file parses but yields no text,
// which for PDFs usually means scanned page images.
const emptyExtractionGuidance = "no extractable text found; the file may contain scanned images, try a text-based export"

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with 1MB slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	extractor, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdfExt, ok := extractor.(*parser.PDFExtractor); ok {
		pdfExt.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	text, err := extractor.Extract(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("extraction failed", "filename", filename, "error", err)
		jsonError(w, "failed to extract text: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, emptyExtractionGuidance, http.StatusUnprocessableEntity)
		return
	}

	docID := docstore.ContentID(data)
	doc := docstore.NewDocument(docID, filename, r.FormValue("title"), text)
	s.docs.Put(doc)

	s.log.Info("document uploaded",
		"doc_id", doc.ID,
		"filename", doc.Filename,
		"words", doc.Words,
		"tokens", doc.Tokens,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(documentInfo(doc))
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documentInfo(doc))
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.docs.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

func documentInfo(doc *docstore.Document) map[string]any {
	return map[string]any{
		"doc_id":     doc.ID,
		"filename":   doc.Filename,
		"title":      doc.Title,
		"words":      doc.Words,
		"tokens":     doc.Tokens,
		"size_class": docstore.SizeClass(doc.Tokens),
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
