package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studypdf/studypdf/internal/groq"
	"github.com/studypdf/studypdf/internal/pipeline"
	"github.com/studypdf/studypdf/internal/processor"
	"github.com/studypdf/studypdf/internal/prompt"
)

// rateLimitGuidance is returned when the completion backend rejects a request
// for rate or size reasons. There is no retry; the caller shrinks the request.
const rateLimitGuidance = "the model is rate limited or the request is too large; try a more specific question or upload a smaller section"

type askRequest struct {
	Query       string `json:"query"`
	QuickAction string `json:"quick_action"`
	Mode        string `json:"mode"`
}

// resolve turns the request into a concrete query and mode, or an error
// message suitable for a 400 response.
func (a askRequest) resolve() (string, prompt.Mode, string) {
	query := a.Query
	if a.QuickAction != "" {
		preset, ok := prompt.ResolveQuickAction(a.QuickAction)
		if !ok {
			return "", "", fmt.Sprintf("unknown quick action: %s", a.QuickAction)
		}
		query = preset
	}
	if query == "" {
		return "", "", "query or quick_action is required"
	}

	mode := prompt.Mode(a.Mode)
	if a.Mode == "" {
		mode = prompt.ModeHomework
	} else if !prompt.Valid(mode) {
		return "", "", fmt.Sprintf("unknown mode: %s", a.Mode)
	}
	return query, mode, ""
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc := s.docs.Get(docID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	query, mode, msg := req.resolve()
	if msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	res, err := s.processor.Process(r.Context(), doc.Text, query, mode)
	if err != nil {
		if groq.IsRateOrSizeLimit(err) {
			s.log.Warn("completion rate or size limited", "doc_id", docID, "error", err)
			jsonError(w, rateLimitGuidance, http.StatusServiceUnavailable)
			return
		}
		s.log.Error("completion failed", "doc_id", docID, "error", err)
		jsonError(w, "completion failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(askResponse(docID, query, res))
}

func askResponse(docID, query string, res processor.Result) map[string]any {
	body := map[string]any{
		"doc_id":   docID,
		"query":    query,
		"answer":   res.Answer,
		"reduced":  res.Reduced,
		"strategy": res.Strategy,
	}
	if res.Reduced {
		body["total_chunks"] = res.TotalChunks
		body["summarized_chunks"] = res.SummarizedChunks
	}
	if res.Truncated() {
		body["note"] = fmt.Sprintf("answer covers the first %d of %d sections", res.SummarizedChunks, res.TotalChunks)
	}
	return body
}

func (s *Server) handleSubmitQuestion(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if s.docs.Get(docID) == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	query, mode, msg := req.resolve()
	if msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}

	job, err := s.orchestrator.Submit(docID, query, mode)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   docID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/questions/%s", job.ID),
	})
}

func (s *Server) handleQuestionStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.jobs.Get(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleTranscript renders a completed question as plain text for copying
// into notes.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.jobs.Get(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("job is %s, transcript requires a completed job", snap.Status), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Question: %s\n\nAnswer:\n%s\n", snap.Query, snap.Answer)
}
