package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/match-intel/internal/extract"
	"github.com/jonathan/match-intel/internal/intel"
	"github.com/jonathan/match-intel/internal/types"
)

// ExtractRequest carries raw markup for the extraction endpoints.
type ExtractRequest struct {
	HTML string `json:"html"`
	// Link fetches and parses the job detail page instead of HTML.
	// Only honored by /v1/extract/intel when enrichment is configured.
	Link string `json:"link,omitempty"`
}

// FeedRequest carries a feed page plus already-processed job links.
type FeedRequest struct {
	HTML      string   `json:"html"`
	Processed []string `json:"processed,omitempty"`
}

// ScoreRequest carries a job record to score.
type ScoreRequest struct {
	Job    *types.JobRecord `json:"job"`
	Enrich bool             `json:"enrich,omitempty"`
}

// SaveJobRequest carries a scored job to persist.
type SaveJobRequest struct {
	Job       *types.JobRecord `json:"job"`
	Score     int              `json:"score"`
	AutoSaved bool             `json:"auto_saved,omitempty"`
}

// handleExtractListing parses a single job tile into a job record.
func (s *Server) handleExtractListing(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.HTML == "" {
		s.errorResponse(w, http.StatusBadRequest, "html is required")
		return
	}

	job, err := extract.Listing(req.HTML)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job": job})
}

// handleExtractFeed parses a feed page into job records, skipping links
// the caller has already processed.
func (s *Server) handleExtractFeed(w http.ResponseWriter, r *http.Request) {
	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.HTML == "" {
		s.errorResponse(w, http.StatusBadRequest, "html is required")
		return
	}

	processed := make(map[string]bool, len(req.Processed))
	for _, link := range req.Processed {
		processed[link] = true
	}

	jobs, err := extract.ScanFeed(req.HTML, processed)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleExtractIntel parses a job detail page into deep intel. When a
// link is given instead of markup, the page is fetched through the
// enrichment pipeline and the result is cached.
func (s *Server) handleExtractIntel(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch {
	case req.HTML != "":
		s.jsonResponse(w, http.StatusOK, map[string]any{"intel": intel.Parse(req.HTML)})
	case req.Link != "":
		if s.enricher == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "enrichment is not configured")
			return
		}
		deep, err := s.enricher.Intel(r.Context(), req.Link)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"intel": deep})
	default:
		s.errorResponse(w, http.StatusBadRequest, "html or link is required")
	}
}

// handleScore scores a job record against the configured preferences.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Job == nil {
		s.errorResponse(w, http.StatusBadRequest, "job is required")
		return
	}

	if req.Enrich {
		if s.enricher == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "enrichment is not configured")
			return
		}
		deep, err := s.enricher.Intel(r.Context(), req.Job.Link)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		deep.ApplyTo(req.Job)
	}

	result := s.scorer.Score(req.Job)
	s.jsonResponse(w, http.StatusOK, map[string]any{"job": req.Job, "result": result})
}

// handleListSavedJobs returns persisted jobs, newest first.
func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	jobs, err := s.store.ListSavedJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleSaveJob persists a scored job. Saving the same link twice is
// not an error; the response reports whether a new row was inserted.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}

	var req SaveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Job == nil || req.Job.Link == "" {
		s.errorResponse(w, http.StatusBadRequest, "job with a link is required")
		return
	}

	inserted, err := s.store.SaveJob(r.Context(), req.Job, req.Score, req.AutoSaved)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusCreated
	if !inserted {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, map[string]any{"inserted": inserted})
}
