package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// handleMetrics returns the aggregated pipeline metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Status(r.Context(), types.StatusRequest{})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result.Metrics)
}

// handleListLeads lists leads, optionally filtered by status and limited.
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	var leads []types.Lead
	var err error
	if v := r.URL.Query().Get("status"); v != "" {
		status, perr := types.ParseStatus(v)
		if perr != nil {
			s.errorResponse(w, http.StatusBadRequest, perr.Error())
			return
		}
		leads, err = s.store.LeadsByStatus(r.Context(), status, limit)
	} else {
		leads, err = s.store.AllLeads(r.Context(), limit)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count": len(leads),
		"leads": leads,
	})
}

// handleGetLead returns one lead with its enrichment, messages, and
// delivery history.
func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	enrichment, err := s.store.EnrichmentByLeadID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	messages, err := s.store.MessagesByLeadID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	all, err := s.store.DeliveryResults(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	var deliveries []types.DeliveryResult
	for _, res := range all {
		if res.LeadID == id {
			deliveries = append(deliveries, res)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"lead":       lead,
		"enrichment": enrichment,
		"messages":   messages,
		"deliveries": deliveries,
	})
}

// handleReset clears all pipeline data.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context()); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
