package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// ToolResponse is the envelope every tool endpoint returns.
type ToolResponse struct {
	Success bool                   `json:"success"`
	Tool    string                 `json:"tool"`
	Message string                 `json:"message"`
	Data    any                    `json:"data,omitempty"`
	Metrics *types.PipelineMetrics `json:"metrics,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ToolInfo describes one tool for discovery.
type ToolInfo struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// handleListTools returns the tool catalog.
func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	tools := []ToolInfo{
		{Name: "generate_leads", Method: "POST", Path: "/tools/generate", Description: "Generate synthetic leads in status NEW"},
		{Name: "enrich_leads", Method: "POST", Path: "/tools/enrich", Description: "Enrich NEW leads with business context"},
		{Name: "generate_messages", Method: "POST", Path: "/tools/message", Description: "Draft personalized outreach messages for ENRICHED leads"},
		{Name: "send_outreach", Method: "POST", Path: "/tools/send", Description: "Deliver drafted messages for MESSAGED leads"},
		{Name: "get_status", Method: "POST", Path: "/tools/status", Description: "Report pipeline metrics and lead distribution"},
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"tools": tools})
}

// handleGenerate runs the generate tool.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if !s.decodeBody(w, r, "generate_leads", &req) {
		return
	}

	result, err := s.service.GenerateLeads(r.Context(), req)
	if err != nil {
		s.toolError(w, "generate_leads", err)
		return
	}
	s.toolSuccess(w, r, "generate_leads",
		fmt.Sprintf("generated %d leads", result.InsertedCount), result)
}

// handleEnrich runs the enrich tool.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req types.EnrichRequest
	if !s.decodeBody(w, r, "enrich_leads", &req) {
		return
	}

	result, err := s.service.EnrichLeads(r.Context(), req)
	if err != nil {
		s.toolError(w, "enrich_leads", err)
		return
	}
	s.toolSuccess(w, r, "enrich_leads",
		fmt.Sprintf("enriched %d leads, skipped %d", result.EnrichedCount, result.SkippedCount), result)
}

// handleMessage runs the message tool.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req types.MessageRequest
	if !s.decodeBody(w, r, "generate_messages", &req) {
		return
	}

	result, err := s.service.GenerateMessages(r.Context(), req)
	if err != nil {
		s.toolError(w, "generate_messages", err)
		return
	}
	s.toolSuccess(w, r, "generate_messages",
		fmt.Sprintf("drafted %d messages for %d leads", result.MessageCount, result.MessagedLeadCount), result)
}

// handleSend runs the send tool.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req types.SendRequest
	if !s.decodeBody(w, r, "send_outreach", &req) {
		return
	}

	summary, err := s.service.SendOutreach(r.Context(), req)
	if err != nil {
		s.toolError(w, "send_outreach", err)
		return
	}
	s.toolSuccess(w, r, "send_outreach",
		fmt.Sprintf("sent %d, failed %d", summary.SentCount, summary.FailedCount), summary)
}

// handleStatus runs the status tool.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req types.StatusRequest
	if !s.decodeBody(w, r, "get_status", &req) {
		return
	}

	result, err := s.service.Status(r.Context(), req)
	if err != nil {
		s.toolError(w, "get_status", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ToolResponse{
		Success: true,
		Tool:    "get_status",
		Message: fmt.Sprintf("%d leads tracked", result.Metrics.TotalLeads),
		Data:    result,
		Metrics: result.Metrics,
	})
}

// decodeBody parses the request body into req. An empty body is treated as
// an empty request so every tool can be invoked with defaults.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, tool string, req any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ToolResponse{
			Success: false, Tool: tool, Message: "failed to read request body", Error: err.Error(),
		})
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ToolResponse{
			Success: false, Tool: tool, Message: "invalid request JSON", Error: err.Error(),
		})
		return false
	}
	return true
}

// toolSuccess writes a successful tool envelope with fresh metrics attached.
func (s *Server) toolSuccess(w http.ResponseWriter, r *http.Request, tool, message string, data any) {
	resp := ToolResponse{Success: true, Tool: tool, Message: message, Data: data}
	if status, err := s.service.Status(r.Context(), types.StatusRequest{}); err == nil {
		resp.Metrics = status.Metrics
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// toolError writes a failed tool envelope.
func (s *Server) toolError(w http.ResponseWriter, tool string, err error) {
	s.jsonResponse(w, HTTPStatus(err), ToolResponse{
		Success: false,
		Tool:    tool,
		Message: "tool execution failed",
		Error:   err.Error(),
	})
}
