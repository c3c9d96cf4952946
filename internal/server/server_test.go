package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-pipeline/internal/store"
	"github.com/jonathan/outreach-pipeline/internal/types"
)

func newTestServer() *httptest.Server {
	s := New(Config{Port: 0}, store.NewMemory())
	return httptest.NewServer(s.httpServer.Handler)
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, ToolResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(ts.URL+path, "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	var tr ToolResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	return resp, tr
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListTools(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Tools []ToolInfo `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Tools, 5)

	names := make([]string, 0, len(body.Tools))
	for _, tool := range body.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"generate_leads", "enrich_leads", "generate_messages", "send_outreach", "get_status"}, names)
}

func TestGenerateTool(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, tr.Success)
	assert.Equal(t, "generate_leads", tr.Tool)
	require.NotNil(t, tr.Metrics)
	assert.Equal(t, 5, tr.Metrics.TotalLeads)
	assert.Equal(t, 5, tr.Metrics.NewLeads)
}

func TestGenerateToolEmptyBodyUsesDefaults(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	// No body means Count 0, which the request validator rejects.
	resp, tr := postJSON(t, ts, "/tools/generate", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, tr.Success)
	assert.NotEmpty(t, tr.Error)
}

func TestGenerateToolBadJSON(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/tools/generate", "application/json",
		bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFullPipelineOverHTTP(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	seed := int64(17)
	resp, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 3, Seed: &seed})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, tr.Success)

	resp, tr = postJSON(t, ts, "/tools/enrich", types.EnrichRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, tr.Success)
	assert.Equal(t, 3, tr.Metrics.EnrichedLeads)

	resp, tr = postJSON(t, ts, "/tools/message", types.MessageRequest{ABVariants: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, tr.Success)
	assert.Equal(t, 12, tr.Metrics.TotalMessages)

	resp, tr = postJSON(t, ts, "/tools/send", types.SendRequest{Mode: types.SendDryRun, RateLimit: 60})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, tr.Success)
	assert.Equal(t, 3, tr.Metrics.SentLeads)
	assert.Equal(t, 1.0, tr.Metrics.SuccessRate)

	resp, tr = postJSON(t, ts, "/tools/status", types.StatusRequest{IncludeLeads: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, tr.Success)
	assert.Equal(t, "get_status", tr.Tool)
	require.NotNil(t, tr.Metrics)
	assert.Equal(t, 3, tr.Metrics.TotalLeads)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	_, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 2})
	require.True(t, tr.Success)

	resp, err := http.Get(ts.URL + "/api/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var m types.PipelineMetrics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, 2, m.TotalLeads)
}

func TestListLeadsEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	_, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 4})
	require.True(t, tr.Success)

	resp, err := http.Get(ts.URL + "/api/leads?status=new&limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Count int          `json:"count"`
		Leads []types.Lead `json:"leads"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)

	resp, err = http.Get(ts.URL + "/api/leads?status=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLeadEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	_, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 1})
	require.True(t, tr.Success)
	_, tr = postJSON(t, ts, "/tools/enrich", types.EnrichRequest{})
	require.True(t, tr.Success)

	resp, err := http.Get(ts.URL + "/api/leads")
	require.NoError(t, err)
	var listing struct {
		Leads []types.Lead `json:"leads"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	require.Len(t, listing.Leads, 1)

	resp, err = http.Get(ts.URL + "/api/leads/" + listing.Leads[0].ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		Lead       *types.Lead       `json:"lead"`
		Enrichment *types.Enrichment `json:"enrichment"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	require.NotNil(t, detail.Lead)
	assert.Equal(t, types.StatusEnriched, detail.Lead.Status)
	require.NotNil(t, detail.Enrichment)
	assert.NotEmpty(t, detail.Enrichment.Persona)
}

func TestGetLeadNotFound(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leads/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResetEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	_, tr := postJSON(t, ts, "/tools/generate", types.GenerateRequest{Count: 3})
	require.True(t, tr.Success)

	resp, err := http.Post(ts.URL+"/api/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var m types.PipelineMetrics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Zero(t, m.TotalLeads)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/tools/generate", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
