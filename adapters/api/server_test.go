package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coarank/app"
	"coarank/domain/coa"
	"coarank/internal/config"
	"coarank/internal/logging"
	"coarank/internal/pipeline"
)

func testServer() *Server {
	svc := app.NewRankService(app.Collaborators{}, config.RankingConfig{
		TopK: 3, PassTwoWidth: 5, PassTwoWork: 5, UseMETTCGate: true, ChainMaxDepth: 4,
	}, nil)
	return NewServer(svc, config.ServerConfig{Port: "0", GinMode: gin.TestMode}, logging.NewDefaultLogger())
}

func rankBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	req := RankRequest{
		Situation: coa.Situation{ID: "sit-1", ThreatType: "artillery", ThreatLevel: 0.9},
		Candidates: []coa.Candidate{
			{ID: "coa-a", Name: "Hardened Defense", Type: coa.TypeDefense},
			{ID: "coa-b", Name: "Deep Strike", Type: coa.TypeOffensive},
		},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRankEndpoint_ReturnsRankedResult(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/rank", rankBody(t))
	r.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, pipeline.StateDiversified, result.State)
	assert.Len(t, result.Ranked, 2)
	assert.Equal(t, 1, result.Ranked[0].Rank)
	assert.NotEmpty(t, result.RunID)
}

func TestRankEndpoint_PartialOptionsKeepGateOn(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	// A sparse options object must not switch off unmentioned defaults
	body := `{
		"situation": {
			"id": "sit-1", "threat_type": "artillery", "threat_level": 0.9,
			"time_constraints": [
				{"name": "relief window", "max_duration_hours": 12, "importance": "critical"}
			]
		},
		"candidates": [
			{"id": "coa-a", "name": "Hardened Defense", "type": "defense", "estimated_duration_hours": 8},
			{"id": "coa-b", "name": "Deep Strike", "type": "offensive", "estimated_duration_hours": 48}
		],
		"options": {"top_k": 3}
	}`
	r := httptest.NewRequest(http.MethodPost, "/api/rank", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Excluded, 1, "the over-budget candidate must stay excluded")
	assert.Equal(t, "coa-b", string(result.Excluded[0].Candidate.ID))
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "coa-a", string(result.Ranked[0].Candidate.ID))
	assert.NotNil(t, result.Ranked[0].METTC)
}

func TestRankEndpoint_RejectsMalformedBody(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/rank", bytes.NewBufferString(`{"situation":`))
	r.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankEndpoint_InvalidSituationIsUnprocessable(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	body, err := json.Marshal(RankRequest{
		Situation:  coa.Situation{ID: "sit-1"}, // no threat type
		Candidates: []coa.Candidate{{ID: "coa-a", Type: coa.TypeDefense}},
	})
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/rank", bytes.NewBuffer(body))
	r.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRankReportEndpoint_RendersHTML(t *testing.T) {
	s := testServer()
	w := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/rank/report", rankBody(t))
	r.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Course-of-Action Ranking")
	assert.Contains(t, w.Body.String(), "Hardened Defense")
}
