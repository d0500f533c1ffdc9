package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/secmon-lab/briareus/pkg/controller/http"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
	"github.com/secmon-lab/briareus/pkg/usecase"
)

func newServer() *httpctrl.Server {
	return httpctrl.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, server *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "alice")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func validRiskBody(id string) map[string]any {
	return map[string]any{
		"id":         id,
		"name":       "Grid Outage",
		"category":   "Operational",
		"likelihood": 4,
		"impact": map[string]any{
			"financial":    5,
			"operational":  3,
			"regulatory":   2,
			"reputational": 2,
		},
	}
}

func TestHealth(t *testing.T) {
	server := newServer()
	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("ok")
}

func TestCreateAndGetRisk(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("grid-outage"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.Value(t, created["id"]).Equal("grid-outage")
	gt.Value(t, created["created_by"]).Equal("alice")
	gt.Value(t, created["inherent_score"]).Equal(12.0)
	gt.Value(t, created["residual_score"]).Equal(12.0)
	gt.Value(t, created["severity_tier"]).Equal("Medium")
	gt.Value(t, created["version"]).Equal(1.0)

	rec = doJSON(t, server, http.MethodGet, "/api/risks/grid-outage", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, server, http.MethodGet, "/api/risks/no-such-risk", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestCreateRiskValidation(t *testing.T) {
	server := newServer()

	body := validRiskBody("bad-risk")
	body["likelihood"] = 9
	rec := doJSON(t, server, http.MethodPost, "/api/risks", body)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("dup-risk"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	rec = doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("dup-risk"))
	gt.Value(t, rec.Code).Equal(http.StatusConflict)
}

func TestUpdateRiskVersionConflict(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("contended"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	update := validRiskBody("contended")
	update["name"] = "Renamed"
	update["version"] = 1
	rec = doJSON(t, server, http.MethodPut, "/api/risks/contended", update)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	// Stale version is rejected
	rec = doJSON(t, server, http.MethodPut, "/api/risks/contended", update)
	gt.Value(t, rec.Code).Equal(http.StatusConflict)
}

func TestDeleteRisk(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("doomed-risk"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, server, http.MethodDelete, "/api/risks/doomed-risk", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, server, http.MethodDelete, "/api/risks/doomed-risk", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestEdges(t *testing.T) {
	server := newServer()

	edge := map[string]any{
		"source_id":         "a-risk",
		"target_id":         "b-risk",
		"kind":              "amplifies",
		"impact_multiplier": 1.5,
	}
	rec := doJSON(t, server, http.MethodPost, "/api/edges", edge)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	// Self-loop is rejected
	edge["target_id"] = "a-risk"
	rec = doJSON(t, server, http.MethodPost, "/api/edges", edge)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doJSON(t, server, http.MethodGet, "/api/edges", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var edges []map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edges)).Required()
	gt.Array(t, edges).Length(1)
	gt.Value(t, edges[0]["kind"]).Equal("amplifies")
}

func TestEdgeOmittedMultiplierDefaults(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/edges", map[string]any{
		"source_id": "a-risk",
		"target_id": "b-risk",
		"kind":      "triggers",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, server, http.MethodGet, "/api/edges", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var edges []map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edges)).Required()
	gt.Array(t, edges).Length(1)
	gt.Value(t, edges[0]["impact_multiplier"]).Equal(1.0)
}

func TestAssessmentAndScore(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/risks", validRiskBody("grid-outage"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, server, http.MethodPost, "/api/assessment", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var report map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report)).Required()
	gt.Value(t, report["generated_by"]).Equal("alice")
	gt.Array(t, report["ranking"].([]any)).Length(1)

	rec = doJSON(t, server, http.MethodGet, "/api/risks/grid-outage/score", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var score map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score)).Required()
	gt.Value(t, score["inherent_score"]).Equal(12.0)
	gt.Value(t, score["severity_tier"]).Equal("Medium")
}

func TestChainsEndpoint(t *testing.T) {
	server := newServer()

	for _, edge := range []map[string]any{
		{"source_id": "a-risk", "target_id": "b-risk", "kind": "causes", "impact_multiplier": 1.0},
		{"source_id": "b-risk", "target_id": "c-risk", "kind": "causes", "impact_multiplier": 1.0},
	} {
		rec := doJSON(t, server, http.MethodPost, "/api/edges", edge)
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	}

	rec := doJSON(t, server, http.MethodGet, "/api/graph/chains?start=a-risk", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var chains [][]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chains)).Required()
	gt.Array(t, chains).Length(1)
	gt.Array(t, chains[0]).Equal([]string{"a-risk", "b-risk", "c-risk"})

	// Missing start parameter
	rec = doJSON(t, server, http.MethodGet, "/api/graph/chains", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	// Bad depth parameter
	rec = doJSON(t, server, http.MethodGet, "/api/graph/chains?start=a-risk&depth=banana", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestCentralityEndpoint(t *testing.T) {
	server := newServer()

	rec := doJSON(t, server, http.MethodPost, "/api/edges", map[string]any{
		"source_id": "hub-risk", "target_id": "spoke-risk", "kind": "triggers", "impact_multiplier": 1.0,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, server, http.MethodGet, "/api/graph/centrality", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var scores []map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scores)).Required()
	gt.Array(t, scores).Length(1)
	gt.Value(t, scores[0]["risk_id"]).Equal("hub-risk")
	gt.Value(t, scores[0]["score"]).Equal(1.0)
}
