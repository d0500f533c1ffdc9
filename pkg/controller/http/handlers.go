package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/repository/firestore"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/async"
	"github.com/secmon-lab/briareus/pkg/utils/errutil"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// actorHeader carries the already-authenticated actor identity supplied
// by the upstream identity subsystem. It is used for output attribution
// only; nothing here authenticates anyone.
const actorHeader = "X-Actor"

func actorFrom(r *http.Request) string {
	if actor := r.Header.Get(actorHeader); actor != "" {
		return actor
	}
	return "anonymous"
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errutil.Handle(r.Context(), err, "failed to encode response")
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, memory.ErrNotFound), errors.Is(err, firestore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, memory.ErrAlreadyExists), errors.Is(err, firestore.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidRisk), errors.Is(err, usecase.ErrInvalidEdge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.uc.Risk.ListRisks(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	payload := make([]riskPayload, len(risks))
	for i, risk := range risks {
		payload[i] = fromRisk(risk)
	}
	respondJSON(w, r, http.StatusOK, payload)
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	var payload riskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	risk := payload.toRisk()
	created, err := s.uc.Risk.CreateRisk(r.Context(), actorFrom(r), &risk)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	s.rescoreAsync(r.Context(), created.ID)
	respondJSON(w, r, http.StatusCreated, fromRisk(created))
}

// rescoreAsync recomputes the derived score of a mutated risk in the
// background and records it, including graph amplification, so score
// drift after a change shows up in the logs without blocking the writer.
func (s *Server) rescoreAsync(ctx context.Context, id types.RiskID) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		score, err := s.uc.Assessment.Score(ctx, id)
		if err != nil {
			return err
		}
		logging.From(ctx).Info("risk rescored",
			"risk_id", score.RiskID,
			"residual_score", score.ResidualScore,
			"severity_tier", score.SeverityTier,
			"needs_mitigation", score.NeedsMitigation,
		)
		return nil
	})
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	id := types.RiskID(chi.URLParam(r, "id"))

	risk, err := s.uc.Risk.GetRisk(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	respondJSON(w, r, http.StatusOK, fromRisk(risk))
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	var payload riskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	risk := payload.toRisk()
	risk.ID = types.RiskID(chi.URLParam(r, "id"))

	updated, err := s.uc.Risk.UpdateRisk(r.Context(), actorFrom(r), &risk)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	s.rescoreAsync(r.Context(), updated.ID)
	respondJSON(w, r, http.StatusOK, fromRisk(updated))
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	id := types.RiskID(chi.URLParam(r, "id"))

	if err := s.uc.Risk.DeleteRisk(r.Context(), id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getScore(w http.ResponseWriter, r *http.Request) {
	id := types.RiskID(chi.URLParam(r, "id"))

	score, err := s.uc.Assessment.Score(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	respondJSON(w, r, http.StatusOK, score)
}

func (s *Server) addEdge(w http.ResponseWriter, r *http.Request) {
	var payload edgePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Risk.AddDependency(r.Context(), payload.toEdge()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) listEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := s.uc.Risk.ListDependencies(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	payload := make([]edgePayload, len(edges))
	for i, edge := range edges {
		payload[i] = fromEdge(edge)
	}
	respondJSON(w, r, http.StatusOK, payload)
}

func (s *Server) runAssessment(w http.ResponseWriter, r *http.Request) {
	report, err := s.uc.Assessment.Assess(r.Context(), actorFrom(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

func (s *Server) findChains(w http.ResponseWriter, r *http.Request) {
	startID := types.RiskID(r.URL.Query().Get("start"))
	if startID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("start query parameter is required"), http.StatusBadRequest)
		return
	}

	maxDepth := 0
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid depth parameter"), http.StatusBadRequest)
			return
		}
		maxDepth = depth
	}

	chains, err := s.uc.Assessment.Chains(r.Context(), startID, maxDepth)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	respondJSON(w, r, http.StatusOK, chains)
}

func (s *Server) getCentrality(w http.ResponseWriter, r *http.Request) {
	scores, err := s.uc.Assessment.Centrality(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	respondJSON(w, r, http.StatusOK, scores)
}
