package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
)

func (s *Server) HandleRunWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var runReq model.WorkflowRunRequest
	if r.Body != nil {
		// an empty body means a run with no input overrides
		_ = json.NewDecoder(r.Body).Decode(&runReq)
		defer r.Body.Close()
	}
	result, err := s.executionService.Run(id, runReq.Input)
	if err != nil {
		logger.Error("error running workflow", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusNotFound, "error running workflow")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) HandlePauseRun(w http.ResponseWriter, r *http.Request) {
	if !s.executionService.Pause() {
		respondWithError(w, http.StatusConflict, "no run in progress")
		return
	}
	respondOK(w, "paused")
}

func (s *Server) HandleResumeRun(w http.ResponseWriter, r *http.Request) {
	if !s.executionService.Resume() {
		respondWithError(w, http.StatusConflict, "no run in progress")
		return
	}
	respondOK(w, "resumed")
}

func (s *Server) HandleStopRun(w http.ResponseWriter, r *http.Request) {
	if !s.executionService.Stop() {
		respondWithError(w, http.StatusConflict, "no run in progress")
		return
	}
	respondOK(w, "stopped")
}

func (s *Server) HandleRunState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"state": s.executionService.RunState().String()})
}

func (s *Server) HandleListExecutions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	results, err := s.executionService.History(id)
	if err != nil {
		logger.Error("error listing executions", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error listing executions")
		return
	}
	respondWithJSON(w, http.StatusOK, results)
}
