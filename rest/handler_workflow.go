package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
)

func (s *Server) HandleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var wf model.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid workflow payload")
		return
	}
	defer r.Body.Close()
	if err := s.container.GetWorkflowDao().Save(&wf); err != nil {
		logger.Error("error creating workflow", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error creating workflow")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": wf.Id})
}

func (s *Server) HandleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := s.container.GetWorkflowDao().List()
	if err != nil {
		logger.Error("error listing workflows", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error listing workflows")
		return
	}
	respondWithJSON(w, http.StatusOK, workflows)
}

func (s *Server) HandleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	wf, err := s.container.GetWorkflowDao().Get(id)
	if err != nil {
		logger.Info("workflow does not exist", zap.String("id", id))
		respondWithError(w, http.StatusNotFound, "workflow does not exist")
		return
	}
	respondWithJSON(w, http.StatusOK, wf)
}

// HandleUpdateWorkflow replaces the stored workflow, steps included.
func (s *Server) HandleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var wf model.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid workflow payload")
		return
	}
	defer r.Body.Close()
	wf.Id = id
	if err := s.container.GetWorkflowDao().Update(wf); err != nil {
		logger.Error("error updating workflow", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusNotFound, "error updating workflow")
		return
	}
	respondOK(w, "updated")
}

func (s *Server) HandleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.container.GetWorkflowDao().Delete(id); err != nil {
		logger.Error("error deleting workflow", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusNotFound, "error deleting workflow")
		return
	}
	respondOK(w, "deleted")
}
