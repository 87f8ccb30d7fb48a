package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
)

// HandleSessionCompleted ingests a finished session timeline and queues it
// for learning. The learning outcome is asynchronous; "no pattern yet" is
// not an error.
func (s *Server) HandleSessionCompleted(w http.ResponseWriter, r *http.Request) {
	var timeline model.Timeline
	if err := json.NewDecoder(r.Body).Decode(&timeline); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid timeline payload")
		return
	}
	defer r.Body.Close()
	if err := s.learningService.SessionCompleted(timeline); err != nil {
		logger.Error("error registering session", zap.String("session", timeline.SessionId), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error registering session")
		return
	}
	respondOK(w, "session queued for learning")
}

func (s *Server) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.container.GetSessionDao().List()
	if err != nil {
		logger.Error("error listing sessions", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error listing sessions")
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// HandleMine triggers the batch path over all stored sessions.
func (s *Server) HandleMine(w http.ResponseWriter, r *http.Request) {
	workflows, err := s.learningService.Mine(r.Context())
	if err != nil {
		logger.Error("error mining sessions", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "error mining sessions")
		return
	}
	respondWithJSON(w, http.StatusOK, workflows)
}
