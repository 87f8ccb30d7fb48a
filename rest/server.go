package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mimiclabs/mimic/container"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/service"
	"go.uber.org/zap"
)

type Server struct {
	http.Server
	Port             int
	container        *container.DIContainer
	executionService *service.ExecutionService
	learningService  *service.LearningService
}

func NewServer(httpPort int, container *container.DIContainer,
	executionService *service.ExecutionService, learningService *service.LearningService) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr: fmt.Sprintf(":%d", httpPort),
		},
		Port:             httpPort,
		container:        container,
		executionService: executionService,
		learningService:  learningService,
	}

	router := mux.NewRouter()
	router.HandleFunc("/workflows", s.HandleListWorkflows).Methods(http.MethodGet)
	router.HandleFunc("/workflow", s.HandleCreateWorkflow).Methods(http.MethodPost)
	router.HandleFunc("/workflow/{id}", s.HandleGetWorkflow).Methods(http.MethodGet)
	router.HandleFunc("/workflow/{id}", s.HandleUpdateWorkflow).Methods(http.MethodPut)
	router.HandleFunc("/workflow/{id}", s.HandleDeleteWorkflow).Methods(http.MethodDelete)
	router.HandleFunc("/workflow/{id}/run", s.HandleRunWorkflow).Methods(http.MethodPost)
	router.HandleFunc("/workflow/{id}/executions", s.HandleListExecutions).Methods(http.MethodGet)
	router.HandleFunc("/execution/pause", s.HandlePauseRun).Methods(http.MethodPost)
	router.HandleFunc("/execution/resume", s.HandleResumeRun).Methods(http.MethodPost)
	router.HandleFunc("/execution/stop", s.HandleStopRun).Methods(http.MethodPost)
	router.HandleFunc("/execution/state", s.HandleRunState).Methods(http.MethodGet)
	router.HandleFunc("/sessions", s.HandleListSessions).Methods(http.MethodGet)
	router.HandleFunc("/session", s.HandleSessionCompleted).Methods(http.MethodPost)
	router.HandleFunc("/learn", s.HandleMine).Methods(http.MethodPost)
	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
