package api

import (
	"net/http"

	"comfyhost/settings"
	"comfyhost/status"
	"comfyhost/workflow"
)

// maxPayloadBytes bounds the body of an apply request.
const maxPayloadBytes = 16 << 20

type Server struct {
	config *settings.Config
	store  *workflow.Store
	status *status.Client
}

func NewServer(config *settings.Config, store *workflow.Store, statusClient *status.Client) *Server {
	return &Server{
		config: config,
		store:  store,
		status: statusClient,
	}
}

// Handler returns the routed handler wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/workflows", s.handleWorkflows)
	mux.HandleFunc("GET /api/workflow/{name...}", s.handleParseWorkflow)
	mux.HandleFunc("POST /api/workflow/{name...}", s.handleApplyWorkflow)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/media", s.handleListMedia)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /media/{path...}", s.handleServeMedia)
	mux.Handle("GET /", http.FileServer(http.Dir(s.config.Server.FrontendDir)))

	return AccessLog(mux)
}
