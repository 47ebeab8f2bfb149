package whiteagent

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/transport"
)

// ServerOptions configures the white agent HTTP server.
type ServerOptions struct {
	Logger logging.Logger
}

// Server exposes any agent implementation over the send-message HTTP
// contract so the evaluator can drive it remotely.
type Server struct {
	agent  transport.Transport
	mux    *http.ServeMux
	logger logging.Logger
}

// resettable is implemented by agents that keep per-session state.
type resettable interface {
	Reset()
}

// NewServer wraps an agent implementation with HTTP routes.
func NewServer(agent transport.Transport, optFns ...func(o *ServerOptions)) *Server {
	opts := ServerOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		agent:  agent,
		mux:    http.NewServeMux(),
		logger: opts.Logger,
	}

	s.mux.HandleFunc("/agent-card", s.handleAgentCard)
	s.mux.HandleFunc("/.well-known/agent-card.json", s.handleAgentCard)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/reset", s.handleReset)
	s.mux.HandleFunc("/send-message", s.handleSendMessage)

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start blocks serving HTTP on the given address.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting white agent server", "addr", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv.ListenAndServe()
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":        "White Agent",
		"description": "Tool-calling agent under evaluation",
		"version":     "1.0.0",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "running", "ready": true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if agent, ok := s.agent.(resettable); ok {
		agent.Reset()
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "ready": true})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	reply, err := s.agent.Send(r.Context(), req.Message)
	if err != nil {
		s.logger.Error("Agent failed to produce a reply", "error", err.Error())
		s.writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": reply})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
