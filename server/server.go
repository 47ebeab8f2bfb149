// Package server exposes the evaluator over HTTP. The surface mirrors the
// AgentBeats assessment contract: an agent card, status and reset endpoints,
// and a send-message endpoint that accepts evaluation requests in several
// message formats.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	greenagent "github.com/nicksaban20/Green-Agent"
	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/metrics"
	"github.com/nicksaban20/Green-Agent/scenario"
	"github.com/nicksaban20/Green-Agent/transport"
)

// Options configures the Server.
type Options struct {
	// MaxTurns bounds every evaluation session.
	MaxTurns int

	// AgentTimeout bounds each round trip to the agent under test.
	AgentTimeout time.Duration

	// Logger receives request and evaluation diagnostics.
	Logger logging.Logger

	// Metrics records evaluation outcomes; nil disables instrumentation.
	Metrics *metrics.Recorder

	// Registry, when set, mounts a Prometheus scrape endpoint at /metrics.
	Registry *prometheus.Registry

	// NewTransport builds the transport to the agent under test. Overridden
	// in tests to avoid real network calls.
	NewTransport func(baseURL, contextID string) transport.Transport
}

// Server handles the evaluator's HTTP surface.
type Server struct {
	mux  *http.ServeMux
	opts Options
}

// New constructs a Server with its routes registered.
func New(optFns ...func(o *Options)) *Server {
	opts := Options{
		MaxTurns:     20,
		AgentTimeout: 30 * time.Second,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.NewTransport == nil {
		timeout := opts.AgentTimeout
		opts.NewTransport = func(baseURL, contextID string) transport.Transport {
			return transport.NewHTTP(baseURL, func(o *transport.Options) {
				o.Timeout = timeout
				o.ContextID = contextID
			})
		}
	}

	s := &Server{
		mux:  http.NewServeMux(),
		opts: opts,
	}

	s.mux.HandleFunc("/agent-card", s.handleAgentCard)
	s.mux.HandleFunc("/.well-known/agent-card.json", s.handleAgentCard)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/reset", s.handleReset)
	s.mux.HandleFunc("/send-message", s.handleSendMessage)
	s.mux.HandleFunc("/", s.handleRoot)

	if opts.Registry != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start blocks serving HTTP on the given address.
func (s *Server) Start(addr string) error {
	s.opts.Logger.Info("Starting evaluator server", "addr", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv.ListenAndServe()
}

func (s *Server) evaluator(whiteAgentURL, contextID string) *greenagent.Evaluator {
	t := s.opts.NewTransport(whiteAgentURL, contextID)

	return greenagent.New(t, func(o *greenagent.Options) {
		o.MaxTurns = s.opts.MaxTurns
		o.Logger = s.opts.Logger
		o.Metrics = s.opts.Metrics
	})
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, agentCard())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "running", "ready": true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Sessions are per-request, so a reset only has to acknowledge.
	s.opts.Logger.Info("Agent reset requested")
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "ready": true})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleSendMessage(w, r)
		return
	}

	s.handleStatus(w, r)
}

type sendMessageRequest struct {
	Message   string          `json:"message"`
	ContextID string          `json:"context_id"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params"`
}

type envConfig struct {
	Env     string `json:"env"`
	TaskIDs []int  `json:"task_ids"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unreadable request body"})
		return
	}

	var req sendMessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	// JSON-RPC style wrapper puts the payload under params.
	if req.Method != "" && len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON-RPC params"})
			return
		}
	}

	s.opts.Logger.Info("Received evaluation request", "length", len(req.Message))

	tags := parseTags(req.Message)

	switch {
	case tags["white_agent_url"] != "" && tags["env_config"] != "":
		s.runTagged(w, r, tags, req.ContextID)

	case strings.Contains(req.Message, "Run all scenarios") || strings.Contains(req.Message, "--all"):
		url := extractWhiteAgentURL(req.Message)
		if url == "" {
			url = tags["white_agent_url"]
		}
		if url == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "White agent URL not found"})
			return
		}

		batch, err := s.evaluator(url, req.ContextID).RunAll(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, batch)

	case strings.Contains(req.Message, "Run tau-bench evaluation"):
		s.runSingle(w, r, req)

	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"error": "Unknown message format. Expected 'Run tau-bench evaluation' or 'Run all scenarios'",
		})
	}
}

// runTagged handles the AgentBeats XML tag format: the agent URL and an env
// config with task indexes arrive inside <white_agent_url> and <env_config>
// tags, and the response summarizes the last task's metrics.
func (s *Server) runTagged(w http.ResponseWriter, r *http.Request, tags map[string]string, contextID string) {
	var cfg envConfig
	if err := json.Unmarshal([]byte(tags["env_config"]), &cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid env_config"})
		return
	}

	d, err := domain.Parse(cfg.Env)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": fmt.Sprintf("Unknown domain: %s", cfg.Env)})
		return
	}

	taskIDs := cfg.TaskIDs
	if len(taskIDs) == 0 {
		taskIDs = []int{0}
	}

	eval := s.evaluator(tags["white_agent_url"], contextID)

	var results []*core.Report

	for _, idx := range taskIDs {
		scn, err := scenario.ByIndex(d, idx)
		if err != nil {
			s.opts.Logger.Warn("Task index out of range", "domain", cfg.Env, "index", idx)
			continue
		}

		report, err := eval.RunScenario(r.Context(), scn)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
			return
		}
		results = append(results, report)
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "No valid tasks executed"})
		return
	}

	last := results[len(results)-1]
	emoji := "❌"
	if last.Success {
		emoji = "✅"
	}

	metricsJSON, _ := json.Marshal(last)
	text := fmt.Sprintf("Finished. White agent success: %s\nMetrics: %s\n", emoji, metricsJSON)
	writeJSON(w, http.StatusOK, map[string]any{"message": text})
}

// runSingle handles the plain-text format "Run tau-bench evaluation,
// domain: airline, scenario: airline_success_1" with the agent URL on its
// own "White agent URL:" line.
func (s *Server) runSingle(w http.ResponseWriter, r *http.Request, req sendMessageRequest) {
	domainName := "airline"
	scenarioID := "airline_success_1"
	url := "http://localhost:8002"

	for _, part := range strings.Split(req.Message, ",") {
		if _, value, found := strings.Cut(part, "domain:"); found {
			domainName = strings.TrimSpace(value)
		}
		if _, value, found := strings.Cut(part, "scenario:"); found {
			scenarioID = strings.TrimSpace(value)
		}
	}

	if extracted := extractWhiteAgentURL(req.Message); extracted != "" {
		url = extracted
	}

	d, err := domain.Parse(domainName)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}

	report, err := s.evaluator(url, req.ContextID).RunByID(r.Context(), d, scenarioID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

var openTagRe = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_-]*)>`)

// parseTags extracts <tag>content</tag> pairs from a message. Content is
// trimmed; tags without a matching close tag are ignored.
func parseTags(s string) map[string]string {
	tags := map[string]string{}

	for _, m := range openTagRe.FindAllStringSubmatchIndex(s, -1) {
		name := s[m[2]:m[3]]
		rest := s[m[1]:]

		if idx := strings.Index(rest, "</"+name+">"); idx >= 0 {
			tags[name] = strings.TrimSpace(rest[:idx])
		}
	}

	return tags
}

func extractWhiteAgentURL(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if _, value, found := strings.Cut(line, "White agent URL:"); found {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func agentCard() map[string]any {
	return map[string]any{
		"name":        "τ-bench Green Agent",
		"description": "Evaluates agents using τ-bench benchmark for tool-use capabilities in airline and retail domains",
		"version":     "1.0.0",
		"url":         "http://localhost:8686",
		"capabilities": map[string]any{
			"streaming":         false,
			"pushNotifications": false,
		},
		"defaultInputModes":  []string{"text"},
		"defaultOutputModes": []string{"text"},
		"skills": []map[string]any{
			{
				"id":          "tau-bench-evaluation",
				"name":        "τ-bench Evaluation",
				"description": "Evaluate agent tool-use capabilities in airline and retail domains",
				"tags":        []string{"evaluation", "benchmark", "tool-use"},
			},
		},
		"supported_domains": []string{"airline", "retail"},
		"metrics":           []string{"success_rate", "average_completion_time", "turns_per_task"},
	}
}
