package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	greenagent "github.com/nicksaban20/Green-Agent"
	"github.com/nicksaban20/Green-Agent/config"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/metrics"
	"github.com/nicksaban20/Green-Agent/server"
	"github.com/nicksaban20/Green-Agent/transport"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func newLogger(cfg *config.Config) *logging.EvalLogger {
	return logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, false)
}

// ServeCmd starts the evaluator HTTP server.
// Usage: greenagent serve --addr :8686
type ServeCmd struct {
	Addr string `short:"a" long:"addr" description:"listen address (overrides config)"`

	opts *Options
}

func (s *ServeCmd) Execute(_ []string) error {
	cfg, err := loadConfig(s.opts.Config)
	if err != nil {
		return err
	}

	addr := cfg.Server.Listen
	if s.Addr != "" {
		addr = s.Addr
	}

	logger := newLogger(cfg)

	var registry *prometheus.Registry
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewRecorder(registry)
	}

	srv := server.New(func(o *server.Options) {
		o.MaxTurns = cfg.Runner.MaxTurns
		o.AgentTimeout = cfg.Agent.Timeout.Std()
		o.Logger = logger.WithComponent("server")
		o.Metrics = recorder
		o.Registry = registry
	})

	return srv.Start(addr)
}

// RunCmd evaluates one scenario against a running agent and prints the
// report as JSON.
// Usage: greenagent run --domain airline --scenario airline_success_1
type RunCmd struct {
	Domain   string `short:"d" long:"domain" description:"scenario domain" default:"airline"`
	Scenario string `short:"s" long:"scenario" description:"scenario id" default:"airline_success_1"`
	AgentURL string `short:"u" long:"agent-url" description:"white agent base URL (overrides config)"`

	opts *Options
}

func (r *RunCmd) Execute(_ []string) error {
	cfg, err := loadConfig(r.opts.Config)
	if err != nil {
		return err
	}

	d, err := domain.Parse(r.Domain)
	if err != nil {
		return err
	}

	report, err := r.evaluator(cfg).RunByID(context.Background(), d, r.Scenario)
	if err != nil {
		return err
	}

	return printJSON(report)
}

func (r *RunCmd) evaluator(cfg *config.Config) *greenagent.Evaluator {
	url := cfg.Agent.URL
	if r.AgentURL != "" {
		url = r.AgentURL
	}

	t := transport.NewHTTP(url, func(o *transport.Options) {
		o.Timeout = cfg.Agent.Timeout.Std()
	})

	return greenagent.New(t, func(o *greenagent.Options) {
		o.MaxTurns = cfg.Runner.MaxTurns
		o.Logger = newLogger(cfg)
	})
}

// BatchCmd runs every scenario in the catalog and prints the batch report.
// Usage: greenagent batch --agent-url http://localhost:8585
type BatchCmd struct {
	AgentURL string `short:"u" long:"agent-url" description:"white agent base URL (overrides config)"`

	opts *Options
}

func (b *BatchCmd) Execute(_ []string) error {
	cfg, err := loadConfig(b.opts.Config)
	if err != nil {
		return err
	}

	url := cfg.Agent.URL
	if b.AgentURL != "" {
		url = b.AgentURL
	}

	t := transport.NewHTTP(url, func(o *transport.Options) {
		o.Timeout = cfg.Agent.Timeout.Std()
	})

	eval := greenagent.New(t, func(o *greenagent.Options) {
		o.MaxTurns = cfg.Runner.MaxTurns
		o.Logger = newLogger(cfg)
	})

	batch, err := eval.RunAll(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "success rate: %.2f (%d/%d)\n",
		batch.Aggregate.SuccessRate, batch.Aggregate.SuccessCount, batch.Aggregate.TotalScenarios)

	return printJSON(batch)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
