// Package greenagent provides a high-level façade over the evaluation
// pipeline (world state store, tool executor, goal verifier and conversation
// runner) enabling rapid construction of agent benchmarks. Most applications
// interact with this package by:
//  1. Creating an Evaluator via New() with a transport to the agent under test
//  2. Running one scenario (RunScenario) or the whole catalog (RunAll)
//  3. Inspecting the returned reports
//
// The façade wires fresh per-session state for every run so scenarios never
// observe each other's side effects. All defaults are safe for local
// development and testing; production deployments typically supply a
// structured logger and a Prometheus registry.
package greenagent

import (
	"context"

	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/metrics"
	"github.com/nicksaban20/Green-Agent/runner"
	"github.com/nicksaban20/Green-Agent/scenario"
	"github.com/nicksaban20/Green-Agent/tool"
	"github.com/nicksaban20/Green-Agent/transport"
	"github.com/nicksaban20/Green-Agent/world"
)

// Options configures the Evaluator instance.
type Options struct {
	// MaxTurns bounds every session's conversation. Defaults to
	// runner.DefaultMaxTurns.
	MaxTurns int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Metrics records session and tool-call outcomes; nil disables
	// instrumentation.
	Metrics *metrics.Recorder
}

// Evaluator is the high-level façade aggregating transport, session registry
// and the per-domain evaluation machinery.
type Evaluator struct {
	transport transport.Transport
	registry  *core.Registry
	runner    *runner.Runner
	opts      Options
}

// New creates a new Evaluator speaking to the agent under test through the
// given transport.
func New(t transport.Transport, optFns ...func(o *Options)) *Evaluator {
	opts := Options{
		MaxTurns: runner.DefaultMaxTurns,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	r := runner.New(t, func(o *runner.Options) {
		o.MaxTurns = opts.MaxTurns
		o.Logger = opts.Logger
		o.Metrics = opts.Metrics
	})

	return &Evaluator{
		transport: t,
		registry:  core.NewRegistry(),
		runner:    r,
		opts:      opts,
	}
}

// Registry exposes the session registry, mainly for inspection by servers
// and tests.
func (e *Evaluator) Registry() *core.Registry {
	return e.registry
}

// RunScenario evaluates one scenario end to end: it opens a fresh world
// store seeded from the domain schema, applies the scenario's initial state
// override if present, drives the conversation and returns the report. The
// session and its store are torn down before returning.
func (e *Evaluator) RunScenario(ctx context.Context, scn *scenario.Scenario) (*core.Report, error) {
	d, err := domain.Parse(scn.Domain)
	if err != nil {
		return nil, err
	}

	store, err := world.Open(d.Schema(), d.Tables(), func(o *world.Options) {
		o.Logger = e.opts.Logger
	})
	if err != nil {
		return nil, err
	}

	sess := e.registry.Create("", scn.Domain, store)
	defer e.registry.Remove(sess.ID) //nolint:errcheck

	if len(scn.InitialState) > 0 {
		if err := store.Reset(scn.InitialState); err != nil {
			return nil, err
		}
	}

	logger := e.opts.Logger
	if el, ok := logger.(*logging.EvalLogger); ok {
		logger = el.WithSession(sess.ID, scn.ID)
	}
	logger.Info("Starting evaluation session", "domain", scn.Domain, "scenario", scn.ID)

	exec := tool.NewExecutor(d, store, sess, func(o *tool.Options) {
		o.Logger = logger
		o.Metrics = e.opts.Metrics
	})

	report := e.runner.Run(ctx, sess, d, exec, scn)

	return report, nil
}

// RunByID looks up a scenario by domain and id and evaluates it.
func (e *Evaluator) RunByID(ctx context.Context, d domain.Domain, id string) (*core.Report, error) {
	scn, err := scenario.ByID(d, id)
	if err != nil {
		return nil, err
	}

	return e.RunScenario(ctx, scn)
}

// RunAll evaluates the full scenario catalog sequentially and returns the
// batch report. A scenario whose setup fails contributes a failed line item
// rather than aborting the batch.
func (e *Evaluator) RunAll(ctx context.Context) (*core.BatchReport, error) {
	scenarios, err := scenario.All()
	if err != nil {
		return nil, err
	}

	results := make([]core.ScenarioResult, 0, len(scenarios))

	for i := range scenarios {
		scn := &scenarios[i]

		report, err := e.RunScenario(ctx, scn)
		if err != nil {
			e.opts.Logger.Error("Scenario setup failed", "scenario", scn.ID, "error", err.Error())
			results = append(results, core.ScenarioResult{
				Domain:   scn.Domain,
				Scenario: scn.ID,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}

		results = append(results, core.ScenarioResult{
			Domain:   scn.Domain,
			Scenario: scn.ID,
			Success:  report.Success,
			TimeUsed: report.TimeUsed,
			Turns:    report.Turns,
			Error:    report.Error,
		})
	}

	return core.NewBatchReport(results), nil
}
