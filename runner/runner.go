// Package runner drives the bounded-turn conversation loop with the remote
// agent under test: it composes the opening message, decodes structured
// actions from agent responses, dispatches them to the tool executor and
// terminates on the sentinel action or turn-budget exhaustion. After the
// loop it hands the final world snapshot to the goal verifier and reports
// the verdict.
package runner

import (
	"context"
	"time"

	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/evaluation"
	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/metrics"
	"github.com/nicksaban20/Green-Agent/scenario"
	"github.com/nicksaban20/Green-Agent/tool"
	"github.com/nicksaban20/Green-Agent/transport"
)

// DefaultMaxTurns bounds the conversation when no budget is configured.
const DefaultMaxTurns = 20

// Options holds optional overrides passed to New().
type Options struct {
	// MaxTurns is the round-trip budget per session.
	MaxTurns int
	// Logger receives orchestration diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records session outcomes; nil disables instrumentation.
	Metrics *metrics.Recorder
}

// Runner executes one evaluation session at a time against a transport. A
// session is a single logical thread of control: one outbound call in
// flight, no concurrent tool executions. Distinct sessions may run on
// distinct Runners concurrently.
type Runner struct {
	transport transport.Transport
	maxTurns  int
	logger    logging.Logger
	metrics   *metrics.Recorder
}

// New constructs a Runner sending through the given transport.
func New(t transport.Transport, optFns ...func(o *Options)) *Runner {
	opts := Options{MaxTurns: DefaultMaxTurns, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{transport: t, maxTurns: opts.MaxTurns, logger: opts.Logger, metrics: opts.Metrics}
}

// Run drives the conversation for one session and returns its report. The
// report is always a structured record; faults from tool execution never
// surface here, and protocol or transport failures end the session with the
// partial turn count.
func (r *Runner) Run(ctx context.Context, sess *core.Session, d domain.Domain, exec *tool.Executor, scn *scenario.Scenario) *core.Report {
	start := time.Now()
	report := &core.Report{
		Scenario:        scn.ID,
		Domain:          string(d),
		ExpectedSuccess: scn.ExpectedSuccess,
	}

	response, err := r.transport.Send(ctx, OpeningMessage(d.Catalog(), scn.UserGoal))
	if err != nil {
		sess.SetStatus(core.StatusTransportError)
		report.Error = err.Error()
		return r.finish(report, sess, scn, start)
	}

	for sess.Turns() < r.maxTurns {
		turn := sess.AddTurn()

		action, err := DecodeAction(response)
		if err != nil {
			r.logger.Error("Undecodable agent response", "turn", turn, "error", err.Error())
			sess.SetStatus(core.StatusProtocolError)
			report.Error = err.Error()
			return r.finish(report, sess, scn, start)
		}
		r.logger.Debug("Agent action decoded", "turn", turn, "tool", action.Name)

		result := exec.Execute(action.Name, action.Kwargs)

		if action.Name == domain.RespondToUser {
			sess.SetStatus(core.StatusComplete)
			r.logger.Info("Conversation completed", "turns", turn)
			break
		}

		response, err = r.transport.Send(ctx, ToolResultMessage(result))
		if err != nil {
			sess.SetStatus(core.StatusTransportError)
			report.Error = err.Error()
			return r.finish(report, sess, scn, start)
		}
	}

	if sess.Status() == core.StatusRunning {
		sess.SetStatus(core.StatusBudgetExceeded)
		r.logger.Warn("Conversation did not complete within turn budget", "max_turns", r.maxTurns)
	}

	// COMPLETE and BUDGET_EXCEEDED both get a verdict from the final world
	// snapshot; aborted sessions do not.
	snapshot, err := sess.Store.Snapshot()
	if err != nil {
		report.Error = err.Error()
		return r.finish(report, sess, scn, start)
	}
	report.GoalAchieved = evaluation.Evaluate(scn.GoalState, snapshot)

	return r.finish(report, sess, scn, start)
}

// finish stamps the report with turn count, wall time and the forced verdict
// for expected-failure scenarios, and records instrumentation.
func (r *Runner) finish(report *core.Report, sess *core.Session, scn *scenario.Scenario, start time.Time) *core.Report {
	elapsed := time.Since(start)
	report.Turns = sess.Turns()
	report.TimeUsed = elapsed.Seconds()
	report.Status = sess.Status()
	report.History = sess.Records()

	if scn.ExpectedSuccess {
		report.Success = report.GoalAchieved
	} else {
		// Expected-failure scenarios prove correct rejection; they never
		// count as passed.
		report.Success = false
	}

	r.metrics.ObserveSession(report.Domain, string(report.Status), report.Turns, elapsed)
	r.logger.Info("Evaluation complete",
		"scenario", scn.ID,
		"goal_achieved", report.GoalAchieved,
		"expected_success", report.ExpectedSuccess,
		"test_passed", report.Success,
		"turns", report.Turns,
		"time_used", report.TimeUsed,
	)
	return report
}
