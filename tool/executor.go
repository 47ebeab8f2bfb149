package tool

import (
	"time"

	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/logging"
	"github.com/nicksaban20/Green-Agent/metrics"
	"github.com/nicksaban20/Green-Agent/world"
)

// Options holds optional overrides passed to NewExecutor().
type Options struct {
	// Logger receives execution diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records tool call counters; nil disables instrumentation.
	Metrics *metrics.Recorder
	// Now supplies wall-clock time for business-rule windows. Tests inject
	// fixed clocks here.
	Now func() time.Time
}

// Executor dispatches decoded tool operations against one session's world
// state store. Every execution appends exactly two timestamped records to
// the session log (call, then result) and never lets a fault escape: schema
// violations, policy rejections and malformed arguments all come back as
// {"error": ...} results the remote agent can react to.
type Executor struct {
	domain  domain.Domain
	store   *world.Store
	session *core.Session
	logger  logging.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewExecutor constructs an Executor bound to one session and its store.
func NewExecutor(d domain.Domain, store *world.Store, session *core.Session, optFns ...func(o *Options)) *Executor {
	opts := Options{Logger: logging.NoOpLogger{}, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{
		domain:  d,
		store:   store,
		session: session,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
}

// Execute decodes and runs one tool call, returning the result payload. The
// returned map is always non-nil; failures carry an "error" key.
func (e *Executor) Execute(name string, kwargs map[string]any) Result {
	start := e.now()
	e.session.AppendRecord(core.CallRecord{
		Kind:      core.RecordCall,
		Tool:      name,
		Args:      kwargs,
		Timestamp: start,
	})

	result := e.run(name, kwargs)

	_, failed := result["error"]
	e.session.AppendRecord(core.CallRecord{
		Kind:      core.RecordResult,
		Tool:      name,
		Result:    result,
		Timestamp: e.now(),
	})
	e.logger.Debug("Tool executed", "tool", name, "success", !failed, "duration", time.Since(start))
	e.metrics.ObserveToolCall(string(e.domain), name, !failed)

	return result
}

func (e *Executor) run(name string, kwargs map[string]any) Result {
	op, err := ParseOp(e.domain, name, kwargs)
	if err != nil {
		return errorResult(err)
	}
	result, err := e.dispatch(op)
	if err != nil {
		return errorResult(err)
	}
	return result
}

// dispatch is the exhaustive handler over the closed operation set.
func (e *Executor) dispatch(op Op) (Result, error) {
	switch op := op.(type) {
	case SearchFlightsOp:
		return e.searchFlights(op)
	case BookFlightOp:
		return e.bookFlight(op)
	case CancelBookingOp:
		return e.cancelBooking(op)
	case SearchProductsOp:
		return e.searchProducts(op)
	case PlaceOrderOp:
		return e.placeOrder(op)
	case ReturnItemOp:
		return e.returnItem(op)
	case CheckInventoryOp:
		return e.checkInventory(op)
	case CheckPolicyOp:
		return e.checkPolicy(op)
	case RespondToUserOp:
		return Result{"message": op.Message, "status": "sent"}, nil
	default:
		return nil, &UnknownToolError{Name: op.ToolName()}
	}
}

func errorResult(err error) Result {
	return Result{"error": err.Error()}
}

// daysSince returns whole days elapsed between a stored YYYY-MM-DD date and
// now, matching the wall-clock window semantics of the policy rules.
func (e *Executor) daysSince(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, core.NewBusinessRuleError("invalid date: %s", date)
	}
	return int(e.now().Sub(t).Hours() / 24), nil
}

func (e *Executor) today() string {
	return e.now().Format("2006-01-02")
}
