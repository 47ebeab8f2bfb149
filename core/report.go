package core

// Report is the structured outcome of one evaluation session. It is always
// returned as a value record, never as a raw fault.
//
// Success is the reported verdict: for expected-success scenarios it mirrors
// GoalAchieved; for expected-failure scenarios it is forced to false because
// those scenarios prove correct rejection, not task completion.
type Report struct {
	Success         bool         `json:"success"`
	GoalAchieved    bool         `json:"goal_achieved"`
	ExpectedSuccess bool         `json:"expected_success"`
	Turns           int          `json:"turns"`
	TimeUsed        float64      `json:"time_used"` // seconds
	Scenario        string       `json:"scenario"`
	Domain          string       `json:"domain"`
	Status          Status       `json:"status"`
	Error           string       `json:"error,omitempty"`
	History         []CallRecord `json:"conversation_history,omitempty"`
}

// ScenarioResult is the per-scenario line item of a batch run.
type ScenarioResult struct {
	Domain   string  `json:"domain"`
	Scenario string  `json:"scenario"`
	Success  bool    `json:"success"`
	TimeUsed float64 `json:"time_used"`
	Turns    int     `json:"turns"`
	Error    string  `json:"error,omitempty"`
}

// AggregateMetrics summarizes a batch of scenario runs.
type AggregateMetrics struct {
	SuccessRate    float64 `json:"success_rate"`
	SuccessCount   int     `json:"success_count"`
	TotalScenarios int     `json:"total_scenarios"`
	AverageTime    float64 `json:"average_time"`
	TotalTime      float64 `json:"total_time"`
}

// BatchReport aggregates the outcome of running every scenario.
type BatchReport struct {
	Aggregate AggregateMetrics `json:"aggregate_metrics"`
	Results   []ScenarioResult `json:"individual_results"`
}

// NewBatchReport computes aggregate metrics from individual results.
func NewBatchReport(results []ScenarioResult) *BatchReport {
	report := &BatchReport{Results: results}
	report.Aggregate.TotalScenarios = len(results)
	for _, res := range results {
		if res.Success {
			report.Aggregate.SuccessCount++
		}
		report.Aggregate.TotalTime += res.TimeUsed
	}
	if len(results) > 0 {
		report.Aggregate.SuccessRate = float64(report.Aggregate.SuccessCount) / float64(len(results))
		report.Aggregate.AverageTime = report.Aggregate.TotalTime / float64(len(results))
	}
	return report
}
