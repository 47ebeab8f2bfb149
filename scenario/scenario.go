// Package scenario loads the declarative evaluation scenarios: per scenario
// an id, domain, user goal, optional initial world-state override, a goal
// specification and the expected_success flag. The stock catalog ships
// embedded in the binary.
package scenario

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/evaluation"
)

//go:embed testcases/airline_scenarios.json testcases/retail_scenarios.json
var testcases embed.FS

// Scenario is one declarative evaluation record.
type Scenario struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
	UserGoal    string `json:"user_goal"`
	// InitialState, when present, replaces the seed dataset before the
	// conversation starts.
	InitialState map[string][]map[string]any `json:"initial_state,omitempty"`
	GoalState    evaluation.GoalSpec         `json:"goal_state"`
	// ExpectedSuccess false marks a scenario that exercises a rule
	// violation: the reported verdict is forced to fail regardless of the
	// goal check. Defaults to true when absent.
	ExpectedSuccess bool `json:"expected_success"`
}

// UnmarshalJSON defaults ExpectedSuccess to true when the field is absent.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	type alias Scenario
	aux := struct {
		*alias
		ExpectedSuccess *bool `json:"expected_success"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.ExpectedSuccess = aux.ExpectedSuccess == nil || *aux.ExpectedSuccess
	return nil
}

// ForDomain returns the scenario catalog of one domain in file order.
func ForDomain(d domain.Domain) ([]Scenario, error) {
	data, err := testcases.ReadFile(fmt.Sprintf("testcases/%s_scenarios.json", d))
	if err != nil {
		return nil, fmt.Errorf("no scenario catalog for domain %s: %w", d, err)
	}
	var scenarios []Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("invalid scenario catalog for domain %s: %w", d, err)
	}
	return scenarios, nil
}

// ByID returns the scenario with the given id within a domain.
func ByID(d domain.Domain, id string) (*Scenario, error) {
	scenarios, err := ForDomain(d)
	if err != nil {
		return nil, err
	}
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found", id)
}

// ByIndex returns the scenario at a zero-based position within a domain
// catalog window (the task id form used by batch requests).
func ByIndex(d domain.Domain, index int) (*Scenario, error) {
	scenarios, err := ForDomain(d)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(scenarios) {
		return nil, fmt.Errorf("task index %d out of range for domain %s", index, d)
	}
	return &scenarios[index], nil
}

// All returns every scenario of every domain, airline first.
func All() ([]Scenario, error) {
	var all []Scenario
	for _, d := range domain.All() {
		scenarios, err := ForDomain(d)
		if err != nil {
			return nil, err
		}
		all = append(all, scenarios...)
	}
	return all, nil
}
