// Package evaluation implements the goal-state verifier: a pure,
// deterministic comparison of a declarative goal specification against the
// final world snapshot of a session.
package evaluation

// GoalSpec maps a table name to the partial rows expected in it. A partial
// row constrains only the attributes it names; everything else is free.
type GoalSpec map[string][]map[string]any

// Evaluate reports whether every expected partial row has at least one
// subset-matching row in the corresponding snapshot table. Absence of a
// named table fails immediately. Row order and surplus rows are irrelevant.
// The function issues no side effects; calling it twice on the same inputs
// yields the same verdict.
func Evaluate(goal GoalSpec, snapshot map[string][]map[string]any) bool {
	for table, expectedRows := range goal {
		currentRows, ok := snapshot[table]
		if !ok {
			return false
		}
		for _, expected := range expectedRows {
			if !anyRowMatches(expected, currentRows) {
				return false
			}
		}
	}
	return true
}

func anyRowMatches(expected map[string]any, rows []map[string]any) bool {
	for _, row := range rows {
		if rowMatches(expected, row) {
			return true
		}
	}
	return false
}

func rowMatches(expected, row map[string]any) bool {
	for key, want := range expected {
		got, ok := row[key]
		if !ok || !valueEqual(want, got) {
			return false
		}
	}
	return true
}

// valueEqual compares a goal-spec value (JSON decoded, so numbers arrive as
// float64) with a store value (SQLite hands back int64/float64/string).
// Numeric values compare by magnitude across integer and float forms.
func valueEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
