package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotFixture() map[string][]map[string]any {
	return map[string][]map[string]any{
		"bookings": {
			{"id": int64(1), "user_id": int64(2), "flight_id": int64(102), "status": "confirmed"},
			{"id": int64(2), "user_id": int64(1), "flight_id": int64(101), "status": "cancelled"},
		},
		"flights": {
			{"id": int64(101), "available_seats": int64(0), "price": 250.0},
		},
	}
}

func TestEvaluate_SubsetMatch(t *testing.T) {
	goal := GoalSpec{
		"bookings": {
			{"user_id": 2, "status": "confirmed"},
		},
	}
	assert.True(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_NumericNormalization(t *testing.T) {
	// Goal values come from JSON as float64 while SQLite yields int64.
	goal := GoalSpec{
		"flights": {
			{"id": float64(101), "available_seats": float64(0)},
		},
	}
	assert.True(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_ValueMismatch(t *testing.T) {
	goal := GoalSpec{
		"bookings": {
			{"user_id": 2, "status": "cancelled"},
		},
	}
	assert.False(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_MissingColumn(t *testing.T) {
	goal := GoalSpec{
		"bookings": {
			{"no_such_column": 1},
		},
	}
	assert.False(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_MissingTable(t *testing.T) {
	goal := GoalSpec{
		"orders": {
			{"status": "completed"},
		},
	}
	assert.False(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_EmptyGoal(t *testing.T) {
	assert.True(t, Evaluate(GoalSpec{}, snapshotFixture()))
	assert.True(t, Evaluate(nil, snapshotFixture()))
}

func TestEvaluate_EveryExpectedRowMustMatch(t *testing.T) {
	goal := GoalSpec{
		"bookings": {
			{"status": "confirmed"},
			{"status": "refunded"},
		},
	}
	assert.False(t, Evaluate(goal, snapshotFixture()))
}

func TestEvaluate_FloatTolerance(t *testing.T) {
	goal := GoalSpec{
		"flights": {
			{"price": 250},
		},
	}
	assert.True(t, Evaluate(goal, snapshotFixture()))
}
