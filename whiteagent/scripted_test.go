package whiteagent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/runner"
	"github.com/nicksaban20/Green-Agent/scenario"
)

func decode(t *testing.T, raw string) action {
	t.Helper()
	var a action
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	return a
}

func TestScripted_AirlineSuccessScript(t *testing.T) {
	agent := NewScripted()
	ctx := context.Background()

	scn, err := scenario.ByID(domain.Airline, "airline_success_1")
	require.NoError(t, err)

	opening := runner.OpeningMessage(domain.Airline.Catalog(), scn.UserGoal)

	reply, err := agent.Send(ctx, opening)
	require.NoError(t, err)
	assert.Equal(t, "search_flights", decode(t, reply).Name)

	reply, err = agent.Send(ctx, `Tool result: {"flights": [{"id": 101}]}`)
	require.NoError(t, err)
	a := decode(t, reply)
	assert.Equal(t, "book_flight", a.Name)
	assert.Equal(t, float64(101), a.Kwargs["flight_id"])

	reply, err = agent.Send(ctx, `Tool result: {"booking_id": 2, "status": "confirmed"}`)
	require.NoError(t, err)
	assert.Equal(t, "respond_to_user", decode(t, reply).Name)
}

func TestScripted_FailureScriptViolatesPolicy(t *testing.T) {
	agent := NewScripted()
	ctx := context.Background()

	scn, err := scenario.ByID(domain.Airline, "airline_failure_1")
	require.NoError(t, err)

	reply, err := agent.Send(ctx, runner.OpeningMessage(domain.Airline.Catalog(), scn.UserGoal))
	require.NoError(t, err)
	a := decode(t, reply)
	assert.Equal(t, "cancel_booking", a.Name)

	reply, err = agent.Send(ctx, `Tool result: {"error": "Cancellation not allowed after 24 hours"}`)
	require.NoError(t, err)
	assert.Equal(t, "respond_to_user", decode(t, reply).Name)
}

func TestScripted_OpeningMessageRestartsScript(t *testing.T) {
	agent := NewScripted()
	ctx := context.Background()

	first, err := scenario.ByID(domain.Airline, "airline_success_1")
	require.NoError(t, err)
	second, err := scenario.ByID(domain.Retail, "retail_success_1")
	require.NoError(t, err)

	_, err = agent.Send(ctx, runner.OpeningMessage(domain.Airline.Catalog(), first.UserGoal))
	require.NoError(t, err)

	// A new opening message switches scenarios and resets the turn counter.
	reply, err := agent.Send(ctx, runner.OpeningMessage(domain.Retail.Catalog(), second.UserGoal))
	require.NoError(t, err)
	assert.Equal(t, "search_products", decode(t, reply).Name)
}

func TestScripted_UnknownGoal(t *testing.T) {
	agent := NewScripted()

	reply, err := agent.Send(context.Background(), "User message: sing me a song")
	require.NoError(t, err)
	assert.Equal(t, "respond_to_user", decode(t, reply).Name)
}

func TestScripted_EveryScenarioEndsWithRespond(t *testing.T) {
	scenarios, err := scenario.All()
	require.NoError(t, err)

	for _, scn := range scenarios {
		agent := NewScripted()
		ctx := context.Background()

		d, err := domain.Parse(scn.Domain)
		require.NoError(t, err)

		reply, err := agent.Send(ctx, runner.OpeningMessage(d.Catalog(), scn.UserGoal))
		require.NoError(t, err)

		for turn := 1; turn < 10; turn++ {
			a := decode(t, reply)
			if a.Name == domain.RespondToUser {
				break
			}
			reply, err = agent.Send(ctx, `Tool result: {}`)
			require.NoError(t, err)
		}
		assert.Equal(t, domain.RespondToUser, decode(t, reply).Name, "scenario %s", scn.ID)
	}
}
