package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksaban20/Green-Agent/domain"
)

func TestParseOp_TypedVariants(t *testing.T) {
	op, err := ParseOp(domain.Airline, "book_flight", map[string]any{
		"flight_id": float64(101), "user_id": float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, BookFlightOp{FlightID: 101, UserID: 2}, op)

	op, err = ParseOp(domain.Retail, "place_order", map[string]any{
		"customer_id": 1,
		"product_ids": []any{float64(201), 202},
		"quantities":  []any{float64(1), int64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, PlaceOrderOp{
		CustomerID: 1,
		ProductIDs: []int64{201, 202},
		Quantities: []int64{1, 2},
	}, op)
}

func TestParseOp_RespondToUserAnyDomain(t *testing.T) {
	for _, d := range domain.All() {
		op, err := ParseOp(d, "respond_to_user", map[string]any{"message": "hi"})
		require.NoError(t, err)
		assert.Equal(t, RespondToUserOp{Message: "hi"}, op)
	}
}

func TestParseOp_UnknownTool(t *testing.T) {
	_, err := ParseOp(domain.Airline, "teleport", nil)
	require.Error(t, err)

	var unknownErr *UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Unknown tool: teleport", err.Error())
}

func TestParseOp_MissingArgument(t *testing.T) {
	_, err := ParseOp(domain.Airline, "search_flights", map[string]any{"destination": "LAX"})
	assert.ErrorContains(t, err, "date")

	_, err = ParseOp(domain.Retail, "return_item", map[string]any{"order_id": 1})
	assert.ErrorContains(t, err, "item_id")
}

func TestParseOp_WrongArgumentType(t *testing.T) {
	_, err := ParseOp(domain.Airline, "book_flight", map[string]any{
		"flight_id": "one-oh-one", "user_id": 1,
	})
	assert.ErrorContains(t, err, "flight_id must be an integer")

	_, err = ParseOp(domain.Retail, "place_order", map[string]any{
		"customer_id": 1, "product_ids": []any{"201"}, "quantities": []any{1},
	})
	assert.ErrorContains(t, err, "product_ids")
}

func TestParseOp_OptionalSearchFilters(t *testing.T) {
	op, err := ParseOp(domain.Retail, "search_products", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, SearchProductsOp{}, op)
}
