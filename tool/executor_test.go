package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/domain"
	"github.com/nicksaban20/Green-Agent/world"
)

func newTestExecutor(t *testing.T, d domain.Domain) (*Executor, *world.Store, *core.Session) {
	t.Helper()

	store, err := world.Open(d.Schema(), d.Tables())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sess := core.NewSession(core.NewID(), string(d), store)
	exec := NewExecutor(d, store, sess)

	return exec, store, sess
}

// -------------------- Airline Tests --------------------

func TestExecute_SearchFlights(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("search_flights", map[string]any{
		"destination": "LAX", "date": "2025-11-01",
	})

	flights, ok := result["flights"].([]world.Row)
	require.True(t, ok)
	require.Len(t, flights, 1)
	assert.Equal(t, int64(101), flights[0]["id"])
}

func TestExecute_SearchFlights_NoMatch(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("search_flights", map[string]any{
		"destination": "SFO", "date": "2025-11-01",
	})

	flights, ok := result["flights"].([]world.Row)
	require.True(t, ok)
	assert.Empty(t, flights)
}

func TestExecute_BookFlight(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("book_flight", map[string]any{
		"flight_id": float64(101), "user_id": float64(1),
	})

	assert.Equal(t, "confirmed", result["status"])
	assert.NotNil(t, result["booking_id"])

	// Seat debit and booking row commit together.
	flight, err := store.QueryRow("SELECT available_seats FROM flights WHERE id = 101")
	require.NoError(t, err)
	assert.Equal(t, int64(0), flight["available_seats"])

	booking, err := store.QueryRow(
		"SELECT * FROM bookings WHERE user_id = 1 AND flight_id = 101 AND status = 'confirmed'",
	)
	require.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestExecute_BookFlight_NoSeats(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Airline)

	first := exec.Execute("book_flight", map[string]any{"flight_id": 101, "user_id": 1})
	require.Equal(t, "confirmed", first["status"])

	second := exec.Execute("book_flight", map[string]any{"flight_id": 101, "user_id": 2})
	assert.Equal(t, "No seats available", second["error"])

	// The rejected attempt must leave no booking row behind.
	rows, err := store.Query("SELECT * FROM bookings WHERE flight_id = 101")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExecute_BookFlight_NotFound(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("book_flight", map[string]any{"flight_id": 999, "user_id": 1})
	assert.Equal(t, "Flight not found", result["error"])

	rows, err := store.Query("SELECT * FROM bookings WHERE flight_id = 999")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExecute_CancelBooking_FreshBooking(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Airline)

	booked := exec.Execute("book_flight", map[string]any{"flight_id": 102, "user_id": 1})
	require.Equal(t, "confirmed", booked["status"])

	result := exec.Execute("cancel_booking", map[string]any{"booking_id": booked["booking_id"]})
	assert.Equal(t, "cancelled", result["status"])

	// The seat returns with the cancellation.
	flight, err := store.QueryRow("SELECT available_seats FROM flights WHERE id = 102")
	require.NoError(t, err)
	assert.Equal(t, int64(5), flight["available_seats"])
}

func TestExecute_CancelBooking_OutsideWindow(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Airline)

	// Booking 1 is seeded ten days in the past.
	result := exec.Execute("cancel_booking", map[string]any{"booking_id": 1})
	assert.Equal(t, "Cancellation not allowed after 24 hours", result["error"])

	booking, err := store.QueryRow("SELECT status FROM bookings WHERE id = 1")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", booking["status"])

	flight, err := store.QueryRow("SELECT available_seats FROM flights WHERE id = 102")
	require.NoError(t, err)
	assert.Equal(t, int64(5), flight["available_seats"])
}

func TestExecute_CancelBooking_NotFound(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("cancel_booking", map[string]any{"booking_id": 77})
	assert.Equal(t, "Booking not found", result["error"])
}

// -------------------- Retail Tests --------------------

func TestExecute_SearchProducts_ByName(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("search_products", map[string]any{"name": "Laptop"})

	products, ok := result["products"].([]world.Row)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, int64(201), products[0]["id"])
}

func TestExecute_SearchProducts_ByCategory(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("search_products", map[string]any{"category": "Electronics"})

	products, ok := result["products"].([]world.Row)
	require.True(t, ok)
	assert.Len(t, products, 3)
}

func TestExecute_PlaceOrder(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1, "product_ids": []any{float64(201)}, "quantities": []any{float64(1)},
	})

	assert.Equal(t, "completed", result["status"])
	assert.Equal(t, 999.99, result["total_amount"])

	product, err := store.QueryRow("SELECT stock_quantity FROM products WHERE id = 201")
	require.NoError(t, err)
	assert.Equal(t, int64(9), product["stock_quantity"])

	items, err := store.Query("SELECT * FROM order_items WHERE order_id = ?", result["order_id"])
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestExecute_PlaceOrder_MultiLine(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1,
		"product_ids": []any{float64(202), float64(203)},
		"quantities":  []any{float64(2), float64(1)},
	})

	assert.Equal(t, "completed", result["status"])
	assert.InDelta(t, 2*699.99+199.99, result["total_amount"].(float64), 0.001)

	product, err := store.QueryRow("SELECT stock_quantity FROM products WHERE id = 202")
	require.NoError(t, err)
	assert.Equal(t, int64(3), product["stock_quantity"])
}

func TestExecute_PlaceOrder_InsufficientStock(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1, "product_ids": []any{float64(201)}, "quantities": []any{float64(100)},
	})
	assert.Equal(t, "Insufficient stock for product 201", result["error"])

	// No order row and untouched stock after rejection.
	orders, err := store.Query("SELECT * FROM orders WHERE customer_id = 1 AND id != 1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	product, err := store.QueryRow("SELECT stock_quantity FROM products WHERE id = 201")
	require.NoError(t, err)
	assert.Equal(t, int64(10), product["stock_quantity"])
}

func TestExecute_PlaceOrder_ShortLineFailsWholeOrder(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	// First line is satisfiable, second is not; nothing may be written.
	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1,
		"product_ids": []any{float64(201), float64(202)},
		"quantities":  []any{float64(1), float64(100)},
	})
	assert.Equal(t, "Insufficient stock for product 202", result["error"])

	product, err := store.QueryRow("SELECT stock_quantity FROM products WHERE id = 201")
	require.NoError(t, err)
	assert.Equal(t, int64(10), product["stock_quantity"])
}

func TestExecute_PlaceOrder_LengthMismatch(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1, "product_ids": []any{float64(201)}, "quantities": []any{},
	})
	assert.Equal(t, "Product IDs and quantities must match", result["error"])
}

func TestExecute_ReturnItem_FreshOrder(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	placed := exec.Execute("place_order", map[string]any{
		"customer_id": 2, "product_ids": []any{float64(203)}, "quantities": []any{float64(1)},
	})
	require.Equal(t, "completed", placed["status"])

	item, err := store.QueryRow("SELECT id FROM order_items WHERE order_id = ?", placed["order_id"])
	require.NoError(t, err)

	result := exec.Execute("return_item", map[string]any{
		"order_id": placed["order_id"], "item_id": item["id"], "reason": "changed my mind",
	})
	assert.Equal(t, "returned", result["status"])
	assert.Equal(t, "changed my mind", result["reason"])

	product, err := store.QueryRow("SELECT stock_quantity FROM products WHERE id = 203")
	require.NoError(t, err)
	assert.Equal(t, int64(8), product["stock_quantity"])
}

func TestExecute_ReturnItem_WindowExpired(t *testing.T) {
	exec, store, _ := newTestExecutor(t, domain.Retail)

	// Order 1 is seeded forty days in the past.
	result := exec.Execute("return_item", map[string]any{
		"order_id": 1, "item_id": 1, "reason": "too slow",
	})
	assert.Equal(t, "Return window expired (30 days)", result["error"])

	item, err := store.QueryRow("SELECT quantity FROM order_items WHERE id = 1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), item["quantity"])
}

func TestExecute_CheckInventory(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Retail)

	result := exec.Execute("check_inventory", map[string]any{"product_id": 204})
	assert.Equal(t, int64(12), result["stock_quantity"])

	missing := exec.Execute("check_inventory", map[string]any{"product_id": 999})
	assert.Equal(t, "Product not found", missing["error"])
}

// -------------------- Shared Behavior Tests --------------------

func TestExecute_CheckPolicy(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("check_policy", map[string]any{"policy_type": "cancellation"})
	assert.Equal(t, "Cancellations within 24 hours get full refund", result["policy"])

	result = exec.Execute("check_policy", map[string]any{"policy_type": "bogus"})
	assert.Equal(t, "Unknown policy type", result["error"])
}

func TestExecute_RespondToUser(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("respond_to_user", map[string]any{"message": "All done!"})
	assert.Equal(t, "All done!", result["message"])
	assert.Equal(t, "sent", result["status"])
}

func TestExecute_UnknownTool(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("refuel_rocket", map[string]any{})
	assert.Equal(t, "Unknown tool: refuel_rocket", result["error"])
}

func TestExecute_CrossDomainToolRejected(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("place_order", map[string]any{
		"customer_id": 1, "product_ids": []any{float64(201)}, "quantities": []any{float64(1)},
	})
	assert.Equal(t, "Unknown tool: place_order", result["error"])
}

func TestExecute_MissingArgument(t *testing.T) {
	exec, _, _ := newTestExecutor(t, domain.Airline)

	result := exec.Execute("book_flight", map[string]any{"user_id": 1})
	assert.Contains(t, result["error"], "flight_id")
}

func TestExecute_RecordsCallAndResult(t *testing.T) {
	exec, _, sess := newTestExecutor(t, domain.Airline)

	exec.Execute("search_flights", map[string]any{"destination": "LAX", "date": "2025-11-01"})

	records := sess.Records()
	require.Len(t, records, 2)
	assert.Equal(t, core.RecordCall, records[0].Kind)
	assert.Equal(t, "search_flights", records[0].Tool)
	assert.Equal(t, core.RecordResult, records[1].Kind)
	assert.Equal(t, "search_flights", records[1].Tool)
	assert.False(t, records[1].Timestamp.Before(records[0].Timestamp))
}
