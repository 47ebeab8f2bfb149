// Package tool implements the tool execution sandbox: it maps a tool name
// plus argument set to a deterministic state transition or query against the
// world state store, records an immutable call/result log, and converts every
// fault into a structured error result.
//
// Dispatch is deliberately not string matching all the way down: each domain
// enumerates a closed set of operation variants, and a decoded (name, kwargs)
// pair becomes a typed op handled by an exhaustive type switch. Adding a tool
// means extending the variant set and its handler.
package tool

import (
	"fmt"

	"github.com/nicksaban20/Green-Agent/domain"
)

// Result is the JSON-serializable payload handed back to the orchestrator.
// Error results carry a single "error" key.
type Result = map[string]any

// Op is one decoded tool operation. The set of implementations per domain is
// closed; ParseOp is the only constructor path.
type Op interface {
	// ToolName returns the wire-level tool name of the operation.
	ToolName() string
}

// SearchFlightsOp queries flights by destination and departure date.
type SearchFlightsOp struct {
	Destination string
	Date        string
}

// ToolName implements Op.
func (SearchFlightsOp) ToolName() string { return "search_flights" }

// BookFlightOp books one seat on a flight for a user.
type BookFlightOp struct {
	FlightID int64
	UserID   int64
}

// ToolName implements Op.
func (BookFlightOp) ToolName() string { return "book_flight" }

// CancelBookingOp cancels a booking inside the 24 hour window.
type CancelBookingOp struct {
	BookingID int64
}

// ToolName implements Op.
func (CancelBookingOp) ToolName() string { return "cancel_booking" }

// CheckPolicyOp looks up a static policy text.
type CheckPolicyOp struct {
	PolicyType string
}

// ToolName implements Op.
func (CheckPolicyOp) ToolName() string { return "check_policy" }

// RespondToUserOp is the terminal sentinel: a pure no-op that always
// succeeds.
type RespondToUserOp struct {
	Message string
}

// ToolName implements Op.
func (RespondToUserOp) ToolName() string { return domain.RespondToUser }

// SearchProductsOp queries products by optional category and name filters.
type SearchProductsOp struct {
	Category string
	Name     string
}

// ToolName implements Op.
func (SearchProductsOp) ToolName() string { return "search_products" }

// PlaceOrderOp places a multi-line order for a customer.
type PlaceOrderOp struct {
	CustomerID int64
	ProductIDs []int64
	Quantities []int64
}

// ToolName implements Op.
func (PlaceOrderOp) ToolName() string { return "place_order" }

// ReturnItemOp returns one unit of an order line inside the 30 day window.
type ReturnItemOp struct {
	OrderID int64
	ItemID  int64
	Reason  string
}

// ToolName implements Op.
func (ReturnItemOp) ToolName() string { return "return_item" }

// CheckInventoryOp reads the stock level of a product.
type CheckInventoryOp struct {
	ProductID int64
}

// ToolName implements Op.
func (CheckInventoryOp) ToolName() string { return "check_inventory" }

// UnknownToolError marks a tool name outside the domain catalog. The
// executor turns it into the canonical "Unknown tool: <name>" result.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// ParseOp decodes a wire-level (name, kwargs) pair into the typed operation
// of the given domain. Unknown names yield *UnknownToolError; malformed
// arguments yield a plain error. Both become tool-level error results, never
// faults.
func ParseOp(d domain.Domain, name string, kwargs map[string]any) (Op, error) {
	if name == domain.RespondToUser {
		return RespondToUserOp{Message: optStringArg(kwargs, "message")}, nil
	}
	switch d {
	case domain.Airline:
		return parseAirlineOp(name, kwargs)
	case domain.Retail:
		return parseRetailOp(name, kwargs)
	default:
		return nil, fmt.Errorf("unknown domain: %s", d)
	}
}

func parseAirlineOp(name string, kwargs map[string]any) (Op, error) {
	switch name {
	case "search_flights":
		destination, err := stringArg(kwargs, "destination")
		if err != nil {
			return nil, err
		}
		date, err := stringArg(kwargs, "date")
		if err != nil {
			return nil, err
		}
		return SearchFlightsOp{Destination: destination, Date: date}, nil
	case "book_flight":
		flightID, err := intArg(kwargs, "flight_id")
		if err != nil {
			return nil, err
		}
		userID, err := intArg(kwargs, "user_id")
		if err != nil {
			return nil, err
		}
		return BookFlightOp{FlightID: flightID, UserID: userID}, nil
	case "cancel_booking":
		bookingID, err := intArg(kwargs, "booking_id")
		if err != nil {
			return nil, err
		}
		return CancelBookingOp{BookingID: bookingID}, nil
	case "check_policy":
		policyType, err := stringArg(kwargs, "policy_type")
		if err != nil {
			return nil, err
		}
		return CheckPolicyOp{PolicyType: policyType}, nil
	default:
		return nil, &UnknownToolError{Name: name}
	}
}

func parseRetailOp(name string, kwargs map[string]any) (Op, error) {
	switch name {
	case "search_products":
		return SearchProductsOp{
			Category: optStringArg(kwargs, "category"),
			Name:     optStringArg(kwargs, "name"),
		}, nil
	case "place_order":
		customerID, err := intArg(kwargs, "customer_id")
		if err != nil {
			return nil, err
		}
		productIDs, err := intSliceArg(kwargs, "product_ids")
		if err != nil {
			return nil, err
		}
		quantities, err := intSliceArg(kwargs, "quantities")
		if err != nil {
			return nil, err
		}
		return PlaceOrderOp{CustomerID: customerID, ProductIDs: productIDs, Quantities: quantities}, nil
	case "return_item":
		orderID, err := intArg(kwargs, "order_id")
		if err != nil {
			return nil, err
		}
		itemID, err := intArg(kwargs, "item_id")
		if err != nil {
			return nil, err
		}
		return ReturnItemOp{OrderID: orderID, ItemID: itemID, Reason: optStringArg(kwargs, "reason")}, nil
	case "check_inventory":
		productID, err := intArg(kwargs, "product_id")
		if err != nil {
			return nil, err
		}
		return CheckInventoryOp{ProductID: productID}, nil
	default:
		return nil, &UnknownToolError{Name: name}
	}
}

func stringArg(kwargs map[string]any, key string) (string, error) {
	v, ok := kwargs[key]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string", key)
	}
	return s, nil
}

func optStringArg(kwargs map[string]any, key string) string {
	s, _ := kwargs[key].(string)
	return s
}

// intArg accepts the numeric shapes JSON decoding can produce.
func intArg(kwargs map[string]any, key string) (int64, error) {
	v, ok := kwargs[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument: %s", key)
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("argument %s must be an integer", key)
	}
	return n, nil
}

func intSliceArg(kwargs map[string]any, key string) ([]int64, error) {
	v, ok := kwargs[key]
	if !ok {
		return nil, fmt.Errorf("missing required argument: %s", key)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %s must be an array of integers", key)
	}
	result := make([]int64, len(items))
	for i, item := range items {
		n, ok := asInt(item)
		if !ok {
			return nil, fmt.Errorf("argument %s must be an array of integers", key)
		}
		result[i] = n
	}
	return result, nil
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
