package whiteagent

import (
	"context"
	"strings"
	"sync"
)

// Scripted is a deterministic agent under test. It detects the active
// scenario from the user goal in the opening message and replays a fixed
// tool-call sequence for it: success scripts follow the intended workflow,
// failure scripts deliberately violate a business rule. It implements the
// transport.Transport contract so evaluations can run fully in-process.
type Scripted struct {
	mu       sync.Mutex
	scenario string
	turn     int
}

// NewScripted constructs a scripted agent with no active scenario.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Reset clears conversation state between evaluations.
func (s *Scripted) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenario = ""
	s.turn = 0
}

// Send implements transport.Transport.
func (s *Scripted) Send(_ context.Context, message string) (string, error) {
	return s.Respond(message), nil
}

// Respond processes one evaluator message and returns the next action as a
// bare JSON object.
func (s *Scripted) Respond(message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turn++
	if id := detectScenario(message); id != "" {
		s.scenario = id
	}
	if strings.Contains(message, "Here's a list of tools") {
		s.turn = 1
	}

	script, ok := scripts[s.scenario]
	if !ok {
		return respond("I'm not sure how to help with that.").encode()
	}
	return script(s.turn).encode()
}

// detectScenario keys off distinctive fragments of the user goals. More
// specific fragments are checked first so overlapping wording cannot
// shadow them.
func detectScenario(message string) string {
	switch {
	case strings.Contains(message, "Book flight 999"), strings.Contains(message, "Mars"):
		return "airline_failure_2"
	case strings.Contains(message, "cancellation policy"):
		return "airline_success_2"
	case strings.Contains(message, "Cancel my flight"):
		return "airline_failure_1"
	case strings.Contains(message, "Los Angeles"):
		return "airline_success_1"
	case strings.Contains(message, "NYC"):
		return "airline_success_3"
	case strings.Contains(message, "100 laptops"):
		return "retail_failure_2"
	case strings.Contains(message, "return this laptop"):
		return "retail_failure_1"
	case strings.Contains(message, "buy a laptop"):
		return "retail_success_1"
	case strings.Contains(message, "loyalty"):
		return "retail_success_2"
	case strings.Contains(message, "all electronics"):
		return "retail_success_3"
	default:
		return ""
	}
}

var scripts = map[string]func(turn int) action{
	"airline_success_1": func(turn int) action {
		switch turn {
		case 1:
			return call("search_flights", map[string]any{"destination": "LAX", "date": "2025-11-01"})
		case 2:
			return call("book_flight", map[string]any{"flight_id": 101, "user_id": 1})
		default:
			return respond("Your flight has been booked successfully!")
		}
	},
	"airline_failure_1": func(turn int) action {
		if turn == 1 {
			return call("cancel_booking", map[string]any{"booking_id": 1})
		}
		return respond("I tried to cancel but it's not allowed.")
	},
	"airline_success_2": func(turn int) action {
		switch turn {
		case 1:
			return call("check_policy", map[string]any{"policy_type": "cancellation"})
		case 2:
			return call("search_flights", map[string]any{"destination": "LAX", "date": "2025-11-02"})
		case 3:
			return call("book_flight", map[string]any{"flight_id": 102, "user_id": 2})
		default:
			return respond("Flight booked with policy checked!")
		}
	},
	"airline_failure_2": func(turn int) action {
		if turn == 1 {
			return call("book_flight", map[string]any{"flight_id": 999, "user_id": 1})
		}
		return respond("I tried to book but the flight doesn't exist.")
	},
	"airline_success_3": func(turn int) action {
		switch turn {
		case 1:
			return call("search_flights", map[string]any{"destination": "NYC", "date": "2025-11-01"})
		case 2:
			return call("book_flight", map[string]any{"flight_id": 103, "user_id": 3})
		default:
			return respond("Found and booked your NYC flight!")
		}
	},
	"retail_success_1": func(turn int) action {
		switch turn {
		case 1:
			return call("search_products", map[string]any{"name": "Laptop"})
		case 2:
			return call("place_order", map[string]any{"customer_id": 1, "product_ids": []any{201}, "quantities": []any{1}})
		default:
			return respond("Your laptop order is placed!")
		}
	},
	"retail_failure_1": func(turn int) action {
		if turn == 1 {
			return call("return_item", map[string]any{"order_id": 1, "item_id": 1, "reason": "no longer needed"})
		}
		return respond("I tried to return it but the window expired.")
	},
	"retail_success_2": func(turn int) action {
		switch turn {
		case 1:
			return call("check_policy", map[string]any{"policy_type": "loyalty_discount"})
		case 2:
			return call("search_products", map[string]any{"name": "Smartphone"})
		case 3:
			return call("place_order", map[string]any{"customer_id": 1, "product_ids": []any{202}, "quantities": []any{1}})
		default:
			return respond("Smartphone ordered with your discount!")
		}
	},
	"retail_failure_2": func(turn int) action {
		if turn == 1 {
			return call("place_order", map[string]any{"customer_id": 1, "product_ids": []any{201}, "quantities": []any{100}})
		}
		return respond("I couldn't order that many laptops.")
	},
	"retail_success_3": func(turn int) action {
		switch turn {
		case 1:
			return call("search_products", map[string]any{"category": "Electronics"})
		case 2:
			return call("place_order", map[string]any{"customer_id": 2, "product_ids": []any{203}, "quantities": []any{1}})
		default:
			return respond("Headphones are on the way!")
		}
	},
}
