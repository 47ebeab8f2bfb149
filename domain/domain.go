// Package domain declares the evaluation domains: their tool catalogs,
// relational schemas and seed datasets. A domain is a static declaration
// consumed by the orchestrator to build the opening message and by the tool
// executor as its dispatch surface.
package domain

import "fmt"

// Domain identifies one fixed tool-and-schema universe.
type Domain string

const (
	// Airline covers flight search, booking and cancellation.
	Airline Domain = "airline"
	// Retail covers product search, orders and returns.
	Retail Domain = "retail"
)

// RespondToUser is the terminal sentinel tool name: it performs no state
// mutation, always succeeds, and signals the orchestrator that the
// conversation loop should end.
const RespondToUser = "respond_to_user"

// ParamSpec describes one typed tool parameter.
type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    *bool  `json:"required,omitempty"`
}

// ToolSpec declares one tool of a domain catalog: its name, description and
// parameter schema, serialized verbatim into the opening message.
type ToolSpec struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters"`
}

// All returns every supported domain.
func All() []Domain { return []Domain{Airline, Retail} }

// Parse validates a domain name.
func Parse(s string) (Domain, error) {
	switch Domain(s) {
	case Airline:
		return Airline, nil
	case Retail:
		return Retail, nil
	default:
		return "", fmt.Errorf("unknown domain: %s", s)
	}
}

// Catalog returns the ordered tool catalog of the domain.
func (d Domain) Catalog() []ToolSpec {
	switch d {
	case Airline:
		return airlineCatalog
	case Retail:
		return retailCatalog
	default:
		return nil
	}
}

// Schema returns the bootstrap SQL: table definitions plus the fixed seed
// dataset.
func (d Domain) Schema() string {
	switch d {
	case Airline:
		return airlineSchema
	case Retail:
		return retailSchema
	default:
		return ""
	}
}

// Tables returns the table names the domain schema creates.
func (d Domain) Tables() []string {
	switch d {
	case Airline:
		return []string{"users", "flights", "bookings"}
	case Retail:
		return []string{"customers", "products", "orders", "order_items"}
	default:
		return nil
	}
}

func optional() *bool {
	v := false
	return &v
}

var respondToUserSpec = ToolSpec{
	Name:        RespondToUser,
	Description: "Send a response message to the user",
	Parameters: map[string]ParamSpec{
		"message": {Type: "string", Description: "Message to send to the user"},
	},
}
