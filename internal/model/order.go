package model

import "strings"

// Ticket is one requested seat inside an order submission.  It exists only
// for the duration of the order-creation call.  Film and Session reference
// the catalog; Daytime is informational and passed through after
// normalization.
type Ticket struct {
	Film    string `json:"film"`
	Session string `json:"session"`
	Daytime string `json:"daytime,omitempty"`
	Row     int    `json:"row"`
	Seat    int    `json:"seat"`
	Price   int    `json:"price"`
}

// CreateOrderRequest is the body of POST /order.  Email and Phone are the
// customer's contact details; they are opaque to the reservation core and
// are not persisted by it.
type CreateOrderRequest struct {
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Tickets []Ticket `json:"tickets"`
}

// OrderItem is a confirmed ticket: the original request plus a freshly
// generated identifier.  Immutable once created.
type OrderItem struct {
	ID      string `json:"id"`
	Film    string `json:"film"`
	Session string `json:"session"`
	Daytime string `json:"daytime"`
	Row     int    `json:"row"`
	Seat    int    `json:"seat"`
	Price   int    `json:"price"`
}

// OrderConfirmation is the successful response of order creation.
type OrderConfirmation struct {
	Total int         `json:"total"`
	Items []OrderItem `json:"items"`
}

// NormalizeDaytime trims surrounding whitespace from a ticket's daytime
// value.  An empty or absent value becomes the literal string "null",
// which is what seeded frontends expect for screenings without a time.
func NormalizeDaytime(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "null"
	}
	return v
}
