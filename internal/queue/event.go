// Package queue defines the order events exchanged over the message broker
// and the background consumer that records them.
package queue

// EventTicket is one confirmed seat inside an OrderConfirmedEvent.
type EventTicket struct {
	Film    string `json:"film"`
	Session string `json:"session"`
	Daytime string `json:"daytime"`
	Row     int    `json:"row"`
	Seat    int    `json:"seat"`
	Price   int    `json:"price"`
}

// OrderConfirmedEvent is published after an order's reservations have all
// committed.  It carries enough information for downstream consumers to
// log or notify without querying the primary store.  Publishing is
// best-effort: a lost event never invalidates the reservation itself.
type OrderConfirmedEvent struct {
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Total       int           `json:"total"`
	AmountTotal int           `json:"amount_total"` // sum of ticket prices, minor units
	Tickets     []EventTicket `json:"tickets"`
	ConfirmedAt string        `json:"confirmed_at"`
}
