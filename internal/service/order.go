package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/film-afisha/backend/internal/model"
	"github.com/film-afisha/backend/internal/repository"
)

// OrderService turns a batch of ticket requests into a confirmed order
// while protecting screening integrity.  It validates, deduplicates and
// groups the requests, pre-checks conflicts against the known taken sets,
// and then commits each group through the store's atomic reservation.
// No in-process locking is involved; correctness under concurrent orders
// rests entirely on the store's conditional write.
type OrderService struct {
	repo repository.FilmRepository
}

// NewOrderService constructs an OrderService over the given storage port.
func NewOrderService(repo repository.FilmRepository) *OrderService {
	if repo == nil {
		panic("nil repository passed to NewOrderService")
	}
	return &OrderService{repo: repo}
}

// groupKey identifies a reservation group: tickets of one order sharing
// the same film and session.
type groupKey struct {
	film    string
	session string
}

// Create runs the full order workflow.  One order may span several
// screenings; each (film, session) group is committed independently, so
// when a later group fails the earlier groups' reservations remain
// committed — there is no automatic rollback.  Retrying a failed order is
// safe: seats reserved by the first attempt simply surface as conflicts.
func (s *OrderService) Create(ctx context.Context, req model.CreateOrderRequest) (*model.OrderConfirmation, error) {
	if len(req.Tickets) == 0 {
		return nil, &ValidationError{Reason: "tickets array is required"}
	}

	// Validate and deduplicate; a repeated (film, session, row, seat) in
	// the same request is dropped silently, first occurrence wins.
	seen := make(map[string]struct{}, len(req.Tickets))
	tickets := make([]model.Ticket, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		if err := validateTicket(t); err != nil {
			return nil, err
		}
		key := t.Film + "|" + t.Session + "|" + model.SeatKey(t.Row, t.Seat)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tickets = append(tickets, t)
	}

	// Group by (film, session) in insertion order of first appearance.
	groups := make(map[groupKey][]model.Ticket)
	order := make([]groupKey, 0, len(tickets))
	for _, t := range tickets {
		k := groupKey{film: t.Film, session: t.Session}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	// Validate every group before any write: resolve the screening,
	// range-check each seat, and pre-check against the current taken set
	// so obviously doomed orders fail without touching the store.
	for _, k := range order {
		_, scr, err := s.repo.GetFilmAndScreening(ctx, k.film, k.session)
		if errors.Is(err, repository.ErrFilmNotFound) {
			return nil, &NotFoundError{Resource: "film", FilmID: k.film}
		}
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return nil, &NotFoundError{Resource: "session", FilmID: k.film, SessionID: k.session}
		}
		if err != nil {
			return nil, fmt.Errorf("resolve screening: %w", err)
		}

		for _, t := range groups[k] {
			if !scr.SeatInBounds(t.Row, t.Seat) {
				return nil, &ValidationError{Reason: fmt.Sprintf(
					"seat out of range (row 1..%d, seat 1..%d): %s",
					scr.Rows, scr.Seats, model.SeatKey(t.Row, t.Seat))}
			}
		}

		taken := scr.TakenSet()
		var conflicts []string
		for _, t := range groups[k] {
			if _, ok := taken[model.SeatKey(t.Row, t.Seat)]; ok {
				conflicts = append(conflicts, model.SeatKey(t.Row, t.Seat))
			}
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Seats: conflicts}
		}
	}

	// Commit each group atomically.  The pre-check above is advisory
	// only: another order may have won a seat in between, in which case
	// the conditional write reports the overlap and the order fails here.
	for _, k := range order {
		seatKeys := make([]string, 0, len(groups[k]))
		for _, t := range groups[k] {
			seatKeys = append(seatKeys, model.SeatKey(t.Row, t.Seat))
		}
		res, err := s.repo.ReserveSeats(ctx, k.film, k.session, seatKeys)
		if err != nil {
			return nil, fmt.Errorf("reserve seats: %w", err)
		}
		if !res.Reserved {
			return nil, &ConflictError{Seats: res.Conflicts}
		}
	}

	// Confirm surviving tickets in original submission order.
	items := make([]model.OrderItem, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, model.OrderItem{
			ID:      uuid.NewString(),
			Film:    t.Film,
			Session: t.Session,
			Daytime: model.NormalizeDaytime(t.Daytime),
			Row:     t.Row,
			Seat:    t.Seat,
			Price:   t.Price,
		})
	}
	return &model.OrderConfirmation{Total: len(items), Items: items}, nil
}

func validateTicket(t model.Ticket) error {
	if t.Film == "" || t.Session == "" {
		return &ValidationError{Reason: "ticket must contain film and session ids"}
	}
	if t.Row < 0 || t.Seat < 0 {
		return &ValidationError{Reason: "row and seat must be non-negative integers"}
	}
	if t.Price < 0 {
		return &ValidationError{Reason: "price must be non-negative"}
	}
	return nil
}
