package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/film-afisha/backend/internal/logger"
	"github.com/film-afisha/backend/internal/model"
	"github.com/film-afisha/backend/internal/queue"
	"github.com/film-afisha/backend/internal/service"
)

// OrderHandler exposes order creation.  All reservation rules live in the
// order service; the handler binds the request, maps fault types onto
// HTTP statuses and fires the confirmation event.
type OrderHandler struct {
	Orders *service.OrderService
	Log    logger.Logger

	// Publish pushes the confirmation event after a successful order.
	// Nil disables publishing (tests).  Failures are logged, never
	// surfaced: the seats are committed by then.
	Publish func(ctx context.Context, lg logger.Logger, ev queue.OrderConfirmedEvent) error
}

// NewOrderHandler constructs an OrderHandler with event publishing wired
// to the RabbitMQ publisher.
func NewOrderHandler(orders *service.OrderService, lg logger.Logger) *OrderHandler {
	if orders == nil || lg == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Log: lg, Publish: queue.PublishOrderConfirmed}
}

// Create handles POST /api/afisha/order.  On success it answers 201 with
// the confirmed items; validation faults map to 400, missing catalog
// records to 404, seat conflicts to 409 with the conflicting keys, and
// anything else to 500.
func (h *OrderHandler) Create(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	conf, err := h.Orders.Create(c.Request().Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
		}
		var nfErr *service.NotFoundError
		if errors.As(err, &nfErr) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": nfErr.Error()})
		}
		var cErr *service.ConflictError
		if errors.As(err, &cErr) {
			return c.JSON(http.StatusConflict, echo.Map{"error": cErr.Error(), "conflicts": cErr.Seats})
		}
		h.Log.Error("create order failed", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if h.Publish != nil {
		ev := confirmationEvent(req, conf)
		// Detached from the request: the reservation is already durable.
		go func() { _ = h.Publish(context.Background(), h.Log, ev) }()
	}
	return c.JSON(http.StatusCreated, conf)
}

func confirmationEvent(req model.CreateOrderRequest, conf *model.OrderConfirmation) queue.OrderConfirmedEvent {
	tickets := make([]queue.EventTicket, 0, len(conf.Items))
	amount := 0
	for _, it := range conf.Items {
		amount += it.Price
		tickets = append(tickets, queue.EventTicket{
			Film:    it.Film,
			Session: it.Session,
			Daytime: it.Daytime,
			Row:     it.Row,
			Seat:    it.Seat,
			Price:   it.Price,
		})
	}
	return queue.OrderConfirmedEvent{
		Email:       req.Email,
		Phone:       req.Phone,
		Total:       conf.Total,
		AmountTotal: amount,
		Tickets:     tickets,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
