package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/film-afisha/backend/internal/logger"
)

// StartOrderConsumer connects to RabbitMQ, declares the order.confirmed
// queue (durable), and consumes it forever, appending each event to
// logs/orders.log in a single-line format.  It runs a reconnect loop with
// exponential backoff; processing errors are logged and the offending
// message rejected so the server keeps operating.
func StartOrderConsumer(lg logger.Logger) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			lg.Warn("order-consumer: failed to dial broker, retrying", err.Error(), backoff.String())
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, lg); err != nil {
			lg.Warn("order-consumer: consume loop ended, reconnecting", err.Error())
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, lg logger.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		lg.Warn("order-consumer: set QoS failed", err.Error())
	}

	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(orderQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			lg.Error("order-consumer: handle message failed", err.Error())
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev OrderConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "orders.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	seats := make([]string, 0, len(ev.Tickets))
	for _, t := range ev.Tickets {
		seats = append(seats, fmt.Sprintf("%s/%s %d:%d", t.Film, t.Session, t.Row, t.Seat))
	}

	line := fmt.Sprintf("[%s] Order confirmed | email=%s | total=%d | amount=%d | seats=[%s]\n",
		ev.ConfirmedAt, ev.Email, ev.Total, ev.AmountTotal, strings.Join(seats, ","))

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
