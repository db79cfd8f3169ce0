package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer journals every event of a queue into <LogDir>/events.log,
// one human-readable line per event.
type Consumer struct {
	URL    string
	Queue  string
	LogDir string
}

// NewConsumer returns a consumer; empty queue and dir select
// DefaultQueue and "logs".
func NewConsumer(url, queue, logDir string) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	if logDir == "" {
		logDir = "logs"
	}
	return &Consumer{URL: url, Queue: queue, LogDir: logDir}
}

// Run connects to the broker and consumes forever, reconnecting with a
// capped exponential backoff.  Bad messages are logged and rejected
// without requeue so the consumer keeps going.
func (c *Consumer) Run() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Printf("events-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(conn); err != nil {
			log.Printf("events-consumer: consume loop ended: %v; reconnecting", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("events-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.Handle(d.Body); err != nil {
			log.Printf("events-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// Handle decodes one message body and appends its journal line.
func (c *Consumer) Handle(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, "events.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as a single journal line.
func FormatLine(ev Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | id=%s | screen_id=%d", ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.ID, ev.ScreenID)
	if ev.MovieID != nil {
		fmt.Fprintf(&b, " | movie_id=%d", *ev.MovieID)
	}
	if ev.TicketID != 0 {
		fmt.Fprintf(&b, " | ticket_id=%d | seat=%d", ev.TicketID, ev.SeatNumber)
	}
	if ev.CustomerID != nil {
		fmt.Fprintf(&b, " | customer_id=%d", *ev.CustomerID)
	}
	if len(ev.Seats) > 0 {
		fmt.Fprintf(&b, " | seats=%d", len(ev.Seats))
	}
	if ev.Price != "" {
		fmt.Fprintf(&b, " | price=%s GBP", ev.Price)
	}
	if ev.Label != "" {
		fmt.Fprintf(&b, " | %s", ev.Label)
	}
	b.WriteString("\n")
	return b.String()
}
