package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"clickup_sync/internal/domain"
)

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// RunMessage is published once per successful sync run.
type RunMessage struct {
	Source    string         `json:"source"`
	StartedAt time.Time      `json:"started_at"`
	Duration  string         `json:"duration"`
	Spaces    int            `json:"spaces"`
	Boards    int            `json:"boards"`
	Sprints   int            `json:"sprints"`
	Issues    int            `json:"issues"`
	Tables    []TableMessage `json:"tables"`
	Timestamp time.Time      `json:"timestamp"`
}

type TableMessage struct {
	Table    string   `json:"table"`
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Skipped  []string `json:"skipped,omitempty"`
}

func newRunMessage(stats *domain.SyncStats) RunMessage {
	msg := RunMessage{
		Source:    "clickup",
		StartedAt: stats.StartedAt,
		Duration:  stats.Duration.String(),
		Spaces:    stats.Spaces,
		Boards:    stats.Boards,
		Sprints:   stats.Sprints,
		Issues:    stats.Issues,
		Tables:    make([]TableMessage, 0, len(stats.Results)),
		Timestamp: time.Now().UTC(),
	}
	for _, res := range stats.Results {
		t := TableMessage{
			Table:    res.Table,
			Inserted: res.Inserted,
			Failed:   len(res.Failures),
		}
		for _, f := range res.Failures {
			t.Skipped = append(t.Skipped, f.Key)
		}
		msg.Tables = append(msg.Tables, t)
	}
	return msg
}

// PublishRun publishes the report of a finished run.
func (r *RabbitMQ) PublishRun(ctx context.Context, stats *domain.SyncStats) error {
	body, err := json.Marshal(newRunMessage(stats))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published run report",
		"boards", stats.Boards,
		"sprints", stats.Sprints,
		"issues", stats.Issues,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
