package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadheryan/car-traders/model"
	"github.com/rabbitmq/amqp091-go"
)

const (
	TradeEventsExchange = "trade_events_exchange"
	publishTimeout      = 5 * time.Second
)

// Publisher emits listing lifecycle events. A nil *Publisher is valid and
// drops every event, which is how the app runs with RabbitMQ disabled.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		TradeEventsExchange, // name
		"topic",             // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// PublishTradeEvent routes the event by its type, e.g. "trade.created".
func (p *Publisher) PublishTradeEvent(ctx context.Context, msg model.TradeEvent) error {
	if p == nil || p.channel == nil {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		TradeEventsExchange, // exchange
		string(msg.Event),   // routing key
		false,               // mandatory
		false,               // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
