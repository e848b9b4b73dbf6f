// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore broker outages
// without interrupting the request flow: events fire after the
// database transaction commits and are strictly best effort.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/bus-ticket-reservation/internal/queue"
)

// PublishTicketIssued publishes a TicketIssuedEvent to the
// ticket.issued queue.
func PublishTicketIssued(ctx context.Context, event q.TicketIssuedEvent) error {
    return publish(ctx, q.TicketIssuedQueue, event)
}

// PublishTicketCancelled publishes a TicketCancelledEvent to the
// ticket.cancelled queue.
func PublishTicketCancelled(ctx context.Context, event q.TicketCancelledEvent) error {
    return publish(ctx, q.TicketCancelledQueue, event)
}

// publish opens a short-lived connection, declares the durable queue
// (idempotent) and sends the event as a persistent JSON message on the
// default exchange.
func publish(ctx context.Context, queueName string, event any) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
