package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/matst80/slask-market/pkg/common"
	"github.com/matst80/slask-market/pkg/messaging"
	"github.com/matst80/slask-market/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingPrefix = "global"

// RabbitTracking publishes events to global_tracking. Events are queued
// and sent in the background so request handlers never wait on the broker.
type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, trackingPrefix, messaging.TrackingEvents); err != nil {
		conn.Close()
		return nil, err
	}
	t := newRabbitTracking(country, func(event any) error {
		return messaging.SendChange(conn, trackingPrefix, messaging.TrackingEvents, event)
	})
	t.connection = conn
	return t, nil
}

func newRabbitTracking(country string, send func(any) error) *RabbitTracking {
	return &RabbitTracking{
		country: country,
		queue: common.NewQueueHandler(func(events []any) {
			for _, e := range events {
				if err := send(e); err != nil {
					log.Printf("Error sending tracking event: %v", err)
				}
			}
		}, 64, time.Second),
	}
}

func (t *RabbitTracking) base(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{SessionId: sessionId, Country: t.country, Context: "b2c", Event: event}
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.queue.Add(newSessionEvent(t.base(sessionId, EventSession), r))
}

func (t *RabbitTracking) TrackSearch(sessionId string, filters types.FilterState, resultCount int, r *http.Request) {
	t.queue.Add(newSearchEvent(t.base(sessionId, EventSearch), filters, resultCount, r))
}

// Close flushes queued events before closing the connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	if t.connection == nil {
		return nil
	}
	return t.connection.Close()
}
