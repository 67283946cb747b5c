package messaging

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

type CatalogSync struct {
	Refresher Refresher
	Timeout   time.Duration
}

// Handle refreshes the catalog for one CatalogChange message body.
func (s *CatalogSync) Handle(body []byte) error {
	var change CatalogChange
	if err := sonic.Unmarshal(body, &change); err != nil {
		return fmt.Errorf("decode catalog change: %w", err)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log.Printf("Catalog changed (%s, %d products), refreshing", change.File, change.Products)
	return s.Refresher.Refresh(ctx)
}

func ListenForCatalogChanges(conn *amqp.Connection, prefix string, refresher Refresher) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := DefineTopic(ch, prefix, CatalogChanged); err != nil {
		ch.Close()
		return err
	}
	cs := &CatalogSync{Refresher: refresher}
	return ListenToTopic(ch, prefix, CatalogChanged, func(d amqp.Delivery) error {
		return cs.Handle(d.Body)
	})
}

func PublishCatalogChange(conn *amqp.Connection, prefix string, change CatalogChange) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	err = DefineTopic(ch, prefix, CatalogChanged)
	ch.Close()
	if err != nil {
		return err
	}
	return SendChange(conn, prefix, CatalogChanged, change)
}
