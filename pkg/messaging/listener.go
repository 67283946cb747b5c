package messaging

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeclareBindAndConsume binds an exclusive server named queue to the topic
// so every listener gets its own copy of each message.
func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ListenToTopic handles deliveries in a goroutine until the channel closes.
// A failing handler nacks the message without requeueing it.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				if err := d.Nack(false, false); err != nil {
					log.Printf("Failed to nack message: %v", err)
				}
				continue
			}
			if err := d.Ack(false); err != nil {
				log.Printf("Failed to ack message: %v", err)
			}
		}
		log.Printf("Stopped listening to %s", getName(prefix, topic))
	}()
	return nil
}
