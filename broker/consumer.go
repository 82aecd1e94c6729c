package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

// Consumer subscribes to a set of subjects and exposes received messages on
// a buffered channel.
type Consumer struct {
	conn        *nats.Conn
	subs        []*nats.Subscription
	messageChan chan *nats.Msg
}

// InitConsumer connects and subscribes to the given subjects. A queue group
// keeps delivery single-shot when several consumers share the group name.
func InitConsumer(natsURL string, subjects []string, queueGroup string) (*Consumer, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("taskflow-consumer-"+queueGroup),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	consumer := &Consumer{
		conn:        nc,
		messageChan: make(chan *nats.Msg, 256),
	}

	for _, subject := range subjects {
		sub, err := nc.QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
			select {
			case consumer.messageChan <- msg:
			default:
				log.Printf("Warning: consumer channel full, discarding message on %s", msg.Subject)
			}
		})
		if err != nil {
			consumer.Close()
			return nil, err
		}
		consumer.subs = append(consumer.subs, sub)
	}

	log.Printf("NATS consumer started, listening on subjects: %v", subjects)
	return consumer, nil
}

// GetMessageChannel returns the channel received messages are delivered on.
func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messageChan
}

func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe from %s: %v", sub.Subject, err)
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
	close(c.messageChan)
}
