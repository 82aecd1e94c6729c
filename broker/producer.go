package broker

import (
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

var (
	producerConn *nats.Conn
	producerMu   sync.RWMutex
)

// InitProducer connects the shared publishing connection. The caller decides
// whether a failed connection is fatal; the rest of the package degrades to
// logging when no connection is available.
func InitProducer(natsURL string) error {
	nc, err := nats.Connect(natsURL,
		nats.Name("taskflow-producer"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}

	producerMu.Lock()
	producerConn = nc
	producerMu.Unlock()

	log.Println("NATS producer initialized")
	return nil
}

// PublishMessage publishes a payload on the given subject. Broadcast is
// fire-and-forget: failures are logged, never returned to the mutation path.
func PublishMessage(subject string, data []byte) {
	producerMu.RLock()
	nc := producerConn
	producerMu.RUnlock()

	if nc == nil {
		log.Println("NATS producer is not initialized, dropping message")
		return
	}

	if err := nc.Publish(subject, data); err != nil {
		log.Printf("Failed to publish message to %s: %v", subject, err)
	}
}

func CloseProducer() {
	producerMu.Lock()
	defer producerMu.Unlock()

	if producerConn != nil {
		producerConn.Close()
		producerConn = nil
	}
}
