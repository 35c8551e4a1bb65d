package chathub

import (
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/models"
)

// eventSubscriber is satisfied by the real storage service. Test doubles
// that do not implement it simply run the hub without a Redis bridge.
type eventSubscriber interface {
	SubscribeEvents() *redis.PubSub
}

// StartPubSubListener starts the goroutine that bridges Redis pub/sub into
// the hub's event channel. Every instance of the server subscribes to every
// topic channel and fans out only to its own local sockets.
func (m *ManagerService) StartPubSubListener() {
	sub, ok := m.Storage.(eventSubscriber)
	if !ok {
		return
	}

	go func() {
		pubsub := sub.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				zap.S().Warnw("dropping malformed realtime event", "channel", msg.Channel, "err", err)
				continue
			}
			m.pubSubCh <- event
		}
	}()
}
