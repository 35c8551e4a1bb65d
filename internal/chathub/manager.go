// Package chathub runs the realtime fan-out hub. A single goroutine owns
// all connection and subscription state; WebSocket clients and the Redis
// pub/sub bridge talk to it over channels only.
package chathub

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

// InboundFrame pairs a decoded client frame with the connection it arrived
// on.
type InboundFrame struct {
	Client Client
	Frame  models.ClientFrame
}

// ManagerService is the hub. Register/unregister, inbound frames and
// Redis-bridged events all funnel into Run's select loop, so the Clients
// and topic maps are never touched concurrently.
type ManagerService struct {
	Clients map[Client]struct{}

	RegisterCh   chan Client
	UnregisterCh chan Client
	InboundCh    chan InboundFrame

	Storage storage.Storage

	// topics maps topic name to the local clients subscribed to it.
	topics   map[string]map[Client]struct{}
	pubSubCh chan models.Event
}

func NewManagerService(s storage.Storage) *ManagerService {
	return &ManagerService{
		Clients:      make(map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		InboundCh:    make(chan InboundFrame),
		Storage:      s,
		topics:       make(map[string]map[Client]struct{}),
		pubSubCh:     make(chan models.Event),
	}
}

// Run is the hub's main loop. Start it once, in its own goroutine.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client] = struct{}{}
			// Every connection is implicitly subscribed to its own
			// private queue.
			m.subscribe(client, client.GetPrincipal())
			zap.S().Infow("client connected", "principal", client.GetPrincipal())

		case client := <-m.UnregisterCh:
			m.dropClient(client)

		case in := <-m.InboundCh:
			m.handleFrame(in.Client, in.Frame)

		case event := <-m.pubSubCh:
			m.fanOut(event)
		}
	}
}

// DeliverEvent injects an event as if it had arrived over the Redis bridge.
func (m *ManagerService) DeliverEvent(event models.Event) {
	m.pubSubCh <- event
}

func (m *ManagerService) handleFrame(client Client, frame models.ClientFrame) {
	// Frames may still be queued for a connection the hub has already
	// dropped; letting one back into the topic maps would make fanOut send
	// on a closed channel.
	if _, ok := m.Clients[client]; !ok {
		return
	}
	switch frame.Action {
	case models.ActionSubscribe:
		if !m.mayJoin(client, frame.Topic) {
			zap.S().Warnw("subscription refused",
				"principal", client.GetPrincipal(), "topic", frame.Topic)
			return
		}
		m.subscribe(client, frame.Topic)

	case models.ActionUnsubscribe:
		m.unsubscribe(client, frame.Topic)

	case models.ActionTyping:
		if !m.isConversationParty(client, frame.ConversationID) {
			return
		}
		err := m.Storage.PublishEvent(models.Event{
			Topic: models.ConversationTypingTopic(frame.ConversationID),
			Type:  models.EventTypeTyping,
			Payload: map[string]any{
				"conversationId": frame.ConversationID,
				"principal":      client.GetPrincipal(),
				"isTyping":       frame.IsTyping,
			},
		})
		if err != nil {
			zap.S().Warnw("typing broadcast failed", "conversation", frame.ConversationID, "err", err)
		}

	case models.ActionRead:
		if !m.isConversationParty(client, frame.ConversationID) {
			return
		}
		kind, _ := parsePrincipal(client.GetPrincipal())
		// A user reading clears staff-authored messages and vice versa.
		fromStaff := kind == models.SenderTypeUser
		if err := m.Storage.MarkMessagesRead(frame.ConversationID, fromStaff); err != nil {
			zap.S().Warnw("mark read failed", "conversation", frame.ConversationID, "err", err)
			return
		}
		err := m.Storage.PublishEvent(models.Event{
			Topic: models.ConversationReadTopic(frame.ConversationID),
			Type:  models.EventTypeReadReceipt,
			Payload: map[string]any{
				"conversationId": frame.ConversationID,
				"principal":      client.GetPrincipal(),
			},
		})
		if err != nil {
			zap.S().Warnw("read receipt broadcast failed", "conversation", frame.ConversationID, "err", err)
		}

	default:
		zap.S().Debugw("ignoring unknown frame action", "action", frame.Action)
	}
}

// mayJoin decides whether the client may subscribe to a topic. Private
// queues are reachable only by their owner; conversation topics only by
// their two parties.
func (m *ManagerService) mayJoin(client Client, topic string) bool {
	if topic == "" {
		return false
	}
	if strings.HasPrefix(topic, "user/") || strings.HasPrefix(topic, "staff/") {
		return topic == client.GetPrincipal()
	}
	if convID, ok := conversationIDFromTopic(topic); ok {
		return m.isConversationParty(client, convID)
	}
	return false
}

func (m *ManagerService) isConversationParty(client Client, conversationID uint) bool {
	if conversationID == 0 {
		return false
	}
	conv, err := m.Storage.GetConversationByID(conversationID)
	if err != nil || conv == nil {
		return false
	}
	kind, id := parsePrincipal(client.GetPrincipal())
	if kind == models.SenderTypeStaff {
		return conv.StaffID == id
	}
	return conv.UserID == id
}

func (m *ManagerService) subscribe(client Client, topic string) {
	set, ok := m.topics[topic]
	if !ok {
		set = make(map[Client]struct{})
		m.topics[topic] = set
	}
	set[client] = struct{}{}
}

func (m *ManagerService) unsubscribe(client Client, topic string) {
	if set, ok := m.topics[topic]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(m.topics, topic)
		}
	}
}

func (m *ManagerService) dropClient(client Client) {
	if _, ok := m.Clients[client]; !ok {
		return
	}
	delete(m.Clients, client)
	for topic := range m.topics {
		m.unsubscribe(client, topic)
	}
	client.Close()
	zap.S().Infow("client disconnected", "principal", client.GetPrincipal())
}

// fanOut delivers an event to every local subscriber of its topic. A client
// whose send buffer is full is dropped rather than allowed to stall the
// hub.
func (m *ManagerService) fanOut(event models.Event) {
	for client := range m.topics[event.Topic] {
		select {
		case client.GetSendChannel() <- event:
		default:
			m.dropClient(client)
		}
	}
}

// parsePrincipal splits "user/5" into (USER, 5) and "staff/2" into
// (STAFF, 2).
func parsePrincipal(principal string) (string, uint) {
	kind, raw, ok := strings.Cut(principal, "/")
	if !ok {
		return "", 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", 0
	}
	if kind == "staff" {
		return models.SenderTypeStaff, uint(id)
	}
	return models.SenderTypeUser, uint(id)
}

func conversationIDFromTopic(topic string) (uint, bool) {
	rest, found := strings.CutPrefix(topic, "conversation/")
	if !found {
		return 0, false
	}
	// Accept the base topic and its typing/read sub-topics.
	idPart, _, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
