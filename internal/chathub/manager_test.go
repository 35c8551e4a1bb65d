package chathub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Harukino1/ReturnHub/internal/chathub"
	"github.com/Harukino1/ReturnHub/internal/models"
)

// fakeClient is an in-memory Client for exercising the hub without
// sockets.
type fakeClient struct {
	principal string
	send      chan models.Event
	closed    chan struct{}
}

func newFakeClient(principal string, buffer int) *fakeClient {
	return &fakeClient{
		principal: principal,
		send:      make(chan models.Event, buffer),
		closed:    make(chan struct{}),
	}
}

func (c *fakeClient) GetPrincipal() string                { return c.principal }
func (c *fakeClient) GetSendChannel() chan<- models.Event { return c.send }
func (c *fakeClient) Run()                                {}
func (c *fakeClient) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
		close(c.send)
	}
}

func (c *fakeClient) receive(t *testing.T) models.Event {
	t.Helper()
	select {
	case ev := <-c.send:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return models.Event{}
	}
}

func (c *fakeClient) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case ev := <-c.send:
		t.Fatalf("unexpected event on topic %s", ev.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func startHub(store *MockStorage) *chathub.ManagerService {
	hub := chathub.NewManagerService(store)
	go hub.Run()
	return hub
}

func TestPrivateQueueDeliveredOnRegister(t *testing.T) {
	store := new(MockStorage)
	hub := startHub(store)

	client := newFakeClient("user/5", 4)
	hub.RegisterCh <- client

	hub.DeliverEvent(models.Event{Topic: "user/5", Type: models.EventTypeNotification})

	ev := client.receive(t)
	assert.Equal(t, "user/5", ev.Topic)
}

func TestConversationSubscription(t *testing.T) {
	store := new(MockStorage)
	store.On("GetConversationByID", uint(9)).
		Return(&models.Conversation{ID: 9, UserID: 5, StaffID: 2}, nil)
	hub := startHub(store)

	client := newFakeClient("user/5", 4)
	hub.RegisterCh <- client
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionSubscribe, Topic: "conversation/9"},
	}

	hub.DeliverEvent(models.Event{Topic: "conversation/9", Type: models.EventTypeMessage})

	ev := client.receive(t)
	assert.Equal(t, "conversation/9", ev.Topic)
}

func TestSubscriptionRefusedForOutsider(t *testing.T) {
	store := new(MockStorage)
	store.On("GetConversationByID", uint(9)).
		Return(&models.Conversation{ID: 9, UserID: 5, StaffID: 2}, nil)
	hub := startHub(store)

	outsider := newFakeClient("user/6", 4)
	hub.RegisterCh <- outsider
	hub.InboundCh <- chathub.InboundFrame{
		Client: outsider,
		Frame:  models.ClientFrame{Action: models.ActionSubscribe, Topic: "conversation/9"},
	}

	hub.DeliverEvent(models.Event{Topic: "conversation/9", Type: models.EventTypeMessage})

	outsider.expectNothing(t)
}

func TestForeignPrivateQueueRefused(t *testing.T) {
	store := new(MockStorage)
	hub := startHub(store)

	snoop := newFakeClient("user/6", 4)
	hub.RegisterCh <- snoop
	hub.InboundCh <- chathub.InboundFrame{
		Client: snoop,
		Frame:  models.ClientFrame{Action: models.ActionSubscribe, Topic: "user/5"},
	}

	hub.DeliverEvent(models.Event{Topic: "user/5", Type: models.EventTypeNotification})

	snoop.expectNothing(t)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := new(MockStorage)
	store.On("GetConversationByID", uint(9)).
		Return(&models.Conversation{ID: 9, UserID: 5, StaffID: 2}, nil)
	hub := startHub(store)

	client := newFakeClient("user/5", 4)
	hub.RegisterCh <- client
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionSubscribe, Topic: "conversation/9"},
	}
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionUnsubscribe, Topic: "conversation/9"},
	}

	hub.DeliverEvent(models.Event{Topic: "conversation/9", Type: models.EventTypeMessage})

	client.expectNothing(t)
}

func TestSlowClientDropped(t *testing.T) {
	store := new(MockStorage)
	hub := startHub(store)

	// Zero buffer: the first delivery cannot be accepted.
	client := newFakeClient("user/5", 0)
	hub.RegisterCh <- client

	hub.DeliverEvent(models.Event{Topic: "user/5", Type: models.EventTypeNotification})

	select {
	case <-client.closed:
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}
}

func TestQueuedFrameFromDroppedClientIgnored(t *testing.T) {
	store := new(MockStorage)
	hub := startHub(store)

	// Zero buffer: the first delivery drops the client and closes its
	// send channel.
	client := newFakeClient("user/5", 0)
	hub.RegisterCh <- client
	hub.DeliverEvent(models.Event{Topic: "user/5", Type: models.EventTypeNotification})
	select {
	case <-client.closed:
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}

	// A subscribe frame already queued when the drop happened must not
	// put the closed connection back into a topic.
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionSubscribe, Topic: "user/5"},
	}
	hub.DeliverEvent(models.Event{Topic: "user/5", Type: models.EventTypeNotification})

	// The hub survives and keeps serving other connections.
	other := newFakeClient("user/6", 4)
	hub.RegisterCh <- other
	hub.DeliverEvent(models.Event{Topic: "user/6", Type: models.EventTypeNotification})
	ev := other.receive(t)
	assert.Equal(t, "user/6", ev.Topic)
}

func TestTypingFrameBroadcasts(t *testing.T) {
	store := new(MockStorage)
	store.On("GetConversationByID", uint(9)).
		Return(&models.Conversation{ID: 9, UserID: 5, StaffID: 2}, nil)
	published := make(chan models.Event, 1)
	store.On("PublishEvent", mock.AnythingOfType("models.Event")).
		Run(func(args mock.Arguments) {
			published <- args.Get(0).(models.Event)
		}).Return(nil)
	hub := startHub(store)

	client := newFakeClient("user/5", 4)
	hub.RegisterCh <- client
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionTyping, ConversationID: 9, IsTyping: true},
	}

	select {
	case ev := <-published:
		assert.Equal(t, "conversation/9/typing", ev.Topic)
		assert.Equal(t, models.EventTypeTyping, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("typing event was not published")
	}
}

func TestReadFrameMarksAndBroadcasts(t *testing.T) {
	store := new(MockStorage)
	store.On("GetConversationByID", uint(9)).
		Return(&models.Conversation{ID: 9, UserID: 5, StaffID: 2}, nil)
	marked := make(chan bool, 1)
	store.On("MarkMessagesRead", uint(9), true).
		Run(func(mock.Arguments) { marked <- true }).Return(nil)
	store.On("PublishEvent", mock.AnythingOfType("models.Event")).Return(nil)
	hub := startHub(store)

	client := newFakeClient("user/5", 4)
	hub.RegisterCh <- client
	hub.InboundCh <- chathub.InboundFrame{
		Client: client,
		Frame:  models.ClientFrame{Action: models.ActionRead, ConversationID: 9},
	}

	select {
	case <-marked:
	case <-time.After(time.Second):
		t.Fatal("messages were not marked read")
	}
}
