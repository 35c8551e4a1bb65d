package models

// Realtime event types delivered over WebSocket.
const (
	EventTypeNotification = "NOTIFICATION"
	EventTypeMessage      = "MESSAGE"
	EventTypeTyping       = "TYPING"
	EventTypeReadReceipt  = "READ_RECEIPT"
)

// Client frame actions accepted on the WebSocket.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionTyping      = "typing"
	ActionRead        = "read"
)

// Event is a single realtime broadcast. It is published to Redis on the
// channel named after its topic and fanned out to every local socket
// subscribed to that topic. Delivery is best-effort: no retries, no
// ordering guarantee across topics.
type Event struct {
	Topic     string `json:"topic"`
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// ClientFrame is a message received from a connected WebSocket client.
type ClientFrame struct {
	Action         string `json:"action"`
	Topic          string `json:"topic,omitempty"`
	ConversationID uint   `json:"conversationId,omitempty"`
	IsTyping       bool   `json:"isTyping,omitempty"`
}

// NotificationPush is the payload pushed to a principal's private queue
// whenever a notification row is created for them.
type NotificationPush struct {
	NotificationID uint   `json:"notificationId"`
	Message        string `json:"message"`
	Type           string `json:"type"`        // REPORT, CLAIM, MESSAGE, SYSTEM
	RelatedID      uint   `json:"relatedId"`   // report/claim/conversation id
	RelatedType    string `json:"relatedType"` // "lost", "found", "conversation", ...
	CreatedAt      string `json:"createdAt"`
	IsRead         bool   `json:"isRead"`
}
