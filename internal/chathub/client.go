package chathub

import "github.com/Harukino1/ReturnHub/internal/models"

// Client is the interface for any type of realtime connection. It abstracts
// the underlying transport, allowing the hub to manage client types
// uniformly.
type Client interface {
	// GetPrincipal returns the authenticated identity behind the
	// connection, e.g. "user/5" or "staff/2". The principal string doubles
	// as the client's private topic name.
	GetPrincipal() string

	// GetSendChannel returns the channel through which the hub delivers
	// events to this client. It is a send-only channel.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and send channel. Safe to
	// call more than once.
	Close()
}
