// Package protocol defines the transport capability every Reef transport
// implements, along with the request/response data model and the error
// taxonomy shared by all of them. Concrete bindings live under
// adapters/ (HTTP today, a streaming websocket placeholder).
package protocol

import "context"

// State describes a transport's connection lifecycle.
type State int

const (
	// StateDisconnected means no connection is established.
	StateDisconnected State = iota

	// StateConnecting means a connection attempt is in flight.
	StateConnecting

	// StateConnected means the transport is ready to send.
	StateConnected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Event identifies a transport lifecycle event a listener can subscribe to.
type Event string

const (
	EventConnected    Event = "connected"
	EventDisconnected Event = "disconnected"
	EventReconnected  Event = "reconnected"
	EventTokenExpired Event = "tokenExpired"
)

// Protocol is the capability contract every transport implements. Send is
// the only operation with real semantics at this layer: one Request in, one
// Response or error out. It must be safe to call concurrently; concurrent
// calls are independent and unordered.
//
// The remaining operations are lifecycle hooks for transports that hold a
// persistent connection or an offline queue. A transport that cannot
// support one returns an *Error wrapping ErrNotSupported rather than
// silently succeeding, so callers relying on queuing semantics never get a
// false sense of durability.
type Protocol interface {
	// Send executes one request/response round trip. Transport-level
	// failures (network, malformed reply, unroutable request) come back
	// as an error; a backend-reported failure comes back as data inside
	// a valid Response and is the caller's to inspect.
	Send(ctx context.Context, req *Request, opts QueryOptions) (*Response, error)

	// Connect establishes the persistent connection, where one exists.
	Connect(ctx context.Context) error

	// Close tears down the persistent connection, where one exists.
	Close() error

	// State reports the connection lifecycle state.
	State() State

	// StartQueuing begins buffering requests while offline.
	StartQueuing() error

	// StopQueuing stops buffering requests.
	StopQueuing() error

	// ClearQueue drops any buffered requests.
	ClearQueue() error

	// RequestHistory returns the requests sent on this transport, for
	// transports that record one.
	RequestHistory() ([]*Request, error)

	// Once registers a one-shot listener for a lifecycle event.
	Once(event Event, handler func(payload any)) error

	// ListenerCount reports the number of listeners for an event.
	ListenerCount(event Event) (int, error)
}
