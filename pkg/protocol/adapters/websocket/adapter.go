// Package websocket is the streaming binding of the Reef protocol. Only the
// connection lifecycle is implemented; the streaming wire protocol, offline
// queue and event delivery are placeholders that report ErrNotSupported
// until they exist.
package websocket

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// Config configures the websocket transport.
type Config struct {
	// Options supplies host, port and SSL. Defaults to
	// protocol.DefaultOptions().
	Options *protocol.Options

	// Dialer overrides the underlying dialer.
	Dialer *websocket.Dialer

	// Logger defaults to a no-op logger.
	Logger hclog.Logger
}

// Adapter implements protocol.Protocol over a websocket connection.
type Adapter struct {
	dialer *websocket.Dialer
	url    string
	logger hclog.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	state protocol.State
}

var _ protocol.Protocol = (*Adapter)(nil)

// New creates the websocket transport. No connection is made until Connect.
func New(cfg *Config) (*Adapter, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	opts := cfg.Options
	if opts == nil {
		opts = protocol.DefaultOptions()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	scheme := "ws"
	if opts.SSL {
		scheme = "wss"
	}

	return &Adapter{
		dialer: dialer,
		url:    fmt.Sprintf("%s://%s:%d/", scheme, opts.Host, opts.Port),
		logger: logger.Named("websocket"),
		state:  protocol.StateDisconnected,
	}, nil
}

// Connect dials the server and keeps the connection until Close.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == protocol.StateConnected {
		return nil
	}

	a.state = protocol.StateConnecting
	conn, _, err := a.dialer.DialContext(ctx, a.url, nil)
	if err != nil {
		a.state = protocol.StateDisconnected
		return fmt.Errorf("failed to connect to %s: %w", a.url, err)
	}

	a.conn = conn
	a.state = protocol.StateConnected
	a.logger.Debug("connected", "url", a.url)
	return nil
}

// Close tears down the connection.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil
	a.state = protocol.StateDisconnected
	return err
}

// State reports the connection lifecycle state.
func (a *Adapter) State() protocol.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Send is not implemented yet: the streaming wire protocol has no encoding
// here. Callers needing request/response semantics use the HTTP transport.
func (a *Adapter) Send(ctx context.Context, req *protocol.Request, opts protocol.QueryOptions) (*protocol.Response, error) {
	a.mu.Lock()
	connected := a.state == protocol.StateConnected
	a.mu.Unlock()

	if !connected {
		return nil, &protocol.Error{
			Op:  "websocket.Send",
			Err: protocol.ErrNotConnected,
		}
	}
	return nil, a.unsupported("websocket.Send")
}

// StartQueuing is a placeholder pending the offline queue.
func (a *Adapter) StartQueuing() error {
	return a.unsupported("websocket.StartQueuing")
}

// StopQueuing is a placeholder pending the offline queue.
func (a *Adapter) StopQueuing() error {
	return a.unsupported("websocket.StopQueuing")
}

// ClearQueue is a placeholder pending the offline queue.
func (a *Adapter) ClearQueue() error {
	return a.unsupported("websocket.ClearQueue")
}

// RequestHistory is a placeholder pending the offline queue.
func (a *Adapter) RequestHistory() ([]*protocol.Request, error) {
	return nil, a.unsupported("websocket.RequestHistory")
}

// Once is a placeholder pending event delivery.
func (a *Adapter) Once(event protocol.Event, handler func(payload any)) error {
	return a.unsupported("websocket.Once")
}

// ListenerCount is a placeholder pending event delivery.
func (a *Adapter) ListenerCount(event protocol.Event) (int, error) {
	return 0, a.unsupported("websocket.ListenerCount")
}

func (a *Adapter) unsupported(op string) error {
	return &protocol.Error{
		Op:  op,
		Err: protocol.ErrNotSupported,
		Msg: "streaming protocol not implemented",
	}
}
