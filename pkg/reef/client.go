// Package reef is the client entry point of the Reef SDK. A Client owns one
// transport and the session token, and exposes one sub-client per API
// controller family. Controllers build requests, the transport moves them;
// the Client itself adds nothing but the token.
package reef

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// Client is the Reef SDK client.
//
// The stored JWT is a plain field: the SDK provides no synchronization
// around it, so applications sharing one Client across goroutines while
// re-authenticating must serialize access themselves.
type Client struct {
	proto  protocol.Protocol
	logger hclog.Logger
	jwt    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client on top of the given transport.
func New(proto protocol.Protocol, opts ...Option) *Client {
	c := &Client{
		proto:  proto,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("reef")
	return c
}

// Query executes the request on the active transport and returns whatever
// it produced, unmodified. The stored session token is attached when the
// caller did not set one; no retry, queuing or timeout happens here.
func (c *Client) Query(ctx context.Context, req *protocol.Request, opts protocol.QueryOptions) (*protocol.Response, error) {
	if opts.Token == "" {
		opts.Token = c.jwt
	}
	return c.proto.Send(ctx, req, opts)
}

// JWT returns the stored session token.
func (c *Client) JWT() string {
	return c.jwt
}

// SetJWT stores the session token attached to subsequent calls.
func (c *Client) SetJWT(jwt string) {
	c.jwt = jwt
}

// Protocol returns the active transport.
func (c *Client) Protocol() protocol.Protocol {
	return c.proto
}

// Auth returns the authentication controller.
func (c *Client) Auth() *AuthController {
	return &AuthController{client: c}
}

// Bulk returns the bulk import controller.
func (c *Client) Bulk() *BulkController {
	return &BulkController{client: c}
}

// Collection returns the collection controller.
func (c *Client) Collection() *CollectionController {
	return &CollectionController{client: c}
}

// Document returns the document controller.
func (c *Client) Document() *DocumentController {
	return &DocumentController{client: c}
}

// Index returns the index controller.
func (c *Client) Index() *IndexController {
	return &IndexController{client: c}
}

// Realtime returns the realtime controller.
func (c *Client) Realtime() *RealtimeController {
	return &RealtimeController{client: c}
}

// Server returns the server information controller.
func (c *Client) Server() *ServerController {
	return &ServerController{client: c}
}

// decodeResult maps an untyped result payload onto a controller's typed
// view. Shape mismatches are the controller's own local error, never the
// transport's.
func decodeResult(op string, result, out any) error {
	if err := mapstructure.Decode(result, out); err != nil {
		return &protocol.Error{
			Op:  op,
			Err: protocol.ErrUnexpectedResult,
			Msg: err.Error(),
		}
	}
	return nil
}

// invalidArgument wraps an argument validation failure.
func invalidArgument(op string, err error) error {
	return &protocol.Error{
		Op:  op,
		Err: protocol.ErrInvalidArgument,
		Msg: err.Error(),
	}
}
