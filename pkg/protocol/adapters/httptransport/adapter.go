// Package httptransport is the HTTP binding of the Reef protocol: it
// resolves logical controller/action requests against a static route table,
// performs one blocking round trip per Send, and decodes the reply envelope.
// HTTP is stateless, so every connection and queueing operation of the
// Protocol contract is a no-op or explicitly unsupported.
package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// Config configures the HTTP transport.
type Config struct {
	// Options supplies host, port and SSL. Defaults to
	// protocol.DefaultOptions().
	Options *protocol.Options

	// BaseURL overrides the endpoint derived from Options. Test doubles
	// point this at a stand-in server.
	BaseURL string

	// RoutesPath points at an on-disk routing table. When empty, the
	// table compiled into the SDK is used.
	RoutesPath string

	// HTTPClient overrides the underlying client.
	HTTPClient *http.Client

	// Logger defaults to a no-op logger.
	Logger hclog.Logger
}

// Adapter implements protocol.Protocol over plain HTTP request/response.
type Adapter struct {
	client  *http.Client
	baseURL string
	routes  Routes
	logger  hclog.Logger
}

var _ protocol.Protocol = (*Adapter)(nil)

// New creates the HTTP transport. Loading or validating the routing table
// fails here, at construction, never at call time.
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

	var (
		routes Routes
		err    error
	)
	if cfg.RoutesPath != "" {
		routes, err = LoadRoutes(cfg.RoutesPath)
	} else {
		routes, err = DefaultRoutes()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load route table: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if opts.SSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s:%d", scheme, opts.Host, opts.Port)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Adapter{
		client:  client,
		baseURL: baseURL,
		routes:  routes,
		logger:  logger.Named("http"),
	}, nil
}

// Routes exposes the loaded routing table, read-only.
func (a *Adapter) Routes() Routes {
	return a.routes
}

// Send resolves the request against the route table, executes one blocking
// HTTP round trip, and decodes the reply into a Response. The HTTP status
// line is not interpreted: a backend failure arrives as the error field of
// a well-formed envelope and is handed back as data.
func (a *Adapter) Send(ctx context.Context, req *protocol.Request, opts protocol.QueryOptions) (*protocol.Response, error) {
	path, verb, err := a.routes.Resolve(req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(req.Body()) > 0 {
		data, err := json.Marshal(req.Body())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, verb, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if len(req.Query()) > 0 {
		q := httpReq.URL.Query()
		for key, value := range req.Query() {
			q.Set(key, queryValue(value))
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", requestID)
	if opts.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	a.logger.Debug("sending request",
		"controller", req.Controller(),
		"action", req.Action(),
		"verb", verb,
		"path", httpReq.URL.Path,
		"requestId", requestID,
	)

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}

	var resp protocol.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &protocol.Error{
			Op:  "http.Send",
			Err: protocol.ErrMalformedReply,
			Msg: err.Error(),
		}
	}

	a.logger.Debug("received reply",
		"requestId", resp.RequestID,
		"status", resp.Status,
		"failed", resp.Error != nil,
	)

	return &resp, nil
}

// queryValue renders a query parameter. Numbers keep their plain decimal
// form; anything non-scalar falls back to its JSON encoding.
func queryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// Connect is a no-op: HTTP holds no persistent connection.
func (a *Adapter) Connect(ctx context.Context) error {
	return nil
}

// Close is a no-op: there is nothing to tear down.
func (a *Adapter) Close() error {
	return nil
}

// State always reports connected: a stateless transport is always ready.
func (a *Adapter) State() protocol.State {
	return protocol.StateConnected
}

// StartQueuing is unsupported: HTTP has no offline queue.
func (a *Adapter) StartQueuing() error {
	return a.unsupported("http.StartQueuing")
}

// StopQueuing is unsupported: HTTP has no offline queue.
func (a *Adapter) StopQueuing() error {
	return a.unsupported("http.StopQueuing")
}

// ClearQueue is unsupported: HTTP has no offline queue.
func (a *Adapter) ClearQueue() error {
	return a.unsupported("http.ClearQueue")
}

// RequestHistory is unsupported: the HTTP binding records no history.
func (a *Adapter) RequestHistory() ([]*protocol.Request, error) {
	return nil, a.unsupported("http.RequestHistory")
}

// Once is unsupported: a stateless transport emits no lifecycle events.
func (a *Adapter) Once(event protocol.Event, handler func(payload any)) error {
	return a.unsupported("http.Once")
}

// ListenerCount is unsupported: a stateless transport emits no lifecycle
// events.
func (a *Adapter) ListenerCount(event protocol.Event) (int, error) {
	return 0, a.unsupported("http.ListenerCount")
}

func (a *Adapter) unsupported(op string) error {
	return &protocol.Error{
		Op:  op,
		Err: protocol.ErrNotSupported,
		Msg: "HTTP transport is stateless",
	}
}
