package reef

import (
	"context"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// RealtimeController will expose live subscriptions once a streaming
// transport implements them. Request/response transports cannot deliver
// server-pushed notifications, so every operation reports ErrNotSupported
// until then.
type RealtimeController struct {
	client *Client
}

// Subscribe registers interest in documents matching the given filters.
func (rc *RealtimeController) Subscribe(ctx context.Context, index, collection string, filters map[string]any) error {
	return &protocol.Error{
		Op:  "realtime.Subscribe",
		Err: protocol.ErrNotSupported,
		Msg: "subscriptions require a streaming transport",
	}
}
