package reef

import (
	"context"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// ServerController exposes server information and statistics.
type ServerController struct {
	client *Client
}

// epochMillisPattern matches a millisecond Epoch timestamp: exactly 13
// decimal digits.
var epochMillisPattern = regexp.MustCompile(`^[0-9]{13}$`)

// AdminExists checks that an administrator account exists.
func (sc *ServerController) AdminExists(ctx context.Context) (bool, error) {
	req := protocol.NewRequest("server", "adminExists")
	res, err := sc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return false, err
	}
	if res.Error != nil {
		return false, res.Error
	}

	var out struct {
		Exists bool `mapstructure:"exists"`
	}
	if err := decodeResult("server.AdminExists", res.Result, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// GetAllStats returns every stored statistics snapshot.
func (sc *ServerController) GetAllStats(ctx context.Context) (map[string]any, error) {
	return sc.objectCall(ctx, "getAllStats", "server.GetAllStats", nil)
}

// GetConfig returns the current server configuration. Restrict this to
// administrators: the payload can contain sensitive backend details.
func (sc *ServerController) GetConfig(ctx context.Context) (map[string]any, error) {
	return sc.objectCall(ctx, "getConfig", "server.GetConfig", nil)
}

// GetLastStats returns the most recent statistics snapshot.
func (sc *ServerController) GetLastStats(ctx context.Context) (map[string]any, error) {
	return sc.objectCall(ctx, "getLastStats", "server.GetLastStats", nil)
}

// GetStats returns the statistics snapshots within the given time range.
// Both bounds are millisecond Epoch timestamps and must be exactly 13
// digits; anything else is rejected before a wire call is made.
func (sc *ServerController) GetStats(ctx context.Context, from, to int64) (map[string]any, error) {
	for name, ts := range map[string]int64{"from": from, "to": to} {
		if err := validation.Validate(
			fmt.Sprintf("%d", ts),
			validation.Match(epochMillisPattern).Error("must be a millisecond Epoch timestamp (13 digits)"),
		); err != nil {
			return nil, invalidArgument("server.GetStats", fmt.Errorf("%s: %w", name, err))
		}
	}

	query := map[string]any{
		"startTime": from,
		"stopTime":  to,
	}
	return sc.objectCall(ctx, "getStats", "server.GetStats", query)
}

// Info returns the server's description of itself: exposed API routes,
// plugins, attached services.
func (sc *ServerController) Info(ctx context.Context) (map[string]any, error) {
	return sc.objectCall(ctx, "info", "server.Info", nil)
}

// Now returns the current server timestamp in Epoch-millis.
func (sc *ServerController) Now(ctx context.Context) (int64, error) {
	req := protocol.NewRequest("server", "now")
	res, err := sc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return 0, err
	}
	if res.Error != nil {
		return 0, res.Error
	}

	var out struct {
		Now int64 `mapstructure:"now"`
	}
	if err := decodeResult("server.Now", res.Result, &out); err != nil {
		return 0, err
	}
	return out.Now, nil
}

// objectCall runs a server action whose result is a JSON object and returns
// it as a map.
func (sc *ServerController) objectCall(ctx context.Context, action, op string, query map[string]any) (map[string]any, error) {
	req := protocol.NewRequest("server", action)
	for key, value := range query {
		req.AddToQuery(key, value)
	}

	res, err := sc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, res.Error
	}

	obj, ok := res.Result.(map[string]any)
	if !ok {
		return nil, &protocol.Error{
			Op:  op,
			Err: protocol.ErrUnexpectedResult,
			Msg: "expected an object result",
		}
	}
	return obj, nil
}
