package reef

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefbase/reef-go/pkg/protocol"
)

func TestServerController_AdminExists(t *testing.T) {
	fake := &fakeProtocol{resp: okResult(map[string]any{"exists": true})}
	client := New(fake)

	exists, err := client.Server().AdminExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "server", fake.lastReq.Controller())
	assert.Equal(t, "adminExists", fake.lastReq.Action())
}

func TestServerController_ObjectCalls(t *testing.T) {
	payload := map[string]any{"completedRequests": map[string]any{"http": float64(12)}}

	calls := []struct {
		action string
		run    func(*ServerController) (map[string]any, error)
	}{
		{"getAllStats", func(sc *ServerController) (map[string]any, error) { return sc.GetAllStats(context.Background()) }},
		{"getConfig", func(sc *ServerController) (map[string]any, error) { return sc.GetConfig(context.Background()) }},
		{"getLastStats", func(sc *ServerController) (map[string]any, error) { return sc.GetLastStats(context.Background()) }},
		{"info", func(sc *ServerController) (map[string]any, error) { return sc.Info(context.Background()) }},
	}

	for _, call := range calls {
		t.Run(call.action, func(t *testing.T) {
			fake := &fakeProtocol{resp: okResult(payload)}
			client := New(fake)

			got, err := call.run(client.Server())
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, call.action, fake.lastReq.Action())
		})
	}
}

func TestServerController_GetStats(t *testing.T) {
	fake := &fakeProtocol{resp: okResult(map[string]any{"hits": float64(3)})}
	client := New(fake)

	stats, err := client.Server().GetStats(context.Background(), 1550439618398, 1550444792010)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hits": float64(3)}, stats)

	query := fake.lastReq.Query()
	assert.Equal(t, int64(1550439618398), query["startTime"])
	assert.Equal(t, int64(1550444792010), query["stopTime"])
}

func TestServerController_GetStatsRejectsBadTimestamps(t *testing.T) {
	fake := &fakeProtocol{}
	client := New(fake)
	ctx := context.Background()

	tests := []struct {
		name     string
		from, to int64
	}{
		{"from too short", 1550439618, 1550444792010},
		{"to too short", 1550439618398, 1550444792},
		{"from negative", -1550439618398, 1550444792010},
		{"from seconds precision", 1550439618, 1550444792},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Server().GetStats(ctx, tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrInvalidArgument)
		})
	}
	assert.Zero(t, fake.calls, "validation failures must not reach the transport")
}

func TestServerController_GetStatsBackendError(t *testing.T) {
	fake := &fakeProtocol{resp: backendError(403, "insufficient rights")}
	client := New(fake)

	_, err := client.Server().GetStats(context.Background(), 1550439618398, 1550444792010)
	require.Error(t, err)

	var backendErr *protocol.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "insufficient rights", backendErr.Message)
}

func TestServerController_Now(t *testing.T) {
	// JSON numbers decode as float64; the controller converts back.
	fake := &fakeProtocol{resp: okResult(map[string]any{"now": float64(1550439618398)})}
	client := New(fake)

	now, err := client.Server().Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1550439618398), now)
	assert.Equal(t, "now", fake.lastReq.Action())
}

func TestServerController_UnexpectedResultShape(t *testing.T) {
	fake := &fakeProtocol{resp: okResult([]any{"not", "an", "object"})}
	client := New(fake)

	_, err := client.Server().Info(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrUnexpectedResult)
}
