package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefbase/reef-go/pkg/protocol"
)

func newTestAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	adapter, err := New(&Config{BaseURL: baseURL})
	require.NoError(t, err)
	return adapter
}

func TestNew_Defaults(t *testing.T) {
	adapter, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7512", adapter.baseURL)
	assert.NotEmpty(t, adapter.Routes())
}

func TestNew_SSLBaseURL(t *testing.T) {
	opts := protocol.NewOptions("reef.internal", 443)
	opts.SSL = true

	adapter, err := New(&Config{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, "https://reef.internal:443", adapter.baseURL)
}

func TestNew_RoutesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	content := `{"index": {"create": {"url": "/:index/_create", "verb": "POST"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	adapter, err := New(&Config{RoutesPath: path})
	require.NoError(t, err)
	assert.Len(t, adapter.Routes(), 1)
}

func TestNew_CorruptRoutesFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	content := `{"index": {"create": {"url": "/:index/_create", "verb": "MAKE"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := New(&Config{RoutesPath: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrInvalidVerb)
}

func TestAdapter_SendIndexCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/coral_index/_create", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"requestId": "da9040aa-9529-4fb9-b627-a38736321364",
			"status": 200,
			"error": null,
			"controller": "index",
			"action": "create",
			"collection": null,
			"index": "coral_index",
			"volatile": null,
			"result": {"acknowledged": true, "shards_acknowledged": true}
		}`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	req := protocol.NewRequest("index", "create").SetIndex("coral_index")

	res, err := adapter.Send(context.Background(), req, protocol.NewQueryOptions())
	require.NoError(t, err)
	assert.Equal(t, 200, res.Status)
	assert.Nil(t, res.Error)

	result, ok := res.Result.(map[string]any)
	require.True(t, ok, "result should be an object")
	assert.Equal(t, true, result["acknowledged"])
}

func TestAdapter_SendBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{
			"requestId": "c6fd04c1-45d0-48ef-9eed-ef95c4a97422",
			"status": 400,
			"error": {
				"message": "index [coral_index] already exists",
				"status": 400,
				"stack": "BadRequestError: index [coral_index] already exists\n"
			},
			"controller": "index",
			"action": "create",
			"collection": null,
			"index": "coral_index",
			"volatile": null,
			"result": null
		}`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	req := protocol.NewRequest("index", "create").SetIndex("coral_index")

	// A backend failure is handed back as data inside a valid Response,
	// never as a transport error.
	res, err := adapter.Send(context.Background(), req, protocol.NewQueryOptions())
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	require.NotNil(t, res.Error.Status)
	assert.Equal(t, 400, *res.Error.Status)
}

func TestAdapter_SendAttachesBodyAndQuery(t *testing.T) {
	var (
		gotBody  map[string]any
		gotQuery map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}

		io.WriteString(w, `{"requestId": "r", "status": 200, "error": null, "result": null}`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	req := protocol.NewRequest("index", "mDelete").
		AddToBody("indexes", []string{"a", "b"}).
		AddToQuery("startTime", int64(1550444792010)).
		AddToQuery("pretty", true)

	_, err := adapter.Send(context.Background(), req, protocol.NewQueryOptions())
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, gotBody["indexes"])
	assert.Equal(t, "1550444792010", gotQuery["startTime"])
	assert.Equal(t, "true", gotQuery["pretty"])
}

func TestAdapter_SendAttachesToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"requestId": "r", "status": 200, "error": null, "result": null}`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	opts := protocol.NewQueryOptions()
	opts.Token = "session-token"

	_, err := adapter.Send(context.Background(), protocol.NewRequest("server", "now"), opts)
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestAdapter_SendOmitsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		assert.Empty(t, r.Header.Get("Content-Type"))
		io.WriteString(w, `{"requestId": "r", "status": 200, "error": null, "result": null}`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	_, err := adapter.Send(context.Background(), protocol.NewRequest("server", "now"), protocol.NewQueryOptions())
	require.NoError(t, err)
}

func TestAdapter_SendMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<!doctype html><p>gateway error</p>`)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	_, err := adapter.Send(context.Background(), protocol.NewRequest("server", "now"), protocol.NewQueryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrMalformedReply)
	assert.NotErrorIs(t, err, protocol.ErrRouteNotFound)
}

func TestAdapter_SendUnknownRouteMakesNoCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL)
	_, err := adapter.Send(context.Background(), protocol.NewRequest("submarine", "dive"), protocol.NewQueryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrRouteNotFound)
	assert.Zero(t, calls)
}

func TestAdapter_SendNetworkErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening any more

	adapter := newTestAdapter(t, srv.URL)
	_, err := adapter.Send(context.Background(), protocol.NewRequest("server", "now"), protocol.NewQueryOptions())

	require.Error(t, err)
	assert.NotErrorIs(t, err, protocol.ErrRouteNotFound)
	assert.NotErrorIs(t, err, protocol.ErrMalformedReply)
}

func TestAdapter_Lifecycle(t *testing.T) {
	adapter := newTestAdapter(t, "http://localhost:7512")

	assert.NoError(t, adapter.Connect(context.Background()))
	assert.NoError(t, adapter.Close())
	assert.Equal(t, protocol.StateConnected, adapter.State())
}

func TestAdapter_UnsupportedOperations(t *testing.T) {
	adapter := newTestAdapter(t, "http://localhost:7512")

	tests := []struct {
		name string
		call func() error
	}{
		{"StartQueuing", adapter.StartQueuing},
		{"StopQueuing", adapter.StopQueuing},
		{"ClearQueue", adapter.ClearQueue},
		{"RequestHistory", func() error {
			_, err := adapter.RequestHistory()
			return err
		}},
		{"Once", func() error {
			return adapter.Once(protocol.EventConnected, func(any) {})
		}},
		{"ListenerCount", func() error {
			_, err := adapter.ListenerCount(protocol.EventConnected)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, protocol.ErrNotSupported))
		})
	}
}
