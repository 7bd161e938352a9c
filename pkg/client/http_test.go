package client

import (
	"encoding/binary"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"inferd/internal/httpapi"
	"inferd/internal/manager"
	"inferd/pkg/types"
)

// end-to-end over a real HTTP server: REST client → chi mux → façade →
// batcher → worker → callback → JSON response.
func newHTTPFixture(t *testing.T) *HTTPClient {
	t.Helper()
	mgr := manager.New(manager.Config{Version: "test", Logger: zerolog.Nop()})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(func() {
		srv.Close()
		mgr.Shutdown()
	})
	return NewHTTPClient(srv.URL)
}

func TestHTTPEchoScenario(t *testing.T) {
	c := newHTTPFixture(t)

	require.NoError(t, WaitUntilServerReady(c))

	endpoint, err := c.WorkerLoad("echo", nil)
	require.NoError(t, err)
	require.Equal(t, "echo", endpoint)

	ready, err := c.ModelReady("echo")
	require.NoError(t, err)
	require.True(t, ready)

	resp, err := c.ModelInfer("echo", echoRequest("r1", 7))
	require.NoError(t, err)
	require.Len(t, resp.Outputs, 1)
	require.Equal(t, uint32(8), binary.LittleEndian.Uint32(resp.Outputs[0].Data))

	require.NoError(t, c.WorkerUnload("echo"))
	list, err := c.ModelList()
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestHTTPNotFound(t *testing.T) {
	c := newHTTPFixture(t)
	_, err := c.ModelInfer("does_not_exist", echoRequest("r", 1))
	require.True(t, IsBadStatus(err))
	require.Equal(t, 404, BadStatusCode(err))
}

func TestHTTPEmptyInputs(t *testing.T) {
	c := newHTTPFixture(t)
	_, err := c.WorkerLoad("echo", nil)
	require.NoError(t, err)

	_, err = c.ModelInfer("echo", echoRequest("r", 1))
	require.NoError(t, err)

	resp := c.ModelInferAsync("echo", echoRequest("r2", 2)).Get()
	require.Empty(t, resp.Error)

	// a request with no inputs reaches the server and is rejected as an invalid argument
	_, err = c.ModelInfer("echo", echoRequestWithNoInputs())
	require.Error(t, err)
}

func TestHTTPMetadataAndHardware(t *testing.T) {
	c := newHTTPFixture(t)
	_, err := c.WorkerLoad("echo", nil)
	require.NoError(t, err)

	meta, err := c.ModelMetadata("echo")
	require.NoError(t, err)
	require.Equal(t, "echo", meta.Name)
	require.Len(t, meta.Inputs, 1)

	found, err := c.HasHardware("cpu", 1)
	require.NoError(t, err)
	require.True(t, found)

	has, err := ServerHasExtension(c, "grpc")
	require.NoError(t, err)
	require.True(t, has)
}

func TestHTTPConnectionError(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")
	_, err := c.ServerReady()
	require.True(t, IsConnectionError(err))
}

func echoRequestWithNoInputs() *types.InferenceRequest {
	return &types.InferenceRequest{ID: "empty"}
}
