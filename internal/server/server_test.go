package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/cxql/internal/server"
	"github.com/leapstack-labs/cxql/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.New(server.Config{Logger: testutil.NewTestLogger(t)}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body)) //nolint:gosec,noctx
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz") //nolint:noctx
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestParse(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid source", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/parse", "let a = 1 + 2")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got server.ParseResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.OK)
		assert.Empty(t, got.Errors)
		assert.Equal(t, "program", got.Tree["type"])

		children := got.Tree["children"].([]any)
		require.Len(t, children, 1)
		assert.Equal(t, "let_statement", children[0].(map[string]any)["type"])
	})

	t.Run("syntax errors still return a tree", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/parse", "let x =\nlet y = 2")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got server.ParseResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.False(t, got.OK)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, 2, got.Errors[0].Line)
		assert.Equal(t, 1, got.Errors[0].Column)
		assert.Equal(t, []string{"expression"}, got.Errors[0].Expected)
		assert.Equal(t, `unexpected "let", expected expression`, got.Errors[0].Message)
		assert.Len(t, got.Tree["children"], 2)
	})

	t.Run("body too large", func(t *testing.T) {
		h := server.New(server.Config{}).Handler()
		req := httptest.NewRequest(http.MethodPost, "/v1/parse", strings.NewReader(strings.Repeat("a", server.MaxBodyBytes+1)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/parse") //nolint:noctx
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestFormat(t *testing.T) {
	srv := newTestServer(t)

	t.Run("formats source", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/format", "let   x=1+2")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "let x = 1 + 2\n", string(body))
	})

	t.Run("indent parameter", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/format?indent=4", "with db { let a = 1\n a }")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "with db {\n    let a = 1\n    a\n}\n", string(body))
	})

	t.Run("bad indent", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/format?indent=zero", "a")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unparseable source", func(t *testing.T) {
		resp := post(t, srv.URL+"/v1/format", "let a = [1, 2")
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var got server.FormatErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.NotEmpty(t, got.Errors)
		assert.Equal(t, "end of input", got.Errors[0].Found)
	})
}

func TestRequestLogging(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	srv := httptest.NewServer(server.New(server.Config{Logger: logger}).Handler())
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/parse", "1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := logs.String()
	assert.Contains(t, out, "path=/v1/parse")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=")
}

func TestServeListenerShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := server.New(server.Config{Logger: testutil.NewTestLogger(t)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
