package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tonesandtones/httpstatus/internal/server"
)

func TestHttpServer_ListenServeShutdown(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.URL.Path)
	})

	srv := server.New(context.Background(), server.HttpConfig{Host: "127.0.0.1", Port: 0}, h, zaptest.NewLogger(t))
	assert.Nil(t, srv.Addr())

	require.NoError(t, srv.Listen(context.Background()))
	require.NotNil(t, srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	res, err := http.Get("http://" + srv.Addr().String() + "/any/path")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, "/any/path", string(body))

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, <-done)
}

func TestHttpServer_ListenFailsOnTakenPort(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	port := taken.Addr().(*net.TCPAddr).Port

	srv := server.New(context.Background(), server.HttpConfig{Host: "127.0.0.1", Port: port}, http.NotFoundHandler(), zaptest.NewLogger(t))

	require.Error(t, srv.Listen(context.Background()))
	require.Error(t, srv.Serve())
}
