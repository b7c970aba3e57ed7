package probe_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tonesandtones/httpstatus/handler"
	"github.com/tonesandtones/httpstatus/internal/probe"
	"github.com/tonesandtones/httpstatus/internal/status"
)

func newStatusServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := handler.NewStatusHandler(handler.StatusHandlerParams{
		Dispatcher: status.New(status.DefaultConfig),
		Log:        zaptest.NewLogger(t),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv
}

func newProber(t *testing.T, url string) *probe.Prober {
	t.Helper()

	p, err := probe.New(url, zaptest.NewLogger(t))
	require.NoError(t, err)

	return p
}

func TestProber_FullRange(t *testing.T) {
	srv := newStatusServer(t)

	report, err := newProber(t, srv.URL).Run(context.Background(), probe.DefaultOptions)
	require.NoError(t, err)

	assert.True(t, report.OK(), "%v", report.Failures)
	// root, out of range and 200..999
	assert.Equal(t, 802, report.Checked)
}

func TestProber_BaseURLWithPath(t *testing.T) {
	srv := newStatusServer(t)

	// every request lands on a path the status handler rejects
	report, err := newProber(t, srv.URL+"/prefix/").Run(context.Background(), probe.Options{
		From:        404,
		To:          404,
		Concurrency: 1,
	})
	require.NoError(t, err)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, "/", report.Failures[0].Path)
	assert.Equal(t, http.StatusNotFound, report.Failures[0].GotStatus)
	assert.Equal(t, "/404", report.Failures[1].Path)
	assert.Equal(t, "Not found", report.Failures[1].GotBody)
}

func TestProber_ReportsMismatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/503" {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "wrong body")
			return
		}
		if r.URL.Path == "/502" {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "502")
			return
		}

		h := handler.NewStatusHandler(handler.StatusHandlerParams{
			Dispatcher: status.New(status.DefaultConfig),
			Log:        zaptest.NewLogger(t),
		})
		h.ServeHTTP(w, r)
	}))
	defer srv.Close()

	report, err := newProber(t, srv.URL).Run(context.Background(), probe.Options{
		From:        500,
		To:          504,
		Concurrency: 4,
	})
	require.NoError(t, err)

	require.False(t, report.OK())
	require.Len(t, report.Failures, 2)

	assert.Equal(t, "/502", report.Failures[0].Path)
	assert.Equal(t, http.StatusOK, report.Failures[0].GotStatus)

	assert.Equal(t, "/503", report.Failures[1].Path)
	assert.Equal(t, "wrong body", report.Failures[1].GotBody)
	assert.Contains(t, report.Failures[1].String(), `want 503 "503"`)
}

func TestProber_NoBodyCodes(t *testing.T) {
	srv := newStatusServer(t)

	for _, code := range []int{204, 304} {
		report, err := newProber(t, srv.URL).Run(context.Background(), probe.Options{
			From:        code,
			To:          code,
			Concurrency: 1,
		})
		require.NoError(t, err)
		assert.True(t, report.OK(), "%v", report.Failures)
	}

	assert.True(t, probe.NoBody(100))
	assert.True(t, probe.NoBody(204))
	assert.True(t, probe.NoBody(304))
	assert.False(t, probe.NoBody(205))
	assert.False(t, probe.NoBody(200))
}

func TestProber_ConnectionError(t *testing.T) {
	srv := newStatusServer(t)
	url := srv.URL
	srv.Close()

	report, err := newProber(t, url).Run(context.Background(), probe.Options{
		From: 200,
		To:   200,
	})
	require.NoError(t, err)

	require.Len(t, report.Failures, 3)
	for _, failure := range report.Failures {
		assert.Error(t, failure.Err)
	}
}

func TestProber_Canceled(t *testing.T) {
	srv := newStatusServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProber(t, srv.URL).Run(ctx, probe.DefaultOptions)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProber_InvalidRange(t *testing.T) {
	p := newProber(t, "http://localhost:8080")

	for _, opts := range []probe.Options{
		{From: 99, To: 200},
		{From: 200, To: 1000},
		{From: 500, To: 400},
	} {
		_, err := p.Run(context.Background(), opts)
		assert.ErrorIs(t, err, probe.ErrInvalidRange)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, url := range []string{"localhost:8080", "ftp://localhost", "http://", "://"} {
		_, err := probe.New(url, zaptest.NewLogger(t))
		assert.ErrorIs(t, err, probe.ErrInvalidURL, url)
	}
}

func TestChecks(t *testing.T) {
	checks := probe.Checks(200, 201)

	assert.Equal(t, []probe.Check{
		{Path: "/", WantStatus: 200, WantBody: "Hello World!"},
		{Path: "/1000", WantStatus: 404, WantBody: "Not found"},
		{Path: "/200", WantStatus: 200, WantBody: "200"},
		{Path: "/201", WantStatus: 201, WantBody: "201"},
	}, checks)
}
