package netutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func okResponse() *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil))}
}

func TestShouldRetry(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"cancelled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"refused", &net.OpError{Op: "read", Err: syscall.ECONNREFUSED}, true},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("no route")}, true},
		{"eof", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), true},
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"dns not found", &net.DNSError{IsNotFound: true}, false},
		{"plain", errors.New("bad request"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ShouldRetry(tc.err))
		})
	}
}

func TestRetryTransportReplaysBody(t *testing.T) {
	var bodies []string
	calls := 0
	rt := &RetryTransport{
		MaxRetries: 2,
		Backoff:    time.Millisecond,
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			data, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(data))
			if calls < 3 {
				return nil, syscall.ECONNRESET
			}
			return okResponse(), nil
		}),
	}

	req, err := http.NewRequest(http.MethodPost, "http://backend/tg/settings", bytes.NewBufferString(`{"a":1}`))
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{`{"a":1}`, `{"a":1}`, `{"a":1}`}, bodies)
}

func TestRetryTransportStopsOnPermanentError(t *testing.T) {
	calls := 0
	boom := errors.New("tls: bad certificate")
	rt := &RetryTransport{
		MaxRetries: 3,
		Backoff:    time.Millisecond,
		Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, boom
		}),
	}
	req, err := http.NewRequest(http.MethodGet, "http://backend/tg/vacancy/list", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestNewHTTPClientWithoutRetries(t *testing.T) {
	c := NewHTTPClient(ClientOptions{Timeout: time.Second})
	require.Equal(t, time.Second, c.Timeout)
	_, isRetry := c.Transport.(*RetryTransport)
	require.False(t, isRetry)

	c = NewHTTPClient(ClientOptions{Retries: 2})
	rt, isRetry := c.Transport.(*RetryTransport)
	require.True(t, isRetry)
	require.Equal(t, 2, rt.MaxRetries)
}
