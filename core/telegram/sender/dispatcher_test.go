package sender

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcherKeepsPerKeyOrder(t *testing.T) {
	d := NewDispatcher(Options{Workers: 3, QueueSize: 64})

	var (
		mu  sync.Mutex
		got = map[int64][]int{}
	)
	for i := 0; i < 20; i++ {
		for _, key := range []int64{7, 8, -100} {
			key, i := key, i
			require.NoError(t, d.Enqueue(context.Background(), key, "send.text", "sendMessage", func() error {
				mu.Lock()
				defer mu.Unlock()
				got[key] = append(got[key], i)
				return nil
			}))
		}
	}
	d.Close()

	for _, key := range []int64{7, 8, -100} {
		require.Len(t, got[key], 20)
		for i, v := range got[key] {
			require.Equal(t, i, v)
		}
	}
	require.EqualValues(t, 60, d.SentCount())
	require.Zero(t, d.ErrorCount())
}

func TestDispatcherRetriesTransientErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})

	calls := 0
	require.NoError(t, d.Enqueue(context.Background(), 1, "send.text", "sendMessage", func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNRESET
		}
		return nil
	}))
	d.Close()

	require.Equal(t, 3, calls)
	require.EqualValues(t, 1, d.SentCount())
}

func TestDispatcherCountsPermanentFailure(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})

	calls := 0
	require.NoError(t, d.Enqueue(context.Background(), 1, "send.text", "sendMessage", func() error {
		calls++
		return errors.New("telegram: chat not found (400)")
	}))
	d.Close()

	require.Equal(t, 1, calls)
	require.EqualValues(t, 1, d.ErrorCount())
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	d.Close()
	d.Close()

	err := d.Enqueue(context.Background(), 1, "send.text", "sendMessage", func() error { return nil })
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	block := func() error {
		close(started)
		<-release
		return nil
	}
	noop := func() error { return nil }

	require.NoError(t, d.Enqueue(context.Background(), 1, "a", "", block))
	<-started
	require.NoError(t, d.Enqueue(context.Background(), 1, "b", "", noop))
	require.ErrorIs(t, d.Enqueue(context.Background(), 1, "c", "", noop), ErrQueueFull)

	close(release)
	d.Close()
}

func TestErrorHelpers(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123:ABC-def/sendMessage": telegram: bad gateway (502)`)
	require.NotContains(t, sanitizeErrorMessage(err), "ABC-def")
	require.Equal(t, 502, httpStatusFromError(err))
	require.Equal(t, "http_5xx", classifyError(err))
	require.Equal(t, "timeout", classifyError(context.DeadlineExceeded))
	require.Empty(t, classifyError(nil))
}
