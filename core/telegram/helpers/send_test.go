package helpers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/recruitbot/core/telegram/sender"
)

func TestSendToWithoutDispatcherRunsInline(t *testing.T) {
	counters := &Counters{}
	ran := false
	err := SendTo(WithCounters(context.Background(), counters), 7, "send.text", "sendMessage", true, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	n, keyboard := counters.Snapshot()
	require.Equal(t, 1, n)
	require.True(t, keyboard)
}

func TestSendToFullQueueKeepsChatOrder(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1, QueueSize: 1})
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
	}
	release := make(chan struct{})
	started := make(chan struct{})
	counters := &Counters{}
	ctx := WithCounters(context.Background(), counters)

	require.NoError(t, SendTo(ctx, 7, "first", "sendMessage", false, func() error {
		close(started)
		<-release
		record("first")
		return nil
	}))
	<-started
	require.NoError(t, SendTo(ctx, 7, "second", "sendMessage", true, func() error {
		record("second")
		return nil
	}))
	err := SendTo(ctx, 7, "third", "sendMessage", false, func() error {
		record("third")
		return nil
	})
	require.ErrorIs(t, err, sender.ErrQueueFull)

	close(release)
	d.Close()

	require.Equal(t, []string{"first", "second"}, order)
	n, keyboard := counters.Snapshot()
	require.Equal(t, 2, n)
	require.True(t, keyboard)

	require.ErrorIs(t, SendTo(ctx, 7, "late", "sendMessage", false, func() error {
		record("late")
		return nil
	}), sender.ErrQueueClosed)
	require.Len(t, order, 2)
}
