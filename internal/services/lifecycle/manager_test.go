package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"store", "cache", "monitor", "http_server"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	assert.Equal(t, []string{"http_server", "monitor", "cache", "store"}, m.Components())
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http_server", "monitor", "cache", "store"}, order)
}

func TestManager_ShutdownContinuesAfterFailure(t *testing.T) {
	m := New(time.Second, nil)
	failure := errors.New("close failed")
	storeClosed := false
	m.Register("store", func(context.Context) error {
		storeClosed = true
		return nil
	})
	m.Register("cache", func(context.Context) error { return failure })

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.True(t, storeClosed)
}

func TestManager_ShutdownOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("store", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 1, calls)

	m.Register("late", func(context.Context) error { return nil })
	assert.Empty(t, m.Components())
}

func TestManager_ShutdownTimeout(t *testing.T) {
	m := New(20*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_NilHookIgnored(t *testing.T) {
	m := New(0, nil)
	m.Register("nothing", nil)
	assert.Empty(t, m.Components())
}

func TestManager_NotifyContextFollowsParent(t *testing.T) {
	m := New(time.Second, nil)
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := m.NotifyContext(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled with parent")
	}
}
