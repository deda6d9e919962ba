package filter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitFor polls until cond holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, "condition never became true")
}

func TestIndexDebouncesKeystrokes(t *testing.T) {
	var calls int32
	search := func(ctx context.Context, query string) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1}, nil
	}

	ix := NewIndex(search, 30*time.Millisecond)
	ix.SetQuery("f")
	ix.SetQuery("fo")
	ix.SetQuery("foo")

	waitFor(t, func() bool { return ix.Matches() != nil })
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.True(t, ix.Matches()[1])
}

func TestIndexBlankQueryClearsImmediately(t *testing.T) {
	search := func(ctx context.Context, query string) ([]int, error) {
		return []int{1}, nil
	}

	ix := NewIndex(search, 30*time.Millisecond)
	ix.SetQuery("foo")
	waitFor(t, func() bool { return ix.Matches() != nil })

	ix.SetQuery("   ")
	require.Nil(t, ix.Matches())
}

func TestIndexBlankQueryCancelsPendingLookup(t *testing.T) {
	var calls int32
	search := func(ctx context.Context, query string) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1}, nil
	}

	ix := NewIndex(search, 50*time.Millisecond)
	ix.SetQuery("foo")
	ix.Clear()

	time.Sleep(120 * time.Millisecond)
	require.Zero(t, atomic.LoadInt32(&calls))
	require.Nil(t, ix.Matches())
}

func TestIndexStaleResponseNeverCommits(t *testing.T) {
	release := make(chan struct{})
	search := func(ctx context.Context, query string) ([]int, error) {
		if query == "slow" {
			<-release
			return []int{1}, nil
		}
		return []int{2}, nil
	}

	ix := NewIndex(search, 5*time.Millisecond)
	ix.SetQuery("slow")
	time.Sleep(30 * time.Millisecond) // let the slow lookup start

	ix.SetQuery("fast")
	waitFor(t, func() bool {
		m := ix.Matches()
		return m != nil && m[2]
	})

	close(release) // slow response arrives after fast already committed
	time.Sleep(30 * time.Millisecond)
	require.True(t, ix.Matches()[2])
	require.False(t, ix.Matches()[1])
}

func TestIndexSearchErrorYieldsEmptySet(t *testing.T) {
	search := func(ctx context.Context, query string) ([]int, error) {
		return nil, context.DeadlineExceeded
	}

	ix := NewIndex(search, 5*time.Millisecond)

	var mu sync.Mutex
	updated := false
	ix.OnUpdate = func() {
		mu.Lock()
		updated = true
		mu.Unlock()
	}

	ix.SetQuery("foo")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return updated
	})

	// An empty (non-nil) set filters everything out rather than disabling
	// the filter.
	require.NotNil(t, ix.Matches())
	require.Empty(t, ix.Matches())
}

func TestIndexOnUpdateFiresOnClear(t *testing.T) {
	ix := NewIndex(func(ctx context.Context, query string) ([]int, error) {
		return nil, nil
	}, 5*time.Millisecond)

	var updates int32
	ix.OnUpdate = func() { atomic.AddInt32(&updates, 1) }

	ix.Clear()
	require.Equal(t, int32(1), atomic.LoadInt32(&updates))
}

func TestNewIndexDefaultDebounce(t *testing.T) {
	ix := NewIndex(nil, 0)
	require.Equal(t, DefaultDebounce, ix.debounce)
}
