package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type schedulePayload struct {
	Name      string `json:"name"`
	StartHour string `json:"startHour"`
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb), mr
}

func TestGetJSONReadThrough(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var calls int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return schedulePayload{Name: "Monday", StartHour: "11:00"}, nil
	}

	var first schedulePayload
	require.NoError(t, store.GetJSON(ctx, "schedule:working_days", time.Minute, &first, loader))
	require.Equal(t, "Monday", first.Name)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// Second read is served from Redis without touching the loader.
	var second schedulePayload
	require.NoError(t, store.GetJSON(ctx, "schedule:working_days", time.Minute, &second, loader))
	require.Equal(t, first, second)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGetJSONRefetchesAfterTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	var calls int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return schedulePayload{Name: "Monday"}, nil
	}

	var out schedulePayload
	require.NoError(t, store.GetJSON(ctx, "k", time.Second, &out, loader))
	mr.FastForward(2 * time.Second)
	require.NoError(t, store.GetJSON(ctx, "k", time.Second, &out, loader))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetJSONRetriesBeforeSurfacingError(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var calls int32
	boom := errors.New("upstream down")
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	var out schedulePayload
	err := store.GetJSON(ctx, "k", time.Minute, &out, loader)
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, defaultMaxRetries, atomic.LoadInt32(&calls))
}

func TestGetJSONRecoversAfterTransientFailure(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var calls int32
	loader := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("transient")
		}
		return schedulePayload{Name: "Tuesday"}, nil
	}

	var out schedulePayload
	require.NoError(t, store.GetJSON(ctx, "k", time.Minute, &out, loader))
	require.Equal(t, "Tuesday", out.Name)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var calls int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return schedulePayload{Name: "Monday"}, nil
	}

	var out schedulePayload
	require.NoError(t, store.GetJSON(ctx, "k", time.Minute, &out, loader))
	require.NoError(t, store.Invalidate(ctx, "k"))
	require.NoError(t, store.GetJSON(ctx, "k", time.Minute, &out, loader))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestConcurrentReadsShareOneLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return schedulePayload{Name: "Monday"}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var out schedulePayload
			if err := store.GetJSON(ctx, "k", time.Minute, &out, loader); err != nil {
				t.Errorf("GetJSON: %v", err)
			}
		}()
	}
	close(start)
	// Give every reader a chance to miss the cache and pile onto the key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent identical reads must share one in-flight fetch")
}

func TestCorruptEntryIsDroppedAndRefetched(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("k", "{not json"))

	var calls int32
	loader := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return schedulePayload{Name: "Monday"}, nil
	}

	var out schedulePayload
	require.NoError(t, store.GetJSON(ctx, "k", time.Minute, &out, loader))
	require.Equal(t, "Monday", out.Name)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
