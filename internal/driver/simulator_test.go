package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
)

type call struct {
	orderID string
	st      domain.Status
	loc     domain.LatLng
}

// recordingEngine captures transitions and closes done when a terminal
// status arrives.
type recordingEngine struct {
	mu    sync.Mutex
	calls []call
	fail  bool
	done  chan struct{}
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{done: make(chan struct{})}
}

func (e *recordingEngine) Transition(_ context.Context, orderID string, st domain.Status, loc *domain.LatLng) (*domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return nil, errors.New("store down")
	}
	e.calls = append(e.calls, call{orderID: orderID, st: st, loc: *loc})
	if st == domain.StatusDelivered {
		close(e.done)
	}
	return &domain.Order{ID: orderID, Status: st}, nil
}

func (e *recordingEngine) snapshot() []call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]call(nil), e.calls...)
}

var (
	testOrigin = domain.LatLng{Latitude: -17.7833, Longitude: -63.1821}
	testDest   = domain.LatLng{Latitude: -17.7860, Longitude: -63.1850}
)

func waitDone(t *testing.T, e *recordingEngine) {
	t.Helper()
	select {
	case <-e.done:
	case <-time.After(5 * time.Second):
		t.Fatal("simulation did not finish in time")
	}
}

func TestSimulatorRoute(t *testing.T) {
	e := newRecordingEngine()
	s := NewSimulator(context.Background(), e, Config{
		Origin:   testOrigin,
		Duration: 20 * time.Millisecond,
		Interval: 2 * time.Millisecond,
	})

	s.Launch("ORD-1", testDest)
	waitDone(t, e)

	calls := e.snapshot()
	require.Len(t, calls, 11, "10 EnRoute steps plus Delivered")

	for i, c := range calls[:10] {
		assert.Equal(t, "ORD-1", c.orderID)
		assert.Equal(t, domain.StatusEnRoute, c.st)

		// Each position lies on the segment at fraction (i+1)/steps.
		f := float64(i+1) / 10
		if f < 1 {
			assert.InDelta(t, testOrigin.Latitude+(testDest.Latitude-testOrigin.Latitude)*f, c.loc.Latitude, 1e-12)
			assert.InDelta(t, testOrigin.Longitude+(testDest.Longitude-testOrigin.Longitude)*f, c.loc.Longitude, 1e-12)
		}
	}

	// Monotone progress towards the destination.
	for i := 1; i < 10; i++ {
		assert.Less(t, calls[i].loc.Latitude, calls[i-1].loc.Latitude)
		assert.Less(t, calls[i].loc.Longitude, calls[i-1].loc.Longitude)
	}

	// The final step and the terminal transition land exactly on the
	// destination, no float residue.
	assert.Equal(t, testDest, calls[9].loc)
	assert.Equal(t, domain.StatusDelivered, calls[10].st)
	assert.Equal(t, testDest, calls[10].loc)
}

func TestSimulatorZeroDuration(t *testing.T) {
	e := newRecordingEngine()
	s := NewSimulator(context.Background(), e, Config{
		Origin:   testOrigin,
		Duration: 0,
		Interval: 3 * time.Second,
	})

	s.Launch("ORD-1", testDest)
	waitDone(t, e)

	calls := e.snapshot()
	require.Len(t, calls, 2, "one jump plus Delivered")
	assert.Equal(t, domain.StatusEnRoute, calls[0].st)
	assert.Equal(t, testDest, calls[0].loc)
	assert.Equal(t, domain.StatusDelivered, calls[1].st)
	assert.Equal(t, testDest, calls[1].loc)
}

func TestSimulatorNegativeDuration(t *testing.T) {
	e := newRecordingEngine()
	s := NewSimulator(context.Background(), e, Config{
		Origin:   testOrigin,
		Duration: -5 * time.Second,
		Interval: 3 * time.Second,
	})

	s.Launch("ORD-1", testDest)
	waitDone(t, e)
	require.Len(t, e.snapshot(), 2)
}

func TestSimulatorStepCount(t *testing.T) {
	mk := func(dur, iv time.Duration) *Simulator {
		return NewSimulator(context.Background(), nil, Config{Duration: dur, Interval: iv})
	}
	assert.Equal(t, 20, mk(60*time.Second, 3*time.Second).steps())
	assert.Equal(t, 2, mk(7*time.Second, 3*time.Second).steps())
	assert.Equal(t, 1, mk(1*time.Second, 3*time.Second).steps())
	assert.Equal(t, 1, mk(0, 3*time.Second).steps())
	assert.Equal(t, 1, mk(-1*time.Second, 3*time.Second).steps())
	assert.Equal(t, 1, mk(60*time.Second, 0).steps())
}

func TestSimulatorStopsOnTransitionError(t *testing.T) {
	e := newRecordingEngine()
	e.fail = true
	s := NewSimulator(context.Background(), e, Config{
		Origin:   testOrigin,
		Duration: 4 * time.Millisecond,
		Interval: 2 * time.Millisecond,
	})

	s.Launch("ORD-1", testDest)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, e.snapshot(), "a failing step terminates the task")
}

func TestSimulatorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newRecordingEngine()
	s := NewSimulator(ctx, e, Config{
		Origin:   testOrigin,
		Duration: time.Hour,
		Interval: time.Hour,
	})

	s.Launch("ORD-1", testDest)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, e.snapshot())
}

func TestInterpolateEndpoints(t *testing.T) {
	assert.Equal(t, testDest, interpolate(testOrigin, testDest, 1))
	assert.Equal(t, testDest, interpolate(testOrigin, testDest, 1.0000001))

	mid := interpolate(domain.LatLng{Latitude: 0, Longitude: 0}, domain.LatLng{Latitude: 10, Longitude: -20}, 0.5)
	assert.Equal(t, domain.LatLng{Latitude: 5, Longitude: -10}, mid)
}
