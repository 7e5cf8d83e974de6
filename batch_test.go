package winscm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, f *fakeSystem, opts ...BatchOption) *Batch {
	t.Helper()
	m := mustOpenManager(t, f, WithPollInterval(time.Millisecond))
	t.Cleanup(func() { m.Close() })
	return NewBatch(m, opts...)
}

func TestBatchDefaults(t *testing.T) {
	f := newFakeSystem()
	b := newTestBatch(t, f)

	assert.Equal(t, 10, b.Concurrency)
	assert.Equal(t, 5*time.Second, b.Timeout)
}

func TestBatchConcurrencyClamp(t *testing.T) {
	f := newFakeSystem()
	b := newTestBatch(t, f, WithConcurrency(-3))

	assert.Equal(t, 1, b.Concurrency)
}

func TestBatchStart(t *testing.T) {
	f := newFakeSystem()
	for _, name := range []string{"a", "b", "c"} {
		f.addService(name, &fakeService{
			state:      uint32(StateRunning),
			stateQueue: []uint32{uint32(StateStartPending)},
		})
	}
	b := newTestBatch(t, f)

	require.NoError(t, b.Start(context.Background(), "a", "b", "c"))
	for _, name := range []string{"a", "b", "c"} {
		assert.True(t, f.services[name].started, "service %s not started", name)
	}
}

func TestBatchStop(t *testing.T) {
	f := newFakeSystem()
	for _, name := range []string{"a", "b"} {
		f.addService(name, &fakeService{state: uint32(StateStopped)})
	}
	b := newTestBatch(t, f)

	require.NoError(t, b.Stop(context.Background(), "a", "b"))
	for _, name := range []string{"a", "b"} {
		assert.Equal(t, uint32(serviceControlStop), f.services[name].lastControl, "service %s", name)
	}
}

func TestBatchStates(t *testing.T) {
	f := newFakeSystem()
	f.addService("a", &fakeService{state: uint32(StateRunning)})
	f.addService("b", &fakeService{state: uint32(StateStopped)})
	f.addService("c", &fakeService{state: uint32(StatePaused)})
	b := newTestBatch(t, f)

	states, err := b.States(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, map[string]ServiceState{
		"a": StateRunning,
		"b": StateStopped,
		"c": StatePaused,
	}, states)
}

// Failures are aggregated; the services that could be queried still land in
// the result map.
func TestBatchStatesPartialFailure(t *testing.T) {
	f := newFakeSystem()
	f.addService("good", &fakeService{state: uint32(StateRunning)})
	b := newTestBatch(t, f)

	states, err := b.States(context.Background(), "good", "missing")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "does not exist"), "err = %v", err)
	assert.Equal(t, map[string]ServiceState{"good": StateRunning}, states)
}

func TestBatchStartMissingService(t *testing.T) {
	f := newFakeSystem()
	f.addService("a", &fakeService{state: uint32(StateRunning)})
	b := newTestBatch(t, f)

	err := b.Start(context.Background(), "a", "nope1", "nope2")
	require.Error(t, err)
	assert.Equal(t, "2 errors occurred", err.Error())
	assert.True(t, f.services["a"].started)
}

func TestBatchEmpty(t *testing.T) {
	f := newFakeSystem()
	b := newTestBatch(t, f)

	require.NoError(t, b.Start(context.Background()))
	states, err := b.States(context.Background())
	require.NoError(t, err)
	assert.Empty(t, states)
}
