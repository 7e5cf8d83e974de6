package winscm

import (
	"context"
	"errors"
	"time"

	"vawter.tech/stopper"
)

// StateEvent is delivered by Watch whenever the observed service state
// changes. Err is set when a state query failed; the watch ends after
// delivering it.
type StateEvent struct {
	State ServiceState
	Err   error
}

// WatchCleanupFunc stops a watch and waits for its poller to exit.
type WatchCleanupFunc func() error

// errWatchClosed is returned by WaitForState when the watch channel closes
// before a target state was observed.
var errWatchClosed = errors.New("winscm: watch terminated")

// Watch polls the service state and emits a StateEvent for the current
// state and then for every change. The SCM exposes no pollable artifact, so
// change detection is by polling at the manager's poll interval. The
// returned cleanup function must be called to release the poller; the
// channel is closed once the watch has fully stopped.
func (s *Service) Watch(ctx context.Context) (<-chan StateEvent, WatchCleanupFunc, error) {
	last, err := s.State()
	if err != nil {
		return nil, nil, err
	}

	interval := s.pollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ch := make(chan StateEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	// Initial event carries the state observed at watch start.
	ch <- StateEvent{State: last}

	sctx.Go(func(sctx *stopper.Context) error {
		ticker := time.NewTicker(interval)
		sctx.Defer(ticker.Stop)

		for {
			select {
			case <-sctx.Stopping():
				return nil
			case <-ticker.C:
			}

			state, err := s.State()
			if err != nil {
				if !sctx.IsStopping() {
					select {
					case ch <- StateEvent{Err: err}:
					case <-sctx.Stopping():
					}
				}
				// The watch is over; stop the stopper context so the
				// deferred channel close fires for callers that never
				// invoke cleanup.
				sctx.Stop(0)
				return nil
			}

			if state != last {
				last = state
				select {
				case ch <- StateEvent{State: state}:
				case <-sctx.Stopping():
					return nil
				}
			}
		}
	})

	return ch, cleanup, nil
}

// WaitForState blocks until the service reaches one of the given states or
// ctx is cancelled, and returns the state that matched. If states is empty
// it returns on the first observed state change.
func (s *Service) WaitForState(ctx context.Context, states ...ServiceState) (ServiceState, error) {
	current, err := s.State()
	if err != nil {
		return 0, err
	}
	for _, target := range states {
		if current == target {
			return current, nil
		}
	}

	events, cleanup, err := s.Watch(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = cleanup() }()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
				return 0, errWatchClosed
			}
			if event.Err != nil {
				return 0, event.Err
			}
			if len(states) == 0 && event.State != current {
				return event.State, nil
			}
			for _, target := range states {
				if event.State == target {
					return event.State, nil
				}
			}
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}
