package winscm

import (
	"context"
	"sync"
	"time"
)

// Batch runs control operations against many services concurrently through
// a single ServiceManager. It provides bulk operations with configurable
// concurrency and per-operation timeouts.
type Batch struct {
	// Concurrency is the maximum number of concurrent operations.
	Concurrency int
	// Timeout is the per-operation timeout. Zero disables it.
	Timeout time.Duration

	manager *ServiceManager
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithConcurrency sets the maximum number of concurrent operations.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		b.Concurrency = n
	}
}

// WithBatchTimeout sets the per-operation timeout.
func WithBatchTimeout(d time.Duration) BatchOption {
	return func(b *Batch) {
		b.Timeout = d
	}
}

// NewBatch creates a Batch over the given manager with default settings.
func NewBatch(manager *ServiceManager, opts ...BatchOption) *Batch {
	b := &Batch{
		Concurrency: 10,
		Timeout:     5 * time.Second,
		manager:     manager,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.Concurrency < 1 {
		b.Concurrency = 1
	}

	return b
}

func (b *Batch) execute(ctx context.Context, names []string, op func(context.Context, *Service) error) error {
	if len(names) == 0 {
		return nil
	}

	sem := make(chan struct{}, b.Concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	merr := &MultiError{}

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(ctx.Err())
				mu.Unlock()
				return
			}

			svc, err := b.manager.OpenService(name)
			if err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
				return
			}
			defer func() { _ = svc.Close() }()

			opCtx := ctx
			if b.Timeout > 0 {
				var cancel context.CancelFunc
				opCtx, cancel = context.WithTimeout(ctx, b.Timeout)
				defer cancel()
			}

			if err := op(opCtx, svc); err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()

	return merr.Err()
}

// Start starts the named services, blocking each until running.
func (b *Batch) Start(ctx context.Context, names ...string) error {
	return b.execute(ctx, names, func(ctx context.Context, svc *Service) error {
		return svc.StartBlocking(ctx)
	})
}

// Stop stops the named services, blocking each until stopped.
func (b *Batch) Stop(ctx context.Context, names ...string) error {
	return b.execute(ctx, names, func(ctx context.Context, svc *Service) error {
		return svc.StopBlocking(ctx)
	})
}

// States retrieves the current state of the named services. Services that
// could not be queried are reported through the returned MultiError and
// omitted from the map.
func (b *Batch) States(ctx context.Context, names ...string) (map[string]ServiceState, error) {
	results := make(map[string]ServiceState)
	if len(names) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	err := b.execute(ctx, names, func(_ context.Context, svc *Service) error {
		state, err := svc.State()
		if err != nil {
			return err
		}
		mu.Lock()
		results[svc.Name()] = state
		mu.Unlock()
		return nil
	})

	return results, err
}
