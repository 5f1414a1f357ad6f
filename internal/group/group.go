// package group provides a way to manage the lifecycle of a group of goroutines.
package group

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"
)

// A G manages the lifetime of a set of goroutines from a common context.
// The first goroutine in the group to return will cause the context to be canceled,
// terminating the remaining goroutines.
type G struct {
	// ctx is the context passed to all goroutines in the group.
	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup

	errOnce sync.Once
	err     error
}

// New returns a new group using the given context.
func New(ctx context.Context) *G {
	ctx, cancel := context.WithCancel(ctx)
	return &G{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddContext adds a new goroutine to the group.
// The goroutine should exit when the context passed to it is canceled.
func (g *G) AddContext(fn func(context.Context) error) {
	g.done.Add(1)
	go func() {
		defer g.done.Done()
		defer g.cancel()
		if err := fn(g.ctx); err != nil {
			g.errOnce.Do(func() { g.err = err })
		}
	}()
}

// Add adds a new goroutine to the group.
// The goroutine should exit when the channel passed to it is closed.
func (g *G) Add(fn func(<-chan struct{}) error) {
	g.AddContext(func(ctx context.Context) error {
		return fn(ctx.Done())
	})
}

// AddServer runs svr in the group. When the group is canceled the server is
// given up to timeout to finish in flight requests.
func (g *G) AddServer(svr *http.Server, timeout time.Duration) {
	g.AddContext(func(ctx context.Context) error {
		errc := make(chan error, 1)
		go func() {
			errc <- svr.ListenAndServe()
		}()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := svr.Shutdown(sctx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	})
}

// AddSignals adds a goroutine that returns, without error, when the process
// receives one of sigs, taking the rest of the group with it.
func (g *G) AddSignals(fn func(os.Signal), sigs ...os.Signal) {
	g.AddContext(func(ctx context.Context) error {
		c := make(chan os.Signal, 1)
		signal.Notify(c, sigs...)
		defer signal.Stop(c)
		select {
		case <-ctx.Done():
		case sig := <-c:
			fn(sig)
		}
		return nil
	})
}

// Wait waits for all goroutines in the group to exit.
// If any of the goroutines fail with an error, Wait will return the first error.
func (g *G) Wait() error {
	g.done.Wait()
	g.errOnce.Do(func() {
		// noop, required to synchronise on the errOnce mutex.
	})
	return g.err
}
