// Package servicectx provides unique ID for a service process and support for the graceful shutdown.
package servicectx

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"testing"

	"github.com/keboola/config-features/internal/pkg/idgenerator"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

type Process struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   log.Logger
	wg       *sync.WaitGroup
	uniqueID string

	shutdownOnce *sync.Once
	shutdownCh   chan struct{}
	doneCh       chan struct{}

	lock        *sync.Mutex
	terminating bool
	onShutdown  []OnShutdownFn
}

type Option func(c *config)

// ShutdownFn triggers graceful shutdown of the process.
type ShutdownFn func(ctx context.Context, err error)

type OnShutdownFn func(ctx context.Context)

type config struct {
	uniqueID string
	signals  bool
}

// WithUniqueID sets unique ID of the service process.
// By default, it is generated from the hostname and PID.
func WithUniqueID(v string) Option {
	return func(c *config) {
		c.uniqueID = v
	}
}

// WithoutSignals disables SIGINT and SIGTERM handling.
func WithoutSignals() Option {
	return func(c *config) {
		c.signals = false
	}
}

func New(ctx context.Context, logger log.Logger, opts ...Option) (*Process, error) {
	c := config{signals: true}
	for _, o := range opts {
		o(&c)
	}

	if c.uniqueID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		c.uniqueID = fmt.Sprintf(`%s-%05d`, hostname, os.Getpid())
	}

	ctx, cancel := context.WithCancel(ctx)
	proc := &Process{
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger.WithComponent("process"),
		wg:           &sync.WaitGroup{},
		uniqueID:     c.uniqueID,
		shutdownOnce: &sync.Once{},
		shutdownCh:   make(chan struct{}),
		doneCh:       make(chan struct{}),
		lock:         &sync.Mutex{},
	}

	// SIGINT and SIGTERM signals cause the process to stop gracefully
	if c.signals {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			defer signal.Stop(sigCh)
			select {
			case sig := <-sigCh:
				proc.Shutdown(context.WithoutCancel(ctx), errors.Errorf("%s", sig))
			case <-proc.shutdownCh:
			}
		}()
	}

	go proc.waitAndTerminate()

	proc.logger.Infof(ctx, `process unique id "%s"`, proc.UniqueID())
	return proc, nil
}

func NewForTest(t *testing.T) *Process {
	t.Helper()

	proc, err := New(context.Background(), log.NewNopLogger(), WithoutSignals(), WithUniqueID("test_"+t.Name()+"_"+idgenerator.Random(5)))
	if err != nil {
		t.Fatal(err)
		return nil
	}

	t.Cleanup(func() {
		proc.Shutdown(context.Background(), errors.New("test cleanup"))
		proc.WaitForShutdown()
	})

	return proc
}

// Ctx returns context of the Process, it is cancelled when the shutdown callbacks have finished.
func (v *Process) Ctx() context.Context {
	return v.ctx
}

// Shutdown triggers termination of the Process.
// Only the first call has effect.
func (v *Process) Shutdown(ctx context.Context, err error) {
	v.shutdownOnce.Do(func() {
		v.lock.Lock()
		v.terminating = true
		v.lock.Unlock()
		v.logger.Infof(ctx, "exiting (%v)", err)
		close(v.shutdownCh)
	})
}

// WaitForShutdown blocks until the Process is terminated.
func (v *Process) WaitForShutdown() {
	<-v.doneCh
}

// UniqueID returns unique process ID, it consists of hostname and PID.
func (v *Process) UniqueID() string {
	return v.uniqueID
}

// Add an operation.
// The Process is graceful terminated when all operations are completed.
// The shutdown parameter can be used to stop the process with an error.
func (v *Process) Add(operation func(ctx context.Context, shutdown ShutdownFn)) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		operation(v.ctx, v.Shutdown)
	}()
}

// OnShutdown registers a callback that is invoked when the process is terminating.
// Graceful shutdown waits until the callback has finished.
// Callbacks are invoked sequentially in LIFO order.
func (v *Process) OnShutdown(fn OnShutdownFn) {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.terminating {
		v.logger.Error(v.ctx, `cannot register OnShutdown callback: the process is terminating`)
		return
	}
	v.onShutdown = append(v.onShutdown, fn)
}

func (v *Process) waitAndTerminate() {
	<-v.shutdownCh
	ctx := context.WithoutCancel(v.ctx)

	v.lock.Lock()
	callbacks := v.onShutdown
	v.lock.Unlock()

	for i := len(callbacks) - 1; i >= 0; i-- {
		callbacks[i](ctx)
	}

	// Send cancellation signal to the operations and wait for them
	v.cancel()
	v.wg.Wait()

	v.logger.Info(ctx, "exited")
	close(v.doneCh)
}
