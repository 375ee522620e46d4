package servicectx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

func TestProcess_Add(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	proc, err := New(context.Background(), logger, WithoutSignals(), WithUniqueID("<id>"))
	require.NoError(t, err)

	// Operations run in parallel, sleep determines the completion order
	proc.Add(func(ctx context.Context, _ ShutdownFn) {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		logger.Info(ctx, "end1")
	})
	proc.Add(func(ctx context.Context, _ ShutdownFn) {
		<-ctx.Done()
		time.Sleep(100 * time.Millisecond)
		logger.Info(ctx, "end2")
	})
	proc.Add(func(ctx context.Context, shutdown ShutdownFn) {
		shutdown(ctx, errors.New("operation failed"))
	})
	proc.OnShutdown(func(ctx context.Context) {
		logger.Info(ctx, "onShutdown1")
	})
	proc.OnShutdown(func(ctx context.Context) {
		logger.Info(ctx, "onShutdown2")
	})
	proc.WaitForShutdown()

	logger.AssertJSONMessages(t, `
{"level":"info","message":"process unique id \"<id>\"","component":"process"}
{"level":"info","message":"exiting (operation failed)","component":"process"}
{"level":"info","message":"onShutdown2"}
{"level":"info","message":"onShutdown1"}
{"level":"info","message":"end1"}
{"level":"info","message":"end2"}
{"level":"info","message":"exited","component":"process"}
`)
}

func TestProcess_Shutdown_Once(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	proc, err := New(context.Background(), logger, WithoutSignals(), WithUniqueID("<id>"))
	require.NoError(t, err)

	proc.Shutdown(context.Background(), errors.New("first"))
	proc.Shutdown(context.Background(), errors.New("second"))
	proc.WaitForShutdown()

	assert.Error(t, proc.Ctx().Err())
	assert.Contains(t, logger.AllMessages(), "exiting (first)")
	assert.NotContains(t, logger.AllMessages(), "exiting (second)")

	// Callbacks cannot be registered after the shutdown
	proc.OnShutdown(func(ctx context.Context) {})
	logger.AssertJSONMessages(t, `{"level":"error","message":"cannot register OnShutdown callback: the process is terminating"}`)
}

func TestProcess_NoLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	proc, err := New(context.Background(), log.NewNopLogger(), WithoutSignals(), WithUniqueID("<id>"))
	require.NoError(t, err)
	proc.Add(func(ctx context.Context, _ ShutdownFn) {
		<-ctx.Done()
	})
	proc.Shutdown(context.Background(), errors.New("stop"))
	proc.WaitForShutdown()
}
