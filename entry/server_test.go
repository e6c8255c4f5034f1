package entry

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// testApplication is an Application whose Fail records the failure instead of exiting
type testApplication struct {
	ctx    context.Context
	logger *slog.Logger

	mu       sync.Mutex
	failures []error
}

func newTestApplication(ctx context.Context) *testApplication {
	return &testApplication{
		ctx:    ctx,
		logger: slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)),
	}
}

func (a *testApplication) Context() context.Context { return a.ctx }
func (a *testApplication) Log() *slog.Logger        { return a.logger }
func (a *testApplication) Stop()                    {}

func (a *testApplication) Fail(message string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = append(a.failures, err)
}

func (a *testApplication) Failures() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]error(nil), a.failures...)
}

// occupyPort binds an ephemeral port on the loopback interface and holds it until the
// test finishes
func occupyPort(t *testing.T) int {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lis.Close() })
	return lis.Addr().(*net.TCPAddr).Port
}

// freePort returns a port that was free a moment ago
func freePort(t *testing.T) int {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return port
}

// runUntilReturn runs f in a goroutine and fails the test if it hasn't returned
// within a few seconds
func runUntilReturn(t *testing.T, f func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not return")
	}
}

func Test_RunServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("port in use fails without waiting for a signal", func(t *testing.T) {
		app := newTestApplication(context.Background())
		port := occupyPort(t)

		runUntilReturn(t, func() { RunServer(app, handler, "127.0.0.1", port) })
		failures := app.Failures()
		require.Len(t, failures, 1)
		assert.ErrorContains(t, failures[0], "address already in use")
	})
	t.Run("canceled context closes the server cleanly", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		app := newTestApplication(ctx)
		port := freePort(t)

		time.AfterFunc(100*time.Millisecond, cancel)
		runUntilReturn(t, func() { RunServer(app, handler, "127.0.0.1", port) })
		assert.Empty(t, app.Failures())
	})
}

func Test_RunGRPCServer(t *testing.T) {
	t.Run("port in use fails without waiting for a signal", func(t *testing.T) {
		app := newTestApplication(context.Background())
		port := occupyPort(t)

		runUntilReturn(t, func() { RunGRPCServer(app, grpc.NewServer(), "127.0.0.1", port) })
		assert.Len(t, app.Failures(), 1)
	})
	t.Run("canceled context stops the server cleanly", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		app := newTestApplication(ctx)
		port := freePort(t)

		time.AfterFunc(100*time.Millisecond, cancel)
		runUntilReturn(t, func() { RunGRPCServer(app, grpc.NewServer(), "127.0.0.1", port) })
		assert.Empty(t, app.Failures())
	})
}
