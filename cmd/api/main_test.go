package main

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type blockingWorker struct {
	stopped atomic.Bool
}

func (w *blockingWorker) Run(ctx context.Context) {
	<-ctx.Done()
	w.stopped.Store(true)
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	worker := &blockingWorker{}
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, worker, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	assert.True(t, worker.stopped.Load())
}

func TestServe_ListenFailureStopsWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	worker := &blockingWorker{}
	srv := &http.Server{Addr: taken.Addr().String(), Handler: http.NotFoundHandler()}

	err = serve(context.Background(), srv, worker, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
	assert.True(t, worker.stopped.Load())
}
