// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*mockService)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveInBackground(ctx context.Context, tree *SupervisorTree) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- tree.Serve(ctx) }()
	return errCh
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewSupervisorTree(t *testing.T) {
	tests := []struct {
		name string
		in   TreeConfig
		want TreeConfig
	}{
		{
			name: "zero config gets defaults",
			in:   TreeConfig{},
			want: DefaultTreeConfig(),
		},
		{
			name: "explicit values are kept",
			in:   TreeConfig{FailureThreshold: 3, FailureBackoff: time.Second},
			want: TreeConfig{FailureThreshold: 3, FailureDecay: 30, FailureBackoff: time.Second, ShutdownTimeout: 10 * time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewSupervisorTree(quietLogger(), tt.in)
			if err != nil {
				t.Fatalf("NewSupervisorTree() error = %v", err)
			}
			if tree.root == nil || tree.store == nil || tree.api == nil {
				t.Fatal("supervisors should not be nil")
			}
			if tree.config != tt.want {
				t.Errorf("config = %+v, want %+v", tree.config, tt.want)
			}
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		if _, err := NewSupervisorTree(nil, TreeConfig{}); err != nil {
			t.Fatalf("NewSupervisorTree(nil) error = %v", err)
		}
	})
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

	storeSvc := newMockService("store-probe")
	apiSvc := newMockService("http-server")
	tree.AddStoreService(storeSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveInBackground(ctx, tree)

	if !waitFor(t, time.Second, func() bool { return storeSvc.starts() >= 1 && apiSvc.starts() >= 1 }) {
		t.Fatalf("services not started: store=%d api=%d", storeSvc.starts(), apiSvc.starts())
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}
	if storeSvc.stops() < 1 || apiSvc.stops() < 1 {
		t.Errorf("services not stopped: store=%d api=%d", storeSvc.stops(), apiSvc.stops())
	}
}

func TestSupervisorTree_Serve(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	tree.AddAPIService(newMockService("api"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailingStoreService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := newMockService("flaky-probe")
	failing.setFailCount(2)
	stable := newMockService("http-server")
	tree.AddStoreService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := serveInBackground(ctx, tree)

	if !waitFor(t, 2*time.Second, func() bool { return failing.starts() >= 3 }) {
		t.Errorf("failing service starts = %d, want at least 3", failing.starts())
	}
	if stable.starts() != 1 {
		t.Errorf("api service starts = %d, want 1", stable.starts())
	}

	cancel()
	<-errCh
}

func TestSupervisorTree_DoNotRestart(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})

	oneShot := newMockService("one-shot")
	oneShot.setError(suture.ErrDoNotRestart)
	tree.AddStoreService(oneShot)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = tree.Serve(ctx)

	if oneShot.starts() != 1 {
		t.Errorf("starts = %d, want 1", oneShot.starts())
	}
}
