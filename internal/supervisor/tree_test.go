// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewTree_Construction(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Error("Root() = nil")
	}
}

func TestNewTree_ZeroConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("config = %+v, want defaults %+v", tree.config, want)
	}
}

func TestTree_ServeRunsAddedServices(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	pipelineSvc := NewMockService("pipeline")
	opsSvc := NewMockService("ops")
	tree.AddPipelineService(pipelineSvc)
	tree.AddOpsService(opsSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for pipelineSvc.StartCount() == 0 || opsSvc.StartCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("services never started")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want nil or context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancellation")
	}

	if pipelineSvc.StopCount() == 0 || opsSvc.StopCount() == 0 {
		t.Error("services did not stop on shutdown")
	}
}

func TestTree_RestartsFailingService(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureDecay:     30,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	svc := NewMockService("flaky")
	svc.SetFailCount(2)
	tree.AddPipelineService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(5 * time.Second)
	for svc.StartCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("service restarted %d times, want at least 3 starts", svc.StartCount())
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	<-errCh
}

func TestTree_TerminateSupervisorTreeStopsEverything(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(testLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}

	fatal := NewMockService("fatal")
	fatal.SetError(suture.ErrTerminateSupervisorTree)
	tree.AddPipelineService(fatal)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	select {
	case <-tree.ServeBackground(ctx):
		// Tree stopped on its own, before the context deadline.
	case <-time.After(4 * time.Second):
		t.Fatal("tree kept running after ErrTerminateSupervisorTree")
	}
}
