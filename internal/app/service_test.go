package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coffee-bar/internal/config"
)

type stubService struct {
	startErr error
	stopped  bool
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(context.Context) error {
	s.stopped = true
	return nil
}

func TestRunnerStopsServicesAndRunsCleanup(t *testing.T) {
	bindErr := errors.New("bind failed")
	failing := &stubService{startErr: bindErr}
	idle := &stubService{}
	cleaned := false
	runner := NewRunner(failing, idle).WithCleanup(func() { cleaned = true })

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, bindErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.stopped || !idle.stopped {
		t.Fatalf("all services should be stopped")
	}
	if !cleaned {
		t.Fatalf("cleanup should run after stop")
	}
}

func TestRunnerCanceledContextIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(&stubService{}).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled context should not be an error, got %v", err)
	}
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll || opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestHTTPServiceStopBeforeStart(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", nil)
	if svc.Name() != "http" || svc.Addr() != "127.0.0.1:0" {
		t.Fatalf("unexpected service identity: %s %s", svc.Name(), svc.Addr())
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start should succeed, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: ModeAll},
		{raw: " API ", want: ModeAPI},
		{raw: "worker", want: ModeWorker},
		{raw: "admin", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseMode(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("want %s got %s (%v)", tc.want, got, err)
			}
		})
	}
}

func TestBuildRunnerRejectsWorkerWithoutQueue(t *testing.T) {
	cfg := &config.Config{}
	if _, err := BuildRunner(cfg, ModeWorker); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
	if _, err := BuildRunner(cfg, "admin"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
