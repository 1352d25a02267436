package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 可启停的长驻服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// errServiceExited 服务在未收到停止信号时自行退出
var errServiceExited = errors.New("service exited")

// Runner 并发运行一组服务，任一服务退出即整体停机
type Runner struct {
	services []Service
	cleanup  []func()
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// WithCleanup 注册所有服务停止后执行的清理函数
func (r *Runner) WithCleanup(fn func()) *Runner {
	if fn != nil {
		r.cleanup = append(r.cleanup, fn)
	}
	return r
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 阻塞直到 ctx 结束或某个服务退出，随后在 stopTimeout 内停止全部服务
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}

	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		svc := svc
		g.Go(func() error {
			log.Infow("service_start", "service", svc.Name())
			err := svc.Start(gctx)
			log.Infow("service_exit", "service", svc.Name(), "error", err)
			if err != nil {
				return fmt.Errorf("%s: %w", svc.Name(), err)
			}
			return errServiceExited
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		r.stopAll(stopTimeout, log)
		return nil
	})

	err := g.Wait()
	for _, fn := range r.cleanup {
		fn()
	}
	if errors.Is(err, errServiceExited) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) stopAll(timeout time.Duration, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if err := svc.Stop(ctx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
