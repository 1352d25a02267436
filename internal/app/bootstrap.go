package app

import (
	"errors"
	"net"

	"github.com/coffee-bar/internal/config"
	"github.com/coffee-bar/internal/provider"
	"github.com/coffee-bar/internal/router"
	"github.com/coffee-bar/internal/worker"
)

// BuildRunner 按启动模式组装 HTTP 与队列消费服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, errors.New("worker mode requires queue.enabled")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	var services []Service
	if mode != ModeWorker {
		httpService, err := buildHTTPService(cfg, container)
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, httpService)
	}
	// all 模式下队列未启用时只跑 HTTP
	if cfg.Queue.Enabled && mode != ModeAPI {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			container.Close()
			return nil, err
		}
		services = append(services, workerService)
	}

	return NewRunner(services...).WithCleanup(container.Close), nil
}

func buildHTTPService(cfg *config.Config, container *provider.Container) (*HTTPService, error) {
	engine, err := router.SetupRouter(cfg, container)
	if err != nil {
		return nil, err
	}
	return NewHTTPService(listenAddr(cfg), engine), nil
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config),
		"mode", opts.Mode,
		"cart_storage", opts.Config.Cart.Storage,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}
