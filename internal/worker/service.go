package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffee-bar/internal/config"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 订单通知消费服务，生命周期由 app.Runner 管理
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建消费服务；队列未启用时报错
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = logger.Named("asynq")
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		logger.Warnw("worker_task_failed",
			"type", task.Type(),
			"retried", retried,
			"max_retry", maxRetry,
			"error", err,
		)
	})
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server: asynq.NewServer(opt, serverCfg),
		mux:    mux,
	}, nil
}

func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费并阻塞到 ctx 结束；信号由 Runner 统一处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务完成后退出
func (s *Service) Stop(_ context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}
