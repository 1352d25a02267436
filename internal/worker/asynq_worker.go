package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/provider"
	"github.com/coffee-bar/internal/queue"
	"github.com/coffee-bar/internal/repository"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmed, c.handleOrderConfirmed)
}

func (c *Consumer) handleOrderConfirmed(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseOrderConfirmedPayload(task)
	if err != nil {
		logger.Warnw("worker_order_confirmed_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderNo == "" {
		logger.Debugw("worker_order_confirmed_skip_invalid_payload")
		return nil
	}
	if c.OrderService == nil {
		return errors.New("order service unavailable")
	}
	if err := c.OrderService.MarkNotified(ctx, payload.OrderNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warnw("worker_order_confirmed_order_missing", "order_no", payload.OrderNo)
			return nil
		}
		logger.Warnw("worker_order_confirmed_mark_failed", "order_no", payload.OrderNo, "error", err)
		return err
	}
	logger.Infow("worker_order_confirmed_done",
		"order_no", payload.OrderNo,
		"items", payload.ItemCount,
		"total", payload.Total,
	)
	return nil
}
