package queue

import (
	"encoding/json"
	"fmt"

	"github.com/coffee-bar/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmed 订单确认后的异步通知
	TaskOrderConfirmed = constants.TaskOrderConfirmed
)

// OrderConfirmedPayload 订单确认任务载荷
type OrderConfirmedPayload struct {
	OrderNo   string `json:"order_no"`
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// NewOrderConfirmedTask 创建订单确认任务
func NewOrderConfirmedTask(payload OrderConfirmedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmed, body), nil
}

// ParseOrderConfirmedPayload 解析任务载荷
func ParseOrderConfirmedPayload(task *asynq.Task) (OrderConfirmedPayload, error) {
	var payload OrderConfirmedPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
