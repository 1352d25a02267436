package queue

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/coffee-bar/internal/config"
	"github.com/coffee-bar/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	defaultConcurrency = 5
	shutdownTimeout    = 8 * time.Second
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端，未启用时返回可安全调用的空客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	return &Client{
		client:       asynq.NewClient(buildRedisOpt(cfg)),
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderConfirmed 推送订单确认通知任务
func (c *Client) EnqueueOrderConfirmed(payload OrderConfirmedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderConfirmedTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{
		asynq.Queue(c.defaultQueue),
		asynq.MaxRetry(constants.OrderNotifyMaxRetries),
		asynq.TaskID(payload.OrderNo),
	}, opts...)
	if _, err := c.client.Enqueue(task, options...); err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskOrderConfirmed, err)
	}
	return nil
}

// BuildServerConfig 生成消费端配置，默认并发 5 且只消费 default 队列
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency:     defaultConcurrency,
		Queues:          map[string]int{DefaultQueue: 1},
		ShutdownTimeout: shutdownTimeout,
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return buildRedisOpt(cfg), serverCfg
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	if cfg == nil {
		return asynq.RedisClientOpt{Addr: net.JoinHostPort("127.0.0.1", "6379")}
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return asynq.RedisClientOpt{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
