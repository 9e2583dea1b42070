package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/provider"
	"github.com/tribute-next/internal/queue"

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

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
}

// handleNotificationDispatch 发送订单通知。
// 通知明确不重试：发送失败只记录日志并吞掉错误，任务不再投递。
func (c *Consumer) handleNotificationDispatch(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_dispatch_unmarshal_failed", "error", err)
		return nil
	}
	if strings.TrimSpace(payload.GiftType) == "" {
		logger.Debugw("worker_notification_dispatch_skip_invalid_payload", "reference", payload.Reference)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_dispatch_skip_service_nil", "reference", payload.Reference)
		return nil
	}
	if err := c.NotificationService.Dispatch(ctx, payload); err != nil {
		logger.Warnw("worker_notification_dispatch_failed",
			"reference", payload.Reference,
			"gift_type", payload.GiftType,
			"error", err,
		)
	}
	return nil
}
