package service

import (
	"context"
	"fmt"

	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/notifier"
	"github.com/tribute-next/internal/queue"

	"github.com/hibiken/asynq"
)

// NotificationService 订单通知服务（尽力而为，不影响兑换结果）
type NotificationService struct {
	queueClient *queue.Client
	notifiers   []notifier.Notifier
}

// NewNotificationService 创建订单通知服务
func NewNotificationService(queueClient *queue.Client, notifiers []notifier.Notifier) *NotificationService {
	return &NotificationService{
		queueClient: queueClient,
		notifiers:   notifiers,
	}
}

// NotifyOrder 分发订单通知：队列可用则入队，否则同步分发。
// 任何失败只记录日志，调用方看不到错误。
func (s *NotificationService) NotifyOrder(ctx context.Context, order *models.GiftOrder) {
	if s == nil || order == nil {
		return
	}
	payload := queue.NotificationDispatchPayload{
		Reference:            order.Reference,
		GiftType:             order.GiftType,
		DeliveryAddress:      order.DeliveryAddress,
		DeliveryInstructions: order.DeliveryInstructions,
		PreferredTime:        order.PreferredTime,
	}
	if s.queueClient.Enabled() {
		// 通知不重试：入队失败时退回同步发送一次
		if err := s.queueClient.EnqueueNotificationDispatch(payload, asynq.MaxRetry(0)); err != nil {
			logger.Warnw("notification_enqueue_failed", "reference", order.Reference, "error", err)
			_ = s.Dispatch(ctx, payload)
		}
		return
	}
	_ = s.Dispatch(ctx, payload)
}

// Dispatch 逐个渠道发送订单通知，单渠道失败不影响其余渠道
func (s *NotificationService) Dispatch(ctx context.Context, payload queue.NotificationDispatchPayload) error {
	if s == nil || len(s.notifiers) == 0 {
		return nil
	}
	msg := notifier.Message{
		Reference:            payload.Reference,
		GiftType:             payload.GiftType,
		DeliveryAddress:      payload.DeliveryAddress,
		DeliveryInstructions: payload.DeliveryInstructions,
		PreferredTime:        payload.PreferredTime,
	}

	var firstErr error
	for _, n := range s.notifiers {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, msg); err != nil {
			logger.Warnw("notification_send_failed",
				"channel", n.Channel(),
				"reference", msg.Reference,
				"gift_type", msg.GiftType,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return fmt.Errorf("%w: %v", ErrNotificationSendFailed, firstErr)
	}
	return nil
}
