package queue

import (
	"encoding/json"

	"github.com/tribute-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 订单通知分发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
)

// NotificationDispatchPayload 订单通知分发任务载荷
type NotificationDispatchPayload struct {
	Reference            string `json:"reference"`
	GiftType             string `json:"gift_type"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
	PreferredTime        string `json:"preferred_time"`
}

// NewNotificationDispatchTask 创建订单通知分发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}
