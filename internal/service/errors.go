package service

import "errors"

// 礼物兑换相关错误
var (
	ErrMissingInformation     = errors.New("missing information")
	ErrInvalidGift            = errors.New("invalid gift")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrOrderPersistenceFailed = errors.New("order persistence failed")
	ErrBalanceUpdateConflict  = errors.New("balance update conflict")
)

// 余额与订单查询相关错误
var (
	ErrBalanceNotFound    = errors.New("balance not found")
	ErrBalanceFetchFailed = errors.New("balance fetch failed")
	ErrOrderNotFound      = errors.New("order not found")
)

// 通知相关错误（不向兑换调用方传播）
var (
	ErrNotificationSendFailed = errors.New("notification send failed")
)
