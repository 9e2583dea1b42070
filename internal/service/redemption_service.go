package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tribute-next/internal/catalog"
	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/repository"

	"github.com/google/uuid"
)

// RedeemInput 兑换请求参数
type RedeemInput struct {
	GiftID               string
	DeliveryAddress      string
	DeliveryInstructions string
	PreferredTime        string
}

// RedeemResult 兑换结果
type RedeemResult struct {
	GiftName     string       `json:"gift_name"`
	GiftType     string       `json:"gift_type"`
	Reference    string       `json:"reference"`
	BalanceAfter models.Money `json:"balance_after"`
}

// RedemptionService 礼物兑换服务
type RedemptionService struct {
	balanceRepo  repository.BalanceRepository
	orderRepo    repository.GiftOrderRepository
	notification *NotificationService
	cfg          config.RedeemConfig
}

// NewRedemptionService 创建礼物兑换服务
func NewRedemptionService(
	balanceRepo repository.BalanceRepository,
	orderRepo repository.GiftOrderRepository,
	notification *NotificationService,
	cfg config.RedeemConfig,
) *RedemptionService {
	return &RedemptionService{
		balanceRepo:  balanceRepo,
		orderRepo:    orderRepo,
		notification: notification,
		cfg:          cfg,
	}
}

// Redeem 执行兑换流程：校验 → 解析礼物 → 余额预检 → 写订单 → 条件扣减 → 通知。
// 订单写入与余额扣减是两次独立调用，不共享事务：扣减失败时订单保留，
// 由订单上的 BalanceBefore/BalanceAfter 供人工对账。
func (s *RedemptionService) Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error) {
	// 1. 期望送达时间必填校验（全局策略）
	preferred := strings.TrimSpace(input.PreferredTime)
	if s.cfg.RequirePreferredTime && preferred == "" {
		return nil, ErrMissingInformation
	}

	// 2. 解析礼物
	gift := catalog.Find(input.GiftID)
	if gift == nil {
		return nil, ErrInvalidGift
	}
	// 单个礼物可覆盖全局策略
	if gift.RequiresPreferredTime(s.cfg.RequirePreferredTime) && preferred == "" {
		return nil, ErrMissingInformation
	}

	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		address = strings.TrimSpace(s.cfg.DefaultAddress)
	}
	if address == "" {
		return nil, ErrMissingInformation
	}

	// 3. 余额预检（仅提示作用，存在读写竞态）
	balance, err := s.balanceRepo.Get()
	if err != nil {
		logger.Errorw("redeem_balance_fetch_failed", "gift_id", gift.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBalanceFetchFailed, err)
	}
	if balance == nil {
		return nil, ErrBalanceNotFound
	}
	if balance.Amount.LessThan(gift.Price.Decimal) {
		return nil, ErrInsufficientBalance
	}

	before := balance.Amount
	after := models.NewMoneyFromDecimal(before.Sub(gift.Price.Decimal))

	// 4. 写入订单，失败即中止
	order := &models.GiftOrder{
		Reference:            buildOrderReference(),
		GiftType:             gift.BackendValue,
		DeliveryAddress:      address,
		DeliveryInstructions: strings.TrimSpace(input.DeliveryInstructions),
		PreferredTime:        preferred,
		Price:                gift.Price,
		BalanceBefore:        before,
		BalanceAfter:         after,
	}
	if err := s.orderRepo.Create(order); err != nil {
		logger.Errorw("gift_order_create_failed", "gift_id", gift.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistenceFailed, err)
	}

	// 5. 单次条件扣减：余额被并发修改时直接失败，不重试、不回滚订单
	affected, err := s.balanceRepo.DebitIfMatch(balance.ID, before, after)
	if err != nil {
		logger.Errorw("balance_debit_failed",
			"reference", order.Reference,
			"balance_before", before.String(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrBalanceUpdateConflict, err)
	}
	if affected == 0 {
		logger.Warnw("balance_debit_conflict",
			"reference", order.Reference,
			"balance_before", before.String(),
		)
		return nil, ErrBalanceUpdateConflict
	}

	// 6. 尽力而为的通知，结果只进日志
	if s.notification != nil {
		s.notification.NotifyOrder(ctx, order)
	}

	// 成功后重新读取余额，失败时退回计算值
	balanceAfter := after
	if current, err := s.balanceRepo.Get(); err != nil || current == nil {
		logger.Warnw("balance_refresh_failed", "reference", order.Reference, "error", err)
	} else {
		balanceAfter = current.Amount
	}

	return &RedeemResult{
		GiftName:     gift.Name,
		GiftType:     gift.BackendValue,
		Reference:    order.Reference,
		BalanceAfter: balanceAfter,
	}, nil
}

// GetOrderByReference 按订单号查询订单
func (s *RedemptionService) GetOrderByReference(reference string) (*models.GiftOrder, error) {
	order, err := s.orderRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 分页查询订单
func (s *RedemptionService) ListOrders(filter repository.GiftOrderListFilter) ([]models.GiftOrder, int64, error) {
	return s.orderRepo.List(filter)
}

func buildOrderReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("GO%s%s", time.Now().Format("20060102150405"), suffix)
}
