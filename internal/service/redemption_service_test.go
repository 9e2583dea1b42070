package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/notifier"
	"github.com/tribute-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRedemptionTest(t *testing.T, opening string) (*RedemptionService, *gorm.DB) {
	t.Helper()
	db := openRedemptionDB(t, opening)
	svc := NewRedemptionService(
		repository.NewBalanceRepository(db),
		repository.NewGiftOrderRepository(db),
		nil,
		redeemTestConfig(),
	)
	return svc, db
}

func openRedemptionDB(t *testing.T, opening string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:redeem_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Balance{}, &models.GiftOrder{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if opening != "" {
		balance := models.Balance{Amount: models.NewMoneyFromDecimal(decimal.RequireFromString(opening))}
		if err := db.Create(&balance).Error; err != nil {
			t.Fatalf("create balance failed: %v", err)
		}
	}
	return db
}

func redeemTestConfig() config.RedeemConfig {
	return config.RedeemConfig{
		RequirePreferredTime: true,
		DefaultAddress:       "Our special place",
		OpeningBalance:       "500",
	}
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.GiftOrder{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	return count
}

func currentBalance(t *testing.T, db *gorm.DB) string {
	t.Helper()
	var balance models.Balance
	if err := db.Order("id asc").First(&balance).Error; err != nil {
		t.Fatalf("load balance failed: %v", err)
	}
	return balance.Amount.String()
}

func TestRedeemMissingPreferredTime(t *testing.T) {
	svc, db := setupRedemptionTest(t, "500")

	_, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:          "single-rose",
		DeliveryAddress: "Home",
	})
	if !errors.Is(err, ErrMissingInformation) {
		t.Fatalf("want ErrMissingInformation got %v", err)
	}
	if got := countOrders(t, db); got != 0 {
		t.Fatalf("validation failure must not write orders, got %d", got)
	}
	if got := currentBalance(t, db); got != "500.00" {
		t.Fatalf("balance must be untouched, got %s", got)
	}
}

func TestRedeemUnknownGift(t *testing.T) {
	svc, db := setupRedemptionTest(t, "500")

	_, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "golden-unicorn",
		PreferredTime: "evening",
	})
	if !errors.Is(err, ErrInvalidGift) {
		t.Fatalf("want ErrInvalidGift got %v", err)
	}
	if got := countOrders(t, db); got != 0 {
		t.Fatalf("unknown gift must not write orders, got %d", got)
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, db := setupRedemptionTest(t, "50")

	_, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "single-rose",
		PreferredTime: "evening",
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance got %v", err)
	}
	if got := countOrders(t, db); got != 0 {
		t.Fatalf("insufficient balance must not write orders, got %d", got)
	}
	if got := currentBalance(t, db); got != "50.00" {
		t.Fatalf("balance must be untouched, got %s", got)
	}
}

func TestRedeemBalanceNotInitialized(t *testing.T) {
	svc, _ := setupRedemptionTest(t, "")

	_, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "single-rose",
		PreferredTime: "evening",
	})
	if !errors.Is(err, ErrBalanceNotFound) {
		t.Fatalf("want ErrBalanceNotFound got %v", err)
	}
}

func TestRedeemSuccess(t *testing.T) {
	svc, db := setupRedemptionTest(t, "500")

	result, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:               "single-rose",
		DeliveryAddress:      "Home",
		DeliveryInstructions: "Ring twice",
		PreferredTime:        "Friday evening",
	})
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if result.GiftName != "Single Rose" || result.GiftType != "single rose" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Reference == "" {
		t.Fatalf("reference should not be empty")
	}
	if result.BalanceAfter.String() != "400.00" {
		t.Fatalf("balance after want 400.00 got %s", result.BalanceAfter.String())
	}

	var order models.GiftOrder
	if err := db.Where("reference = ?", result.Reference).First(&order).Error; err != nil {
		t.Fatalf("order should be persisted: %v", err)
	}
	if order.GiftType != "single rose" {
		t.Fatalf("order gift_type want %q got %q", "single rose", order.GiftType)
	}
	if order.DeliveryAddress != "Home" || order.DeliveryInstructions != "Ring twice" {
		t.Fatalf("unexpected delivery fields: %+v", order)
	}
	if order.PreferredTime != "Friday evening" {
		t.Fatalf("preferred time want %q got %q", "Friday evening", order.PreferredTime)
	}
	if order.Price.String() != "100.00" {
		t.Fatalf("price want 100.00 got %s", order.Price.String())
	}
	if order.BalanceBefore.String() != "500.00" || order.BalanceAfter.String() != "400.00" {
		t.Fatalf("balance snapshot want 500.00/400.00 got %s/%s", order.BalanceBefore.String(), order.BalanceAfter.String())
	}
	if got := currentBalance(t, db); got != "400.00" {
		t.Fatalf("stored balance want 400.00 got %s", got)
	}
}

func TestRedeemDefaultAddressFallback(t *testing.T) {
	svc, db := setupRedemptionTest(t, "500")

	result, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "bunny-plushie",
		PreferredTime: "morning",
	})
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	var order models.GiftOrder
	if err := db.Where("reference = ?", result.Reference).First(&order).Error; err != nil {
		t.Fatalf("order should be persisted: %v", err)
	}
	if order.DeliveryAddress != "Our special place" {
		t.Fatalf("empty address should fall back to default, got %q", order.DeliveryAddress)
	}
}

func TestRedeemSequenceExhaustsBalance(t *testing.T) {
	svc, db := setupRedemptionTest(t, "500")

	first, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "rose-bouquet-3",
		PreferredTime: "noon",
	})
	if err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if first.BalanceAfter.String() != "200.00" {
		t.Fatalf("balance after first redeem want 200.00 got %s", first.BalanceAfter.String())
	}

	_, err = svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "rose-bouquet-3",
		PreferredTime: "noon",
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("second redeem want ErrInsufficientBalance got %v", err)
	}
	if got := countOrders(t, db); got != 1 {
		t.Fatalf("only the first redeem should persist an order, got %d", got)
	}
	if got := currentBalance(t, db); got != "200.00" {
		t.Fatalf("balance want 200.00 got %s", got)
	}
}

// staleBalanceRepo 读取时返回过期金额，模拟预检与扣减之间的并发修改。
type staleBalanceRepo struct {
	*repository.GormBalanceRepository
	stale models.Money
}

func (r *staleBalanceRepo) Get() (*models.Balance, error) {
	balance, err := r.GormBalanceRepository.Get()
	if err != nil || balance == nil {
		return balance, err
	}
	balance.Amount = r.stale
	return balance, nil
}

func TestRedeemConcurrentModificationKeepsOrder(t *testing.T) {
	db := openRedemptionDB(t, "500")
	stale := &staleBalanceRepo{
		GormBalanceRepository: repository.NewBalanceRepository(db),
		stale:                 models.NewMoneyFromDecimal(decimal.RequireFromString("999")),
	}
	svc := NewRedemptionService(stale, repository.NewGiftOrderRepository(db), nil, redeemTestConfig())

	_, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "teddy-bear",
		PreferredTime: "afternoon",
	})
	if !errors.Is(err, ErrBalanceUpdateConflict) {
		t.Fatalf("want ErrBalanceUpdateConflict got %v", err)
	}

	// 订单保留、余额不动，由订单上的余额快照供人工对账
	if got := countOrders(t, db); got != 1 {
		t.Fatalf("conflicting redeem must keep the order row, got %d", got)
	}
	if got := currentBalance(t, db); got != "500.00" {
		t.Fatalf("balance must stay 500.00, got %s", got)
	}

	var order models.GiftOrder
	if err := db.Order("id desc").First(&order).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order.BalanceBefore.String() != "999.00" || order.BalanceAfter.String() != "599.00" {
		t.Fatalf("order snapshot want 999.00/599.00 got %s/%s", order.BalanceBefore.String(), order.BalanceAfter.String())
	}
}

// failingNotifier 永远发送失败的通知渠道
type failingNotifier struct{}

func (failingNotifier) Channel() string { return "failing" }
func (failingNotifier) Send(ctx context.Context, msg notifier.Message) error {
	return errors.New("boom")
}

func TestRedeemNotificationFailureDoesNotAffectOutcome(t *testing.T) {
	db := openRedemptionDB(t, "500")
	notification := NewNotificationService(nil, []notifier.Notifier{failingNotifier{}})
	svc := NewRedemptionService(
		repository.NewBalanceRepository(db),
		repository.NewGiftOrderRepository(db),
		notification,
		redeemTestConfig(),
	)

	result, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "chocolate-box",
		PreferredTime: "evening",
	})
	if err != nil {
		t.Fatalf("notification failure must not surface: %v", err)
	}
	if result.BalanceAfter.String() != "250.00" {
		t.Fatalf("balance after want 250.00 got %s", result.BalanceAfter.String())
	}
	if got := countOrders(t, db); got != 1 {
		t.Fatalf("order should be persisted, got %d", got)
	}
}

func TestGetOrderByReference(t *testing.T) {
	svc, _ := setupRedemptionTest(t, "500")

	result, err := svc.Redeem(context.Background(), RedeemInput{
		GiftID:        "single-rose",
		PreferredTime: "evening",
	})
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	order, err := svc.GetOrderByReference(result.Reference)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if order.Reference != result.Reference {
		t.Fatalf("reference want %s got %s", result.Reference, order.Reference)
	}

	if _, err := svc.GetOrderByReference("GO-DOES-NOT-EXIST"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestListOrdersFilterByGiftType(t *testing.T) {
	svc, _ := setupRedemptionTest(t, "1000")

	for _, giftID := range []string{"single-rose", "chocolate-box", "single-rose"} {
		if _, err := svc.Redeem(context.Background(), RedeemInput{GiftID: giftID, PreferredTime: "evening"}); err != nil {
			t.Fatalf("redeem %s failed: %v", giftID, err)
		}
	}

	orders, total, err := svc.ListOrders(repository.GiftOrderListFilter{Page: 1, PageSize: 10, GiftType: "single rose"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("want 2 single rose orders got total=%d len=%d", total, len(orders))
	}
	for _, order := range orders {
		if order.GiftType != "single rose" {
			t.Fatalf("unexpected gift_type %s", order.GiftType)
		}
	}
}
