package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/tribute-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupBalanceRepositoryTest(t *testing.T) (*GormBalanceRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:balance_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Balance{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewBalanceRepository(db), db
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func TestBalanceRepositoryGetEmpty(t *testing.T) {
	repo, _ := setupBalanceRepositoryTest(t)

	balance, err := repo.Get()
	if err != nil {
		t.Fatalf("get on empty table should not error: %v", err)
	}
	if balance != nil {
		t.Fatalf("get on empty table should return nil, got %+v", balance)
	}
}

func TestBalanceRepositoryDebitIfMatch(t *testing.T) {
	repo, _ := setupBalanceRepositoryTest(t)

	if err := repo.Create(&models.Balance{Amount: money(t, "500")}); err != nil {
		t.Fatalf("create balance failed: %v", err)
	}
	balance, err := repo.Get()
	if err != nil || balance == nil {
		t.Fatalf("get balance failed: %v %+v", err, balance)
	}

	affected, err := repo.DebitIfMatch(balance.ID, money(t, "500"), money(t, "400"))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("matching debit should hit 1 row, got %d", affected)
	}

	updated, err := repo.Get()
	if err != nil {
		t.Fatalf("get after debit failed: %v", err)
	}
	if updated.Amount.String() != "400.00" {
		t.Fatalf("amount want 400.00 got %s", updated.Amount.String())
	}
}

func TestBalanceRepositoryDebitIfMatchStale(t *testing.T) {
	repo, _ := setupBalanceRepositoryTest(t)

	if err := repo.Create(&models.Balance{Amount: money(t, "500")}); err != nil {
		t.Fatalf("create balance failed: %v", err)
	}
	balance, err := repo.Get()
	if err != nil || balance == nil {
		t.Fatalf("get balance failed: %v %+v", err, balance)
	}

	// 条件不满足时必须零命中，不允许降级为无条件更新
	affected, err := repo.DebitIfMatch(balance.ID, money(t, "999"), money(t, "899"))
	if err != nil {
		t.Fatalf("stale debit should not error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale debit should hit 0 rows, got %d", affected)
	}

	unchanged, err := repo.Get()
	if err != nil {
		t.Fatalf("get after stale debit failed: %v", err)
	}
	if unchanged.Amount.String() != "500.00" {
		t.Fatalf("amount should stay 500.00, got %s", unchanged.Amount.String())
	}
}
