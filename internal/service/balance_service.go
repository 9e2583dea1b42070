package service

import (
	"fmt"

	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/repository"
)

// BalanceService 余额查询服务
type BalanceService struct {
	balanceRepo repository.BalanceRepository
}

// NewBalanceService 创建余额服务
func NewBalanceService(balanceRepo repository.BalanceRepository) *BalanceService {
	return &BalanceService{balanceRepo: balanceRepo}
}

// GetBalance 获取当前余额，读失败只记录日志并返回错误，不缓存旧值
func (s *BalanceService) GetBalance() (*models.Balance, error) {
	balance, err := s.balanceRepo.Get()
	if err != nil {
		logger.Errorw("balance_fetch_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBalanceFetchFailed, err)
	}
	if balance == nil {
		return nil, ErrBalanceNotFound
	}
	return balance, nil
}
