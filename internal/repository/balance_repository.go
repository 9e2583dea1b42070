package repository

import (
	"errors"

	"github.com/tribute-next/internal/models"

	"gorm.io/gorm"
)

// BalanceRepository 余额数据访问接口
type BalanceRepository interface {
	Get() (*models.Balance, error)
	Create(balance *models.Balance) error
	// DebitIfMatch 条件更新余额：仅当当前余额仍等于 before 时写入 after，
	// 返回命中的行数（0 表示余额已被并发修改）。不重试。
	DebitIfMatch(id uint, before, after models.Money) (int64, error)
	WithTx(tx *gorm.DB) *GormBalanceRepository
}

// GormBalanceRepository GORM 余额仓储实现
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewBalanceRepository 创建余额仓储
func NewBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBalanceRepository) WithTx(tx *gorm.DB) *GormBalanceRepository {
	if tx == nil {
		return r
	}
	return &GormBalanceRepository{db: tx}
}

// Get 获取余额行（全站仅一行，取最早创建的）
func (r *GormBalanceRepository) Get() (*models.Balance, error) {
	var balance models.Balance
	if err := r.db.Order("id asc").First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

// Create 创建余额行
func (r *GormBalanceRepository) Create(balance *models.Balance) error {
	return r.db.Create(balance).Error
}

// DebitIfMatch 单次乐观条件扣减
func (r *GormBalanceRepository) DebitIfMatch(id uint, before, after models.Money) (int64, error) {
	result := r.db.Model(&models.Balance{}).
		Where("id = ? AND amount = ?", id, before).
		Update("amount", after)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
