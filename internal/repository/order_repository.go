package repository

import (
	"errors"
	"strings"

	"github.com/tribute-next/internal/models"

	"gorm.io/gorm"
)

// GiftOrderRepository 礼物订单数据访问接口（只追加）
type GiftOrderRepository interface {
	Create(order *models.GiftOrder) error
	GetByReference(reference string) (*models.GiftOrder, error)
	List(filter GiftOrderListFilter) ([]models.GiftOrder, int64, error)
	WithTx(tx *gorm.DB) *GormGiftOrderRepository
}

// GormGiftOrderRepository GORM 礼物订单仓储实现
type GormGiftOrderRepository struct {
	db *gorm.DB
}

// NewGiftOrderRepository 创建礼物订单仓储
func NewGiftOrderRepository(db *gorm.DB) *GormGiftOrderRepository {
	return &GormGiftOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGiftOrderRepository) WithTx(tx *gorm.DB) *GormGiftOrderRepository {
	if tx == nil {
		return r
	}
	return &GormGiftOrderRepository{db: tx}
}

// Create 追加一条订单记录
func (r *GormGiftOrderRepository) Create(order *models.GiftOrder) error {
	return r.db.Create(order).Error
}

// GetByReference 按订单号查询订单
func (r *GormGiftOrderRepository) GetByReference(reference string) (*models.GiftOrder, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var order models.GiftOrder
	if err := r.db.Where("reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 分页查询订单
func (r *GormGiftOrderRepository) List(filter GiftOrderListFilter) ([]models.GiftOrder, int64, error) {
	query := r.db.Model(&models.GiftOrder{})
	if filter.GiftType != "" {
		query = query.Where("gift_type = ?", filter.GiftType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.GiftOrder
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
