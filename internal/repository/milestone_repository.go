package repository

import (
	"github.com/tribute-next/internal/models"

	"gorm.io/gorm"
)

// MilestoneRepository 时间线里程碑数据访问接口
type MilestoneRepository interface {
	ListOrdered() ([]models.Milestone, error)
	Create(milestone *models.Milestone) error
}

// GormMilestoneRepository GORM 里程碑仓储实现
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository 创建里程碑仓储
func NewMilestoneRepository(db *gorm.DB) *GormMilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// ListOrdered 按排序权重返回全部里程碑
func (r *GormMilestoneRepository) ListOrdered() ([]models.Milestone, error) {
	var milestones []models.Milestone
	if err := r.db.Order("sort_order asc, id asc").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// Create 创建里程碑
func (r *GormMilestoneRepository) Create(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}
