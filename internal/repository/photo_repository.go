package repository

import (
	"github.com/tribute-next/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository 相册照片数据访问接口
type PhotoRepository interface {
	ListActive() ([]models.Photo, error)
	Create(photo *models.Photo) error
}

// GormPhotoRepository GORM 照片仓储实现
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository 创建照片仓储
func NewPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// ListActive 返回启用中的照片（按排序权重）
func (r *GormPhotoRepository) ListActive() ([]models.Photo, error) {
	var photos []models.Photo
	if err := r.db.Where("is_active = ?", true).
		Order("sort_order asc, id asc").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// Create 创建照片
func (r *GormPhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}
