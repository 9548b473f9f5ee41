package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// OfferingRepository 开课计划数据访问接口
type OfferingRepository interface {
	Create(ctx context.Context, offering *model.Offering) error
	GetByID(ctx context.Context, id string) (*model.Offering, error)
	ListByTerm(ctx context.Context, termID string) ([]model.Offering, error)
	Update(ctx context.Context, offering *model.Offering) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type offeringRepo struct {
	db *gorm.DB
}

// NewOfferingRepo 创建 OfferingRepository 实例
func NewOfferingRepo(db *gorm.DB) OfferingRepository {
	return &offeringRepo{db: db}
}

func (r *offeringRepo) Create(ctx context.Context, offering *model.Offering) error {
	return r.db.WithContext(ctx).Create(offering).Error
}

func (r *offeringRepo) GetByID(ctx context.Context, id string) (*model.Offering, error) {
	var offering model.Offering
	err := r.db.WithContext(ctx).
		Preload("Term").
		Preload("Course").
		Where("offering_id = ?", id).
		First(&offering).Error
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepo) ListByTerm(ctx context.Context, termID string) ([]model.Offering, error) {
	var offerings []model.Offering
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("term_id = ?", termID).
		Find(&offerings).Error
	return offerings, err
}

func (r *offeringRepo) Update(ctx context.Context, offering *model.Offering) error {
	return r.db.WithContext(ctx).Save(offering).Error
}

func (r *offeringRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Offering{}).
		Where("offering_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
