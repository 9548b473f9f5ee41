package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// OfficeHourBlockRepository 答疑时间块数据访问接口
type OfficeHourBlockRepository interface {
	Create(ctx context.Context, block *model.OfficeHourBlock) error
	GetByID(ctx context.Context, id string) (*model.OfficeHourBlock, error)
	ListByTerm(ctx context.Context, termID string) ([]model.OfficeHourBlock, error)
	ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]model.OfficeHourBlock, error)
	Update(ctx context.Context, block *model.OfficeHourBlock) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type officeHourBlockRepo struct {
	db *gorm.DB
}

// NewOfficeHourBlockRepo 创建 OfficeHourBlockRepository 实例
func NewOfficeHourBlockRepo(db *gorm.DB) OfficeHourBlockRepository {
	return &officeHourBlockRepo{db: db}
}

func (r *officeHourBlockRepo) Create(ctx context.Context, block *model.OfficeHourBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *officeHourBlockRepo) GetByID(ctx context.Context, id string) (*model.OfficeHourBlock, error) {
	var block model.OfficeHourBlock
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("office_hour_block_id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *officeHourBlockRepo) ListByTerm(ctx context.Context, termID string) ([]model.OfficeHourBlock, error) {
	var blocks []model.OfficeHourBlock
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("term_id = ?", termID).
		Order("starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *officeHourBlockRepo) ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]model.OfficeHourBlock, error) {
	var blocks []model.OfficeHourBlock
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("term_id = ? AND instructor_id = ?", termID, instructorID).
		Order("starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *officeHourBlockRepo) Update(ctx context.Context, block *model.OfficeHourBlock) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *officeHourBlockRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.OfficeHourBlock{}).
		Where("office_hour_block_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
