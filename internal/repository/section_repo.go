package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// SectionRepository 教学班数据访问接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id string) (*model.Section, error)
	ListByOffering(ctx context.Context, offeringID string) ([]model.Section, error)
	// ListByTerm 返回学期内全部教学班（含课程/教师/时间块关联，供达标计算使用）
	ListByTerm(ctx context.Context, termID string) ([]model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo 创建 SectionRepository 实例
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Preload("Offering.Term").
		Preload("Offering.Course").
		Preload("Instructor").
		Preload("MeetingBlocks.Room").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) ListByOffering(ctx context.Context, offeringID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("MeetingBlocks.Room").
		Where("offering_id = ?", offeringID).
		Order("section_code ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) ListByTerm(ctx context.Context, termID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Offering.Course").
		Preload("Instructor").
		Preload("MeetingBlocks.Room").
		Joins("JOIN offerings ON offerings.offering_id = sections.offering_id AND offerings.deleted_at IS NULL").
		Where("offerings.term_id = ?", termID).
		Order("sections.section_code ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

func (r *sectionRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Section{}).
		Where("section_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
