package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// SchedulePublicationRepository 课表发布记录数据访问接口
type SchedulePublicationRepository interface {
	Create(ctx context.Context, pub *model.SchedulePublication) error
	ListByTerm(ctx context.Context, termID string) ([]model.SchedulePublication, error)
	MaxVersion(ctx context.Context, termID string) (int, error)
	GetLatest(ctx context.Context, termID string) (*model.SchedulePublication, error)
	GetByToken(ctx context.Context, token string) (*model.SchedulePublication, error)
}

type schedulePublicationRepo struct {
	db *gorm.DB
}

// NewSchedulePublicationRepo 创建 SchedulePublicationRepository 实例
func NewSchedulePublicationRepo(db *gorm.DB) SchedulePublicationRepository {
	return &schedulePublicationRepo{db: db}
}

func (r *schedulePublicationRepo) Create(ctx context.Context, pub *model.SchedulePublication) error {
	return r.db.WithContext(ctx).Create(pub).Error
}

func (r *schedulePublicationRepo) ListByTerm(ctx context.Context, termID string) ([]model.SchedulePublication, error) {
	var pubs []model.SchedulePublication
	err := r.db.WithContext(ctx).
		Where("term_id = ?", termID).
		Order("version DESC").
		Find(&pubs).Error
	return pubs, err
}

func (r *schedulePublicationRepo) MaxVersion(ctx context.Context, termID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.SchedulePublication{}).
		Where("term_id = ?", termID).
		Select("MAX(version)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *schedulePublicationRepo) GetLatest(ctx context.Context, termID string) (*model.SchedulePublication, error) {
	var pub model.SchedulePublication
	err := r.db.WithContext(ctx).
		Where("term_id = ?", termID).
		Order("version DESC").
		First(&pub).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *schedulePublicationRepo) GetByToken(ctx context.Context, token string) (*model.SchedulePublication, error) {
	var pub model.SchedulePublication
	err := r.db.WithContext(ctx).
		Preload("Term").
		Where("public_token = ?", token).
		First(&pub).Error
	if err != nil {
		return nil, err
	}
	return &pub, nil
}
