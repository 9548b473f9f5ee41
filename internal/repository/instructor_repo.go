package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// InstructorRepository 教师数据访问接口
type InstructorRepository interface {
	Create(ctx context.Context, instructor *model.Instructor) error
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	List(ctx context.Context, activeOnly bool) ([]model.Instructor, error)
	Update(ctx context.Context, instructor *model.Instructor) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type instructorRepo struct {
	db *gorm.DB
}

// NewInstructorRepo 创建 InstructorRepository 实例
func NewInstructorRepo(db *gorm.DB) InstructorRepository {
	return &instructorRepo{db: db}
}

func (r *instructorRepo) Create(ctx context.Context, instructor *model.Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}

func (r *instructorRepo) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.WithContext(ctx).Where("instructor_id = ?", id).First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *instructorRepo) List(ctx context.Context, activeOnly bool) ([]model.Instructor, error) {
	var instructors []model.Instructor
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&instructors).Error
	return instructors, err
}

func (r *instructorRepo) Update(ctx context.Context, instructor *model.Instructor) error {
	return r.db.WithContext(ctx).Save(instructor).Error
}

func (r *instructorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Instructor{}).
		Where("instructor_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
