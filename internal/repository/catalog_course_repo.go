package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// CatalogCourseRepository 课程目录数据访问接口
type CatalogCourseRepository interface {
	Create(ctx context.Context, course *model.CatalogCourse) error
	GetByID(ctx context.Context, id string) (*model.CatalogCourse, error)
	List(ctx context.Context, activeOnly bool) ([]model.CatalogCourse, error)
	Update(ctx context.Context, course *model.CatalogCourse) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type catalogCourseRepo struct {
	db *gorm.DB
}

// NewCatalogCourseRepo 创建 CatalogCourseRepository 实例
func NewCatalogCourseRepo(db *gorm.DB) CatalogCourseRepository {
	return &catalogCourseRepo{db: db}
}

func (r *catalogCourseRepo) Create(ctx context.Context, course *model.CatalogCourse) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *catalogCourseRepo) GetByID(ctx context.Context, id string) (*model.CatalogCourse, error) {
	var course model.CatalogCourse
	err := r.db.WithContext(ctx).Where("course_id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *catalogCourseRepo) List(ctx context.Context, activeOnly bool) ([]model.CatalogCourse, error) {
	var courses []model.CatalogCourse
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("code ASC").Find(&courses).Error
	return courses, err
}

func (r *catalogCourseRepo) Update(ctx context.Context, course *model.CatalogCourse) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *catalogCourseRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.CatalogCourse{}).
		Where("course_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
