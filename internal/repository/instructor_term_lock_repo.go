package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Elzorno/AOP/internal/model"
)

// InstructorTermLockRepository 教师学期锁数据访问接口
//
// 锁行按 (term_id, instructor_id) 惰性创建：GetOrCreate 以
// ON CONFLICT DO NOTHING 幂等插入后回读，保证并发下不产生重复行。
type InstructorTermLockRepository interface {
	GetOrCreate(ctx context.Context, termID, instructorID string) (*model.InstructorTermLock, error)
	ListByTerm(ctx context.Context, termID string) ([]model.InstructorTermLock, error)
	Update(ctx context.Context, lock *model.InstructorTermLock) error
}

type instructorTermLockRepo struct {
	db *gorm.DB
}

// NewInstructorTermLockRepo 创建 InstructorTermLockRepository 实例
func NewInstructorTermLockRepo(db *gorm.DB) InstructorTermLockRepository {
	return &instructorTermLockRepo{db: db}
}

func (r *instructorTermLockRepo) GetOrCreate(ctx context.Context, termID, instructorID string) (*model.InstructorTermLock, error) {
	row := model.InstructorTermLock{
		TermID:            termID,
		InstructorID:      instructorID,
		OfficeHoursLocked: false,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "term_id"}, {Name: "instructor_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	// 冲突路径下 Create 不回填已有行，统一回读
	var lock model.InstructorTermLock
	err = r.db.WithContext(ctx).
		Where("term_id = ? AND instructor_id = ?", termID, instructorID).
		First(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *instructorTermLockRepo) ListByTerm(ctx context.Context, termID string) ([]model.InstructorTermLock, error) {
	var locks []model.InstructorTermLock
	err := r.db.WithContext(ctx).
		Where("term_id = ?", termID).
		Find(&locks).Error
	return locks, err
}

func (r *instructorTermLockRepo) Update(ctx context.Context, lock *model.InstructorTermLock) error {
	return r.db.WithContext(ctx).Save(lock).Error
}
