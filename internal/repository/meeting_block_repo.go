package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
)

// MeetingBlockRepository 上课时间块数据访问接口
//
// 所有 ListByTermXxx 查询均预加载冲突标签所需关联
// （教学班 → 开课计划 → 课程、教师、教室）。
type MeetingBlockRepository interface {
	Create(ctx context.Context, block *model.MeetingBlock) error
	GetByID(ctx context.Context, id string) (*model.MeetingBlock, error)
	ListBySection(ctx context.Context, sectionID string) ([]model.MeetingBlock, error)
	ListByTerm(ctx context.Context, termID string) ([]model.MeetingBlock, error)
	ListByTermAndRoom(ctx context.Context, termID, roomID string) ([]model.MeetingBlock, error)
	ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]model.MeetingBlock, error)
	Update(ctx context.Context, block *model.MeetingBlock) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type meetingBlockRepo struct {
	db *gorm.DB
}

// NewMeetingBlockRepo 创建 MeetingBlockRepository 实例
func NewMeetingBlockRepo(db *gorm.DB) MeetingBlockRepository {
	return &meetingBlockRepo{db: db}
}

// withLabelAssociations 预加载冲突标签格式化所需的完整关联链
func (r *meetingBlockRepo) withLabelAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Section.Offering.Course").
		Preload("Section.Instructor").
		Preload("Room")
}

// joinTerm 通过教学班 → 开课计划关联限定学期
func (r *meetingBlockRepo) joinTerm(db *gorm.DB, termID string) *gorm.DB {
	return db.
		Joins("JOIN sections ON sections.section_id = meeting_blocks.section_id AND sections.deleted_at IS NULL").
		Joins("JOIN offerings ON offerings.offering_id = sections.offering_id AND offerings.deleted_at IS NULL").
		Where("offerings.term_id = ?", termID)
}

func (r *meetingBlockRepo) Create(ctx context.Context, block *model.MeetingBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *meetingBlockRepo) GetByID(ctx context.Context, id string) (*model.MeetingBlock, error) {
	var block model.MeetingBlock
	err := r.withLabelAssociations(r.db.WithContext(ctx)).
		Where("meeting_block_id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *meetingBlockRepo) ListBySection(ctx context.Context, sectionID string) ([]model.MeetingBlock, error) {
	var blocks []model.MeetingBlock
	err := r.withLabelAssociations(r.db.WithContext(ctx)).
		Where("section_id = ?", sectionID).
		Order("starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *meetingBlockRepo) ListByTerm(ctx context.Context, termID string) ([]model.MeetingBlock, error) {
	var blocks []model.MeetingBlock
	err := r.withLabelAssociations(r.joinTerm(r.db.WithContext(ctx), termID)).
		Order("meeting_blocks.starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *meetingBlockRepo) ListByTermAndRoom(ctx context.Context, termID, roomID string) ([]model.MeetingBlock, error) {
	var blocks []model.MeetingBlock
	err := r.withLabelAssociations(r.joinTerm(r.db.WithContext(ctx), termID)).
		Where("meeting_blocks.room_id = ?", roomID).
		Order("meeting_blocks.starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *meetingBlockRepo) ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]model.MeetingBlock, error) {
	var blocks []model.MeetingBlock
	err := r.withLabelAssociations(r.joinTerm(r.db.WithContext(ctx), termID)).
		Where("sections.instructor_id = ?", instructorID).
		Order("meeting_blocks.starts_at ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *meetingBlockRepo) Update(ctx context.Context, block *model.MeetingBlock) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *meetingBlockRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.MeetingBlock{}).
		Where("meeting_block_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
