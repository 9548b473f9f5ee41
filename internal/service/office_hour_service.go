package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 答疑时段模块业务错误 ──

var ErrOfficeHourNotFound = errors.New("答疑时段不存在")

// OfficeHourService 答疑时段业务接口
//
// 写入先过 (学期, 教师) 答疑锁，再做冲突校验；与课程时段
// 共用统一的缓冲与重叠判定。
type OfficeHourService interface {
	Create(ctx context.Context, req *dto.CreateOfficeHourRequest, callerID string) (*dto.OfficeHourResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OfficeHourResponse, error)
	ListByTerm(ctx context.Context, termID string) ([]dto.OfficeHourResponse, error)
	ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]dto.OfficeHourResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateOfficeHourRequest, callerID string) (*dto.OfficeHourResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type officeHourService struct {
	repo      *repository.Repository
	locks     LockService
	conflicts ConflictService
	readiness ReadinessService
	logger    *zap.Logger
}

// NewOfficeHourService 创建 OfficeHourService 实例
func NewOfficeHourService(repo *repository.Repository, locks LockService, conflicts ConflictService, readiness ReadinessService, logger *zap.Logger) OfficeHourService {
	return &officeHourService{repo: repo, locks: locks, conflicts: conflicts, readiness: readiness, logger: logger}
}

func (s *officeHourService) Create(ctx context.Context, req *dto.CreateOfficeHourRequest, callerID string) (*dto.OfficeHourResponse, error) {
	if _, err := s.repo.Term.GetByID(ctx, req.TermID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Instructor.GetByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}
	if err := s.locks.EnsureOfficeHoursUnlocked(ctx, req.TermID, req.InstructorID); err != nil {
		return nil, err
	}

	days := model.NormalizeDayTokens(req.Days)
	if len(days) == 0 {
		return nil, ErrInvalidDays
	}
	if err := validateBlockTimes(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	if err := s.rejectOnConflict(ctx, req.TermID, req.InstructorID, days, req.StartsAt, req.EndsAt, nil); err != nil {
		return nil, err
	}

	block := &model.OfficeHourBlock{
		TermID:       req.TermID,
		InstructorID: req.InstructorID,
		Days:         days,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	}
	block.CreatedBy = &callerID
	block.UpdatedBy = &callerID

	if err := s.repo.OfficeHourBlock.Create(ctx, block); err != nil {
		s.logger.Error("创建答疑时段失败",
			zap.String("term_id", req.TermID),
			zap.String("instructor_id", req.InstructorID),
			zap.Error(err))
		return nil, err
	}
	s.readiness.InvalidateReadiness(ctx, req.TermID)
	return toOfficeHourResponse(block), nil
}

func (s *officeHourService) GetByID(ctx context.Context, id string) (*dto.OfficeHourResponse, error) {
	block, err := s.repo.OfficeHourBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficeHourNotFound
		}
		s.logger.Error("查询答疑时段失败", zap.Error(err))
		return nil, err
	}
	return toOfficeHourResponse(block), nil
}

func (s *officeHourService) ListByTerm(ctx context.Context, termID string) ([]dto.OfficeHourResponse, error) {
	blocks, err := s.repo.OfficeHourBlock.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期答疑时段失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.OfficeHourResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, *toOfficeHourResponse(&blocks[i]))
	}
	return out, nil
}

func (s *officeHourService) ListByTermAndInstructor(ctx context.Context, termID, instructorID string) ([]dto.OfficeHourResponse, error) {
	blocks, err := s.repo.OfficeHourBlock.ListByTermAndInstructor(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("查询教师答疑时段失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.OfficeHourResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, *toOfficeHourResponse(&blocks[i]))
	}
	return out, nil
}

func (s *officeHourService) Update(ctx context.Context, id string, req *dto.UpdateOfficeHourRequest, callerID string) (*dto.OfficeHourResponse, error) {
	block, err := s.repo.OfficeHourBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficeHourNotFound
		}
		return nil, err
	}
	if err := s.locks.EnsureOfficeHoursUnlocked(ctx, block.TermID, block.InstructorID); err != nil {
		return nil, err
	}

	if req.Days != nil {
		days := model.NormalizeDayTokens(req.Days)
		if len(days) == 0 {
			return nil, ErrInvalidDays
		}
		block.Days = days
	}
	if req.StartsAt != nil {
		block.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		block.EndsAt = *req.EndsAt
	}
	if err := validateBlockTimes(clock(block.StartsAt), clock(block.EndsAt)); err != nil {
		return nil, err
	}

	if err := s.rejectOnConflict(ctx, block.TermID, block.InstructorID, block.Days, clock(block.StartsAt), clock(block.EndsAt), &id); err != nil {
		return nil, err
	}

	block.UpdatedBy = &callerID
	if err := s.repo.OfficeHourBlock.Update(ctx, block); err != nil {
		s.logger.Error("更新答疑时段失败", zap.String("office_hour_block_id", id), zap.Error(err))
		return nil, err
	}
	s.readiness.InvalidateReadiness(ctx, block.TermID)
	return toOfficeHourResponse(block), nil
}

func (s *officeHourService) Delete(ctx context.Context, id string, callerID string) error {
	block, err := s.repo.OfficeHourBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfficeHourNotFound
		}
		return err
	}
	if err := s.locks.EnsureOfficeHoursUnlocked(ctx, block.TermID, block.InstructorID); err != nil {
		return err
	}

	if err := s.repo.OfficeHourBlock.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除答疑时段失败", zap.String("office_hour_block_id", id), zap.Error(err))
		return err
	}
	s.readiness.InvalidateReadiness(ctx, block.TermID)
	return nil
}

// rejectOnConflict 冲突即拒绝
func (s *officeHourService) rejectOnConflict(ctx context.Context, termID, instructorID string, days model.DayList, startsAt, endsAt string, excludedID *string) error {
	check, err := s.conflicts.CheckOfficeHourCandidate(ctx, termID, instructorID, days, startsAt, endsAt, excludedID)
	if err != nil {
		return err
	}
	if check.HasConflict {
		return &ConflictError{
			Room:        check.Room,
			Instructor:  check.Instructor,
			OfficeHours: check.OfficeHours,
		}
	}
	return nil
}

// toOfficeHourResponse model → dto 转换
func toOfficeHourResponse(block *model.OfficeHourBlock) *dto.OfficeHourResponse {
	return &dto.OfficeHourResponse{
		ID:           block.OfficeHourBlockID,
		TermID:       block.TermID,
		InstructorID: block.InstructorID,
		Days:         block.Days,
		StartsAt:     clock(block.StartsAt),
		EndsAt:       clock(block.EndsAt),
		Label:        formatOfficeHourLabel(block),
		CreatedAt:    block.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    block.UpdatedAt.Format(time.RFC3339),
	}
}
