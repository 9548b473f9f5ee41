package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 上课时段模块业务错误 ──

var (
	ErrMeetingBlockNotFound = errors.New("上课时段不存在")
	ErrInvalidTimeRange     = errors.New("结束时刻必须晚于开始时刻")
	ErrInvalidDays          = errors.New("星期标记不合法")
	ErrInvalidMeetingType   = errors.New("时段类型不合法")
	ErrOnlineSectionRoom    = errors.New("线上教学班不可绑定教室")
)

// MeetingBlockService 上课时段业务接口
//
// 所有写入先过学期课表锁，再做合法性与冲突校验；冲突拒绝
// 通过 *ConflictError 携带冲突方标签返回。
type MeetingBlockService interface {
	Create(ctx context.Context, req *dto.CreateMeetingBlockRequest, callerID string) (*dto.MeetingBlockResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MeetingBlockResponse, error)
	ListBySection(ctx context.Context, sectionID string) ([]dto.MeetingBlockResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMeetingBlockRequest, callerID string) (*dto.MeetingBlockResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type meetingBlockService struct {
	repo      *repository.Repository
	locks     LockService
	conflicts ConflictService
	readiness ReadinessService
	logger    *zap.Logger
}

// NewMeetingBlockService 创建 MeetingBlockService 实例
func NewMeetingBlockService(repo *repository.Repository, locks LockService, conflicts ConflictService, readiness ReadinessService, logger *zap.Logger) MeetingBlockService {
	return &meetingBlockService{repo: repo, locks: locks, conflicts: conflicts, readiness: readiness, logger: logger}
}

// normalizeMeetingType 请求中的时段类型（小写）→ 存储形式（大写）
func normalizeMeetingType(raw string) (string, error) {
	switch strings.ToUpper(raw) {
	case model.MeetingTypeLecture:
		return model.MeetingTypeLecture, nil
	case model.MeetingTypeLab:
		return model.MeetingTypeLab, nil
	case model.MeetingTypeOther:
		return model.MeetingTypeOther, nil
	}
	return "", ErrInvalidMeetingType
}

// validateBlockTimes 时刻格式与半开区间合法性
func validateBlockTimes(startsAt, endsAt string) error {
	if !validClockTime(startsAt) || !validClockTime(endsAt) {
		return ErrInvalidTimeRange
	}
	if toMinutes(endsAt) <= toMinutes(startsAt) {
		return ErrInvalidTimeRange
	}
	return nil
}

func (s *meetingBlockService) Create(ctx context.Context, req *dto.CreateMeetingBlockRequest, callerID string) (*dto.MeetingBlockResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	termID, err := s.termIDOfSection(ctx, section)
	if err != nil {
		return nil, err
	}
	if _, err := s.locks.EnsureTermUnlocked(ctx, termID); err != nil {
		return nil, err
	}

	mtype, err := normalizeMeetingType(req.Type)
	if err != nil {
		return nil, err
	}
	days := model.NormalizeDayTokens(req.Days)
	if len(days) == 0 {
		return nil, ErrInvalidDays
	}
	if err := validateBlockTimes(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		if section.IsOnline() {
			return nil, ErrOnlineSectionRoom
		}
		if _, err := s.repo.Room.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
	}

	if err := s.rejectOnConflict(ctx, termID, days, req.StartsAt, req.EndsAt, req.RoomID, section.InstructorID, nil); err != nil {
		return nil, err
	}

	block := &model.MeetingBlock{
		SectionID: req.SectionID,
		Type:      mtype,
		Days:      days,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		RoomID:    req.RoomID,
	}
	block.CreatedBy = &callerID
	block.UpdatedBy = &callerID

	if err := s.repo.MeetingBlock.Create(ctx, block); err != nil {
		s.logger.Error("创建上课时段失败", zap.String("section_id", req.SectionID), zap.Error(err))
		return nil, err
	}
	s.readiness.InvalidateReadiness(ctx, termID)
	return s.GetByID(ctx, block.MeetingBlockID)
}

func (s *meetingBlockService) GetByID(ctx context.Context, id string) (*dto.MeetingBlockResponse, error) {
	block, err := s.repo.MeetingBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingBlockNotFound
		}
		s.logger.Error("查询上课时段失败", zap.Error(err))
		return nil, err
	}
	return toMeetingBlockResponse(block), nil
}

func (s *meetingBlockService) ListBySection(ctx context.Context, sectionID string) ([]dto.MeetingBlockResponse, error) {
	blocks, err := s.repo.MeetingBlock.ListBySection(ctx, sectionID)
	if err != nil {
		s.logger.Error("查询教学班时段失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.MeetingBlockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, *toMeetingBlockResponse(&blocks[i]))
	}
	return out, nil
}

func (s *meetingBlockService) Update(ctx context.Context, id string, req *dto.UpdateMeetingBlockRequest, callerID string) (*dto.MeetingBlockResponse, error) {
	block, err := s.repo.MeetingBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingBlockNotFound
		}
		return nil, err
	}
	section, err := s.repo.Section.GetByID(ctx, block.SectionID)
	if err != nil {
		return nil, err
	}
	termID, err := s.termIDOfSection(ctx, section)
	if err != nil {
		return nil, err
	}
	if _, err := s.locks.EnsureTermUnlocked(ctx, termID); err != nil {
		return nil, err
	}

	if req.Type != nil {
		mtype, err := normalizeMeetingType(*req.Type)
		if err != nil {
			return nil, err
		}
		block.Type = mtype
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
	if req.RoomID != nil {
		if section.IsOnline() {
			return nil, ErrOnlineSectionRoom
		}
		if _, err := s.repo.Room.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		block.RoomID = req.RoomID
	}

	if err := s.rejectOnConflict(ctx, termID, block.Days, clock(block.StartsAt), clock(block.EndsAt), block.RoomID, section.InstructorID, &id); err != nil {
		return nil, err
	}

	block.UpdatedBy = &callerID
	if err := s.repo.MeetingBlock.Update(ctx, block); err != nil {
		s.logger.Error("更新上课时段失败", zap.String("meeting_block_id", id), zap.Error(err))
		return nil, err
	}
	s.readiness.InvalidateReadiness(ctx, termID)
	return s.GetByID(ctx, id)
}

func (s *meetingBlockService) Delete(ctx context.Context, id string, callerID string) error {
	block, err := s.repo.MeetingBlock.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingBlockNotFound
		}
		return err
	}
	section, err := s.repo.Section.GetByID(ctx, block.SectionID)
	if err != nil {
		return err
	}
	termID, err := s.termIDOfSection(ctx, section)
	if err != nil {
		return err
	}
	if _, err := s.locks.EnsureTermUnlocked(ctx, termID); err != nil {
		return err
	}

	if err := s.repo.MeetingBlock.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除上课时段失败", zap.String("meeting_block_id", id), zap.Error(err))
		return err
	}
	s.readiness.InvalidateReadiness(ctx, termID)
	return nil
}

// rejectOnConflict 冲突即拒绝（写入路径与预检共用同一判定）
func (s *meetingBlockService) rejectOnConflict(ctx context.Context, termID string, days model.DayList, startsAt, endsAt string, roomID, instructorID, excludedID *string) error {
	check, err := s.conflicts.CheckCandidateBlock(ctx, &dto.CheckCandidateBlockRequest{
		TermID:          termID,
		Days:            days,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		RoomID:          roomID,
		InstructorID:    instructorID,
		ExcludedBlockID: excludedID,
	})
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

// termIDOfSection 取时段所属学期
func (s *meetingBlockService) termIDOfSection(ctx context.Context, section *model.Section) (string, error) {
	if section.Offering != nil {
		return section.Offering.TermID, nil
	}
	offering, err := s.repo.Offering.GetByID(ctx, section.OfferingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOfferingNotFound
		}
		return "", err
	}
	return offering.TermID, nil
}

// toMeetingBlockResponse model → dto 转换
func toMeetingBlockResponse(block *model.MeetingBlock) *dto.MeetingBlockResponse {
	return &dto.MeetingBlockResponse{
		ID:        block.MeetingBlockID,
		SectionID: block.SectionID,
		Type:      block.Type,
		Days:      block.Days,
		StartsAt:  clock(block.StartsAt),
		EndsAt:    clock(block.EndsAt),
		Room:      toRoomBrief(block.Room),
		Label:     formatMeetingBlockLabel(block),
		CreatedAt: block.CreatedAt.Format(time.RFC3339),
		UpdatedAt: block.UpdatedAt.Format(time.RFC3339),
	}
}
