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

// ── 教学班模块业务错误 ──

var (
	ErrSectionNotFound = errors.New("教学班不存在")
	ErrInvalidModality = errors.New("授课形式不合法")
)

// SectionService 教学班业务接口
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SectionResponse, error)
	ListByOffering(ctx context.Context, offeringID string) ([]dto.SectionResponse, error)
	ListByTerm(ctx context.Context, termID string) ([]dto.SectionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type sectionService struct {
	repo   *repository.Repository
	locks  LockService
	logger *zap.Logger
}

// NewSectionService 创建 SectionService 实例
func NewSectionService(repo *repository.Repository, locks LockService, logger *zap.Logger) SectionService {
	return &sectionService{repo: repo, locks: locks, logger: logger}
}

// normalizeModality 请求中的授课形式（小写）→ 存储形式（大写）
func normalizeModality(raw string) (string, error) {
	switch strings.ToUpper(raw) {
	case model.ModalityInPerson:
		return model.ModalityInPerson, nil
	case model.ModalityHybrid:
		return model.ModalityHybrid, nil
	case model.ModalityOnline:
		return model.ModalityOnline, nil
	}
	return "", ErrInvalidModality
}

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	offering, err := s.repo.Offering.GetByID(ctx, req.OfferingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}

	// 学期锁定后不可新增教学班
	if _, err := s.locks.EnsureTermUnlocked(ctx, offering.TermID); err != nil {
		return nil, err
	}

	modality, err := normalizeModality(req.Modality)
	if err != nil {
		return nil, err
	}
	if req.InstructorID != nil {
		if _, err := s.repo.Instructor.GetByID(ctx, *req.InstructorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstructorNotFound
			}
			return nil, err
		}
	}

	section := &model.Section{
		OfferingID:   req.OfferingID,
		SectionCode:  req.SectionCode,
		InstructorID: req.InstructorID,
		Modality:     modality,
	}
	section.CreatedBy = &callerID
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建教学班失败", zap.String("offering_id", req.OfferingID), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, section.SectionID)
}

func (s *sectionService) GetByID(ctx context.Context, id string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}
	return toSectionResponse(section), nil
}

func (s *sectionService) ListByOffering(ctx context.Context, offeringID string) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.ListByOffering(ctx, offeringID)
	if err != nil {
		s.logger.Error("查询开课教学班失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, *toSectionResponse(&sections[i]))
	}
	return out, nil
}

func (s *sectionService) ListByTerm(ctx context.Context, termID string) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期教学班失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, *toSectionResponse(&sections[i]))
	}
	return out, nil
}

func (s *sectionService) Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
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

	if req.SectionCode != nil {
		section.SectionCode = *req.SectionCode
	}
	if req.InstructorID != nil {
		if _, err := s.repo.Instructor.GetByID(ctx, *req.InstructorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstructorNotFound
			}
			return nil, err
		}
		section.InstructorID = req.InstructorID
	}
	if req.Modality != nil {
		modality, err := normalizeModality(*req.Modality)
		if err != nil {
			return nil, err
		}
		section.Modality = modality
	}
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("更新教学班失败", zap.String("section_id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *sectionService) Delete(ctx context.Context, id string, callerID string) error {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	termID, err := s.termIDOfSection(ctx, section)
	if err != nil {
		return err
	}
	if _, err := s.locks.EnsureTermUnlocked(ctx, termID); err != nil {
		return err
	}

	if err := s.repo.Section.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除教学班失败", zap.String("section_id", id), zap.Error(err))
		return err
	}
	return nil
}

// termIDOfSection 取教学班所属学期（优先用已加载的关联）
func (s *sectionService) termIDOfSection(ctx context.Context, section *model.Section) (string, error) {
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

// toSectionResponse model → dto 转换
func toSectionResponse(section *model.Section) *dto.SectionResponse {
	resp := &dto.SectionResponse{
		ID:          section.SectionID,
		OfferingID:  section.OfferingID,
		SectionCode: section.SectionCode,
		Instructor:  toInstructorBrief(section.Instructor),
		Modality:    section.Modality,
		CreatedAt:   section.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   section.UpdatedAt.Format(time.RFC3339),
	}
	if section.Offering != nil {
		resp.Course = toCourseBrief(section.Offering.Course)
	}
	for i := range section.MeetingBlocks {
		resp.MeetingBlocks = append(resp.MeetingBlocks, toMeetingBlockResponse(&section.MeetingBlocks[i]))
	}
	return resp
}
