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

// ── 开课模块业务错误 ──

var ErrOfferingNotFound = errors.New("开课计划不存在")

// OfferingService 开课业务接口
type OfferingService interface {
	Create(ctx context.Context, req *dto.CreateOfferingRequest, callerID string) (*dto.OfferingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OfferingResponse, error)
	ListByTerm(ctx context.Context, termID string) ([]dto.OfferingResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type offeringService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOfferingService 创建 OfferingService 实例
func NewOfferingService(repo *repository.Repository, logger *zap.Logger) OfferingService {
	return &offeringService{repo: repo, logger: logger}
}

func (s *offeringService) Create(ctx context.Context, req *dto.CreateOfferingRequest, callerID string) (*dto.OfferingResponse, error) {
	if _, err := s.repo.Term.GetByID(ctx, req.TermID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}
	if _, err := s.repo.CatalogCourse.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	offering := &model.Offering{
		TermID:   req.TermID,
		CourseID: req.CourseID,
	}
	offering.CreatedBy = &callerID
	offering.UpdatedBy = &callerID

	if err := s.repo.Offering.Create(ctx, offering); err != nil {
		s.logger.Error("创建开课失败",
			zap.String("term_id", req.TermID),
			zap.String("course_id", req.CourseID),
			zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, offering.OfferingID)
}

func (s *offeringService) GetByID(ctx context.Context, id string) (*dto.OfferingResponse, error) {
	offering, err := s.repo.Offering.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		s.logger.Error("查询开课失败", zap.Error(err))
		return nil, err
	}
	return toOfferingResponse(offering), nil
}

func (s *offeringService) ListByTerm(ctx context.Context, termID string) ([]dto.OfferingResponse, error) {
	offerings, err := s.repo.Offering.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期开课失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.OfferingResponse, 0, len(offerings))
	for i := range offerings {
		out = append(out, *toOfferingResponse(&offerings[i]))
	}
	return out, nil
}

func (s *offeringService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Offering.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfferingNotFound
		}
		return err
	}
	if err := s.repo.Offering.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除开课失败", zap.String("offering_id", id), zap.Error(err))
		return err
	}
	return nil
}

// toOfferingResponse model → dto 转换
func toOfferingResponse(offering *model.Offering) *dto.OfferingResponse {
	resp := &dto.OfferingResponse{
		ID:        offering.OfferingID,
		Term:      toTermBrief(offering.Term),
		Course:    toCourseBrief(offering.Course),
		CreatedAt: offering.CreatedAt.Format(time.RFC3339),
		UpdatedAt: offering.UpdatedAt.Format(time.RFC3339),
	}
	for i := range offering.Sections {
		resp.Sections = append(resp.Sections, toSectionResponse(&offering.Sections[i]))
	}
	return resp
}
