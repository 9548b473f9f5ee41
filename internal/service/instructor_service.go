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

// ── 教师模块业务错误 ──

var ErrInstructorNotFound = errors.New("教师不存在")

// InstructorService 教师业务接口
type InstructorService interface {
	Create(ctx context.Context, req *dto.CreateInstructorRequest, callerID string) (*dto.InstructorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.InstructorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest, callerID string) (*dto.InstructorResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type instructorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInstructorService 创建 InstructorService 实例
func NewInstructorService(repo *repository.Repository, logger *zap.Logger) InstructorService {
	return &instructorService{repo: repo, logger: logger}
}

func (s *instructorService) Create(ctx context.Context, req *dto.CreateInstructorRequest, callerID string) (*dto.InstructorResponse, error) {
	instructor := &model.Instructor{
		Name:       req.Name,
		Email:      req.Email,
		IsFullTime: true,
		IsActive:   true,
	}
	if req.IsFullTime != nil {
		instructor.IsFullTime = *req.IsFullTime
	}
	instructor.CreatedBy = &callerID
	instructor.UpdatedBy = &callerID

	if err := s.repo.Instructor.Create(ctx, instructor); err != nil {
		s.logger.Error("创建教师失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return toInstructorResponse(instructor), nil
}

func (s *instructorService) GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error) {
	instructor, err := s.repo.Instructor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}
	return toInstructorResponse(instructor), nil
}

func (s *instructorService) List(ctx context.Context, activeOnly bool) ([]dto.InstructorResponse, error) {
	instructors, err := s.repo.Instructor.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.InstructorResponse, 0, len(instructors))
	for i := range instructors {
		out = append(out, *toInstructorResponse(&instructors[i]))
	}
	return out, nil
}

func (s *instructorService) Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest, callerID string) (*dto.InstructorResponse, error) {
	instructor, err := s.repo.Instructor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		instructor.Name = *req.Name
	}
	if req.Email != nil {
		instructor.Email = *req.Email
	}
	if req.IsFullTime != nil {
		instructor.IsFullTime = *req.IsFullTime
	}
	if req.IsActive != nil {
		instructor.IsActive = *req.IsActive
	}
	instructor.UpdatedBy = &callerID

	if err := s.repo.Instructor.Update(ctx, instructor); err != nil {
		s.logger.Error("更新教师失败", zap.String("instructor_id", id), zap.Error(err))
		return nil, err
	}
	return toInstructorResponse(instructor), nil
}

func (s *instructorService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Instructor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstructorNotFound
		}
		return err
	}
	if err := s.repo.Instructor.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除教师失败", zap.String("instructor_id", id), zap.Error(err))
		return err
	}
	return nil
}

// toInstructorResponse model → dto 转换
func toInstructorResponse(instructor *model.Instructor) *dto.InstructorResponse {
	return &dto.InstructorResponse{
		ID:         instructor.InstructorID,
		Name:       instructor.Name,
		Email:      instructor.Email,
		IsFullTime: instructor.IsFullTime,
		IsActive:   instructor.IsActive,
		CreatedAt:  instructor.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  instructor.UpdatedAt.Format(time.RFC3339),
	}
}

func toInstructorBrief(instructor *model.Instructor) *dto.InstructorBrief {
	if instructor == nil {
		return nil
	}
	return &dto.InstructorBrief{ID: instructor.InstructorID, Name: instructor.Name}
}
