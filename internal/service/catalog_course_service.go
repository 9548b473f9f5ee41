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

// ── 课程目录模块业务错误 ──

var ErrCourseNotFound = errors.New("目录课程不存在")

// CatalogCourseService 课程目录业务接口
type CatalogCourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type catalogCourseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogCourseService 创建 CatalogCourseService 实例
func NewCatalogCourseService(repo *repository.Repository, logger *zap.Logger) CatalogCourseService {
	return &catalogCourseService{repo: repo, logger: logger}
}

func (s *catalogCourseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course := &model.CatalogCourse{
		Code:                req.Code,
		Title:               req.Title,
		Credits:             req.Credits,
		LectureHoursPerWeek: req.LectureHoursPerWeek,
		LabHoursPerWeek:     req.LabHoursPerWeek,
		ContactHoursPerWeek: req.ContactHoursPerWeek,
		IsActive:            true,
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.CatalogCourse.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *catalogCourseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.CatalogCourse.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *catalogCourseService) List(ctx context.Context, activeOnly bool) ([]dto.CourseResponse, error) {
	courses, err := s.repo.CatalogCourse.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, *toCourseResponse(&courses[i]))
	}
	return out, nil
}

func (s *catalogCourseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.CatalogCourse.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.LectureHoursPerWeek != nil {
		course.LectureHoursPerWeek = req.LectureHoursPerWeek
	}
	if req.LabHoursPerWeek != nil {
		course.LabHoursPerWeek = req.LabHoursPerWeek
	}
	if req.ContactHoursPerWeek != nil {
		course.ContactHoursPerWeek = req.ContactHoursPerWeek
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	course.UpdatedBy = &callerID

	if err := s.repo.CatalogCourse.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *catalogCourseService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.CatalogCourse.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	if err := s.repo.CatalogCourse.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除课程失败", zap.String("course_id", id), zap.Error(err))
		return err
	}
	return nil
}

// toCourseResponse model → dto 转换
func toCourseResponse(course *model.CatalogCourse) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:                  course.CourseID,
		Code:                course.Code,
		Title:               course.Title,
		Credits:             course.Credits,
		LectureHoursPerWeek: course.LectureHoursPerWeek,
		LabHoursPerWeek:     course.LabHoursPerWeek,
		ContactHoursPerWeek: course.ContactHoursPerWeek,
		IsActive:            course.IsActive,
		CreatedAt:           course.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           course.UpdatedAt.Format(time.RFC3339),
	}
}

func toCourseBrief(course *model.CatalogCourse) *dto.CourseBrief {
	if course == nil {
		return nil
	}
	return &dto.CourseBrief{ID: course.CourseID, Code: course.Code, Title: course.Title}
}
