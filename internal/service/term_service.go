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

// ── 学期模块业务错误 ──

var (
	ErrTermNotFound     = errors.New("学期不存在")
	ErrInvalidDateRange = errors.New("结束日期必须晚于开始日期")
)

const dateLayout = "2006-01-02"

// TermService 学期业务接口
type TermService interface {
	Create(ctx context.Context, req *dto.CreateTermRequest, callerID string) (*dto.TermResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TermResponse, error)
	List(ctx context.Context) ([]dto.TermResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTermRequest, callerID string) (*dto.TermResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type termService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTermService 创建 TermService 实例
func NewTermService(repo *repository.Repository, logger *zap.Logger) TermService {
	return &termService{repo: repo, logger: logger}
}

func (s *termService) Create(ctx context.Context, req *dto.CreateTermRequest, callerID string) (*dto.TermResponse, error) {
	startsOn, err := time.Parse(dateLayout, req.StartsOn)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endsOn, err := time.Parse(dateLayout, req.EndsOn)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !endsOn.After(startsOn) {
		return nil, ErrInvalidDateRange
	}

	term := &model.Term{
		Code:        req.Code,
		Name:        req.Name,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
		WeeksInTerm: 15,
	}
	if req.WeeksInTerm != nil {
		term.WeeksInTerm = *req.WeeksInTerm
	}
	if req.BufferMinutes != nil {
		term.BufferMinutes = *req.BufferMinutes
	}
	term.CreatedBy = &callerID
	term.UpdatedBy = &callerID

	if err := s.repo.Term.Create(ctx, term); err != nil {
		s.logger.Error("创建学期失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	s.logger.Info("学期已创建", zap.String("term_id", term.TermID), zap.String("code", term.Code))
	return toTermResponse(term), nil
}

func (s *termService) GetByID(ctx context.Context, id string) (*dto.TermResponse, error) {
	term, err := s.repo.Term.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	return toTermResponse(term), nil
}

func (s *termService) List(ctx context.Context) ([]dto.TermResponse, error) {
	terms, err := s.repo.Term.List(ctx)
	if err != nil {
		s.logger.Error("查询学期列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TermResponse, 0, len(terms))
	for i := range terms {
		out = append(out, *toTermResponse(&terms[i]))
	}
	return out, nil
}

func (s *termService) Update(ctx context.Context, id string, req *dto.UpdateTermRequest, callerID string) (*dto.TermResponse, error) {
	term, err := s.repo.Term.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		term.Name = *req.Name
	}
	if req.StartsOn != nil {
		startsOn, err := time.Parse(dateLayout, *req.StartsOn)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		term.StartsOn = startsOn
	}
	if req.EndsOn != nil {
		endsOn, err := time.Parse(dateLayout, *req.EndsOn)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		term.EndsOn = endsOn
	}
	if !term.EndsOn.After(term.StartsOn) {
		return nil, ErrInvalidDateRange
	}
	if req.WeeksInTerm != nil {
		term.WeeksInTerm = *req.WeeksInTerm
	}
	if req.BufferMinutes != nil {
		term.BufferMinutes = *req.BufferMinutes
	}
	term.UpdatedBy = &callerID

	if err := s.repo.Term.Update(ctx, term); err != nil {
		s.logger.Error("更新学期失败", zap.String("term_id", id), zap.Error(err))
		return nil, err
	}
	return toTermResponse(term), nil
}

func (s *termService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Term.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermNotFound
		}
		return err
	}
	if err := s.repo.Term.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除学期失败", zap.String("term_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("学期已删除", zap.String("term_id", id), zap.String("actor", callerID))
	return nil
}

// toTermResponse model → dto 转换
func toTermResponse(term *model.Term) *dto.TermResponse {
	resp := &dto.TermResponse{
		ID:             term.TermID,
		Code:           term.Code,
		Name:           term.Name,
		StartsOn:       term.StartsOn.Format(dateLayout),
		EndsOn:         term.EndsOn.Format(dateLayout),
		WeeksInTerm:    term.WeeksInTerm,
		BufferMinutes:  term.BufferMinutes,
		ScheduleLocked: term.ScheduleLocked,
		CreatedAt:      term.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      term.UpdatedAt.Format(time.RFC3339),
	}
	if term.ScheduleLockedAt != nil {
		at := term.ScheduleLockedAt.Format(time.RFC3339)
		resp.ScheduleLockedAt = &at
	}
	resp.ScheduleLockedBy = term.ScheduleLockedBy
	return resp
}

func toTermBrief(term *model.Term) *dto.TermBrief {
	if term == nil {
		return nil
	}
	return &dto.TermBrief{ID: term.TermID, Code: term.Code, Name: term.Name}
}
