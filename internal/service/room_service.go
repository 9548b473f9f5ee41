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

// ── 教室模块业务错误 ──

var ErrRoomNotFound = errors.New("教室不存在")

// RoomService 教室业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.RoomResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room := &model.Room{
		Name:       req.Name,
		Building:   req.Building,
		RoomNumber: req.RoomNumber,
		IsActive:   true,
	}
	room.CreatedBy = &callerID
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context, activeOnly bool) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, *toRoomResponse(&rooms[i]))
	}
	return out, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Building != nil {
		room.Building = *req.Building
	}
	if req.RoomNumber != nil {
		room.RoomNumber = *req.RoomNumber
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("更新教室失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if err := s.repo.Room.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除教室失败", zap.String("room_id", id), zap.Error(err))
		return err
	}
	return nil
}

// toRoomResponse model → dto 转换
func toRoomResponse(room *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:         room.RoomID,
		Name:       room.Name,
		Building:   room.Building,
		RoomNumber: room.RoomNumber,
		IsActive:   room.IsActive,
		CreatedAt:  room.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  room.UpdatedAt.Format(time.RFC3339),
	}
}

func toRoomBrief(room *model.Room) *dto.RoomBrief {
	if room == nil {
		return nil
	}
	return &dto.RoomBrief{ID: room.RoomID, Name: room.Name}
}
