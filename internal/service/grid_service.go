package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 周课表网格 ──

// 网格行粒度（分钟）与空窗口兜底
const (
	gridRowMinutes     = 5
	defaultWindowStart = 8 * 60  // 08:00
	defaultWindowEnd   = 18 * 60 // 18:00
)

// 网格单元类型
const (
	gridKindClass       = "class"
	gridKindOfficeHours = "office_hours"
)

// GridService 周课表网格业务接口
type GridService interface {
	// 教师周视图（课程 + 答疑）
	InstructorGrid(ctx context.Context, termID, instructorID string) (*dto.GridResponse, error)
	// 教室周视图
	RoomGrid(ctx context.Context, termID, roomID string) (*dto.GridResponse, error)
}

type gridService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGridService 创建 GridService 实例
func NewGridService(repo *repository.Repository, logger *zap.Logger) GridService {
	return &gridService{repo: repo, logger: logger}
}

// gridEntry 参与网格布局的时段（课程与答疑的公共投影）
type gridEntry struct {
	blockID  string
	kind     string
	label    string
	days     model.DayList
	startsAt string
	endsAt   string
}

func (s *gridService) InstructorGrid(ctx context.Context, termID, instructorID string) (*dto.GridResponse, error) {
	if err := s.ensureTerm(ctx, termID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Instructor.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	blocks, err := s.repo.MeetingBlock.ListByTermAndInstructor(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("查询教师课程时段失败", zap.Error(err))
		return nil, err
	}
	offices, err := s.repo.OfficeHourBlock.ListByTermAndInstructor(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("查询教师答疑时段失败", zap.Error(err))
		return nil, err
	}

	entries := make([]gridEntry, 0, len(blocks)+len(offices))
	for i := range blocks {
		mb := &blocks[i]
		entries = append(entries, gridEntry{
			blockID:  mb.MeetingBlockID,
			kind:     gridKindClass,
			label:    formatMeetingBlockLabel(mb),
			days:     mb.Days,
			startsAt: clock(mb.StartsAt),
			endsAt:   clock(mb.EndsAt),
		})
	}
	for i := range offices {
		ob := &offices[i]
		entries = append(entries, gridEntry{
			blockID:  ob.OfficeHourBlockID,
			kind:     gridKindOfficeHours,
			label:    formatOfficeHourLabel(ob),
			days:     ob.Days,
			startsAt: clock(ob.StartsAt),
			endsAt:   clock(ob.EndsAt),
		})
	}
	return buildGrid(termID, entries), nil
}

func (s *gridService) RoomGrid(ctx context.Context, termID, roomID string) (*dto.GridResponse, error) {
	if err := s.ensureTerm(ctx, termID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Room.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	blocks, err := s.repo.MeetingBlock.ListByTermAndRoom(ctx, termID, roomID)
	if err != nil {
		s.logger.Error("查询教室时段失败", zap.Error(err))
		return nil, err
	}

	entries := make([]gridEntry, 0, len(blocks))
	for i := range blocks {
		mb := &blocks[i]
		entries = append(entries, gridEntry{
			blockID:  mb.MeetingBlockID,
			kind:     gridKindClass,
			label:    formatMeetingBlockLabel(mb),
			days:     mb.Days,
			startsAt: clock(mb.StartsAt),
			endsAt:   clock(mb.EndsAt),
		})
	}
	return buildGrid(termID, entries), nil
}

func (s *gridService) ensureTerm(ctx context.Context, termID string) error {
	if _, err := s.repo.Term.GetByID(ctx, termID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return err
	}
	return nil
}

// computeWindow 网格时间窗口：最早开始/最晚结束向外取整到整点
func computeWindow(entries []gridEntry) (startMin, endMin int) {
	if len(entries) == 0 {
		return defaultWindowStart, defaultWindowEnd
	}
	startMin, endMin = minutesPerDay, 0
	for _, e := range entries {
		if t := toMinutes(e.startsAt); t < startMin {
			startMin = t
		}
		if t := toMinutes(e.endsAt); t > endMin {
			endMin = t
		}
	}
	startMin = (startMin / 60) * 60
	if endMin%60 != 0 {
		endMin = (endMin/60 + 1) * 60
	}
	if endMin > minutesPerDay {
		endMin = minutesPerDay
	}
	return startMin, endMin
}

// buildGrid 按星期分列、按窗口行偏移布局
//
// 工作日恒出现；周末仅在有时段时出现。同列单元按开始
// 时刻排序，重叠时段并列呈现不做合并。
func buildGrid(termID string, entries []gridEntry) *dto.GridResponse {
	windowStart, windowEnd := computeWindow(entries)

	byDay := make(map[string][]*dto.GridCell)
	for _, e := range entries {
		start := toMinutes(e.startsAt)
		span := durationMinutes(e.startsAt, e.endsAt)
		cell := &dto.GridCell{
			BlockID:  e.blockID,
			Kind:     e.kind,
			Label:    e.label,
			StartsAt: e.startsAt,
			EndsAt:   e.endsAt,
			StartRow: (start - windowStart) / gridRowMinutes,
			RowSpan:  span / gridRowMinutes,
		}
		for _, d := range e.days {
			byDay[d] = append(byDay[d], cell)
		}
	}

	days := []*dto.GridDay{}
	for i, token := range model.WeekdayTokens {
		cells := byDay[token]
		weekend := i >= 5
		if weekend && len(cells) == 0 {
			continue
		}
		if cells == nil {
			cells = []*dto.GridCell{}
		}
		sort.SliceStable(cells, func(a, b int) bool {
			return cells[a].StartRow < cells[b].StartRow
		})
		days = append(days, &dto.GridDay{Day: token, Cells: cells})
	}

	return &dto.GridResponse{
		TermID:      termID,
		WindowStart: minutesToClock(windowStart),
		WindowEnd:   minutesToClock(windowEnd),
		Days:        days,
	}
}
