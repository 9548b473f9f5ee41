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

// ── 冲突检测模块业务错误 ──

// ConflictError 排课冲突（按类别携带冲突方标签）
//
// 创建/更新时段被冲突拒绝时返回该错误；预检（CheckCandidateBlock）
// 不返回它，冲突在预检中是数据不是错误。
type ConflictError struct {
	Room        []string
	Instructor  []string
	OfficeHours []string
}

func (e *ConflictError) Error() string {
	return "存在排课冲突"
}

// HasAny 是否存在任一类别的冲突
func (e *ConflictError) HasAny() bool {
	return len(e.Room) > 0 || len(e.Instructor) > 0 || len(e.OfficeHours) > 0
}

// ConflictService 冲突检测业务接口
type ConflictService interface {
	// 拟排时段同步预检（候选未入库）
	CheckCandidateBlock(ctx context.Context, req *dto.CheckCandidateBlockRequest) (*dto.CheckCandidateBlockResponse, error)
	// 拟排答疑时段预检
	CheckOfficeHourCandidate(ctx context.Context, termID, instructorID string, days []string, startsAt, endsAt string, excludedOfficeID *string) (*dto.CheckCandidateBlockResponse, error)
	// 全学期教室冲突报表
	RoomConflictReport(ctx context.Context, termID string) ([]*dto.RoomConflictGroup, error)
	// 全学期教师冲突报表（含答疑时段）
	InstructorConflictReport(ctx context.Context, termID string) ([]*dto.InstructorConflictGroup, error)
	// 全学期冲突总报表
	ConflictReport(ctx context.Context, termID string) (*dto.ConflictReportResponse, error)
}

type conflictService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, logger: logger}
}

// candidateBlock 预检用的候选时段（尚未入库）
type candidateBlock struct {
	Days            model.DayList
	StartsAt        string
	EndsAt          string
	RoomID          *string
	InstructorID    *string
	ExcludedBlockID *string
}

// ════════════════════════════════════════════════════════════
// CheckCandidateBlock — 同步预检
// ════════════════════════════════════════════════════════════

func (s *conflictService) CheckCandidateBlock(ctx context.Context, req *dto.CheckCandidateBlockRequest) (*dto.CheckCandidateBlockResponse, error) {
	term, err := s.repo.Term.GetByID(ctx, req.TermID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	cand := &candidateBlock{
		Days:            model.NormalizeDayTokens(req.Days),
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		RoomID:          req.RoomID,
		InstructorID:    req.InstructorID,
		ExcludedBlockID: req.ExcludedBlockID,
	}

	cerr, err := s.collectConflicts(ctx, term, cand)
	if err != nil {
		return nil, err
	}

	return &dto.CheckCandidateBlockResponse{
		HasConflict: cerr.HasAny(),
		Room:        cerr.Room,
		Instructor:  cerr.Instructor,
		OfficeHours: cerr.OfficeHours,
	}, nil
}

// CheckOfficeHourCandidate 拟排答疑时段预检
//
// 与课程路径共用缓冲与重叠语义，排除项作用于答疑时段自身。
func (s *conflictService) CheckOfficeHourCandidate(ctx context.Context, termID, instructorID string, days []string, startsAt, endsAt string, excludedOfficeID *string) (*dto.CheckCandidateBlockResponse, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	classLabels, officeLabels, err := s.instructorConflictsForOffice(
		ctx, term, instructorID, model.NormalizeDayTokens(days), startsAt, endsAt, excludedOfficeID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckCandidateBlockResponse{
		HasConflict: len(classLabels) > 0 || len(officeLabels) > 0,
		Room:        []string{},
		Instructor:  classLabels,
		OfficeHours: officeLabels,
	}, nil
}

// collectConflicts 汇总候选时段的三类冲突标签
//
// 供预检与时段写入路径共用，缓冲统一取学期配置。
func (s *conflictService) collectConflicts(ctx context.Context, term *model.Term, cand *candidateBlock) (*ConflictError, error) {
	cerr := &ConflictError{
		Room:        []string{},
		Instructor:  []string{},
		OfficeHours: []string{},
	}

	if cand.RoomID != nil {
		labels, err := s.roomConflicts(ctx, term, cand)
		if err != nil {
			return nil, err
		}
		cerr.Room = labels
	}

	if cand.InstructorID != nil {
		classLabels, officeLabels, err := s.instructorConflictsForClass(ctx, term, cand)
		if err != nil {
			return nil, err
		}
		cerr.Instructor = classLabels
		cerr.OfficeHours = officeLabels
	}

	return cerr, nil
}

// roomConflicts 候选时段与同教室已有时段的冲突标签
func (s *conflictService) roomConflicts(ctx context.Context, term *model.Term, cand *candidateBlock) ([]string, error) {
	blocks, err := s.repo.MeetingBlock.ListByTermAndRoom(ctx, term.TermID, *cand.RoomID)
	if err != nil {
		s.logger.Error("查询教室时段失败", zap.Error(err))
		return nil, err
	}

	labels := []string{}
	for i := range blocks {
		mb := &blocks[i]
		if cand.ExcludedBlockID != nil && mb.MeetingBlockID == *cand.ExcludedBlockID {
			continue
		}
		if dayOverlap(cand.Days, mb.Days) &&
			timesOverlap(cand.StartsAt, cand.EndsAt, mb.StartsAt, mb.EndsAt, term.BufferMinutes) {
			labels = append(labels, formatMeetingBlockLabel(mb))
		}
	}
	return labels, nil
}

// instructorConflictsForClass 候选课程时段与同教师已有课程/答疑时段的冲突标签
func (s *conflictService) instructorConflictsForClass(ctx context.Context, term *model.Term, cand *candidateBlock) (classLabels, officeLabels []string, err error) {
	classLabels = []string{}
	officeLabels = []string{}

	blocks, err := s.repo.MeetingBlock.ListByTermAndInstructor(ctx, term.TermID, *cand.InstructorID)
	if err != nil {
		s.logger.Error("查询教师课程时段失败", zap.Error(err))
		return nil, nil, err
	}
	for i := range blocks {
		mb := &blocks[i]
		if cand.ExcludedBlockID != nil && mb.MeetingBlockID == *cand.ExcludedBlockID {
			continue
		}
		if dayOverlap(cand.Days, mb.Days) &&
			timesOverlap(cand.StartsAt, cand.EndsAt, mb.StartsAt, mb.EndsAt, term.BufferMinutes) {
			classLabels = append(classLabels, formatMeetingBlockLabel(mb))
		}
	}

	offices, err := s.repo.OfficeHourBlock.ListByTermAndInstructor(ctx, term.TermID, *cand.InstructorID)
	if err != nil {
		s.logger.Error("查询教师答疑时段失败", zap.Error(err))
		return nil, nil, err
	}
	for i := range offices {
		ob := &offices[i]
		if dayOverlap(cand.Days, ob.Days) &&
			timesOverlap(cand.StartsAt, cand.EndsAt, ob.StartsAt, ob.EndsAt, term.BufferMinutes) {
			officeLabels = append(officeLabels, formatOfficeHourLabel(ob))
		}
	}
	return classLabels, officeLabels, nil
}

// instructorConflictsForOffice 候选答疑时段与同教师已有课程/答疑时段的冲突标签
//
// 与课程路径共享同一缓冲与重叠语义，仅排除项作用于答疑时段自身。
func (s *conflictService) instructorConflictsForOffice(ctx context.Context, term *model.Term, instructorID string, days model.DayList, startsAt, endsAt string, excludedOfficeID *string) (classLabels, officeLabels []string, err error) {
	classLabels = []string{}
	officeLabels = []string{}

	blocks, err := s.repo.MeetingBlock.ListByTermAndInstructor(ctx, term.TermID, instructorID)
	if err != nil {
		s.logger.Error("查询教师课程时段失败", zap.Error(err))
		return nil, nil, err
	}
	for i := range blocks {
		mb := &blocks[i]
		if dayOverlap(days, mb.Days) &&
			timesOverlap(startsAt, endsAt, mb.StartsAt, mb.EndsAt, term.BufferMinutes) {
			classLabels = append(classLabels, formatMeetingBlockLabel(mb))
		}
	}

	offices, err := s.repo.OfficeHourBlock.ListByTermAndInstructor(ctx, term.TermID, instructorID)
	if err != nil {
		s.logger.Error("查询教师答疑时段失败", zap.Error(err))
		return nil, nil, err
	}
	for i := range offices {
		ob := &offices[i]
		if excludedOfficeID != nil && ob.OfficeHourBlockID == *excludedOfficeID {
			continue
		}
		if dayOverlap(days, ob.Days) &&
			timesOverlap(startsAt, endsAt, ob.StartsAt, ob.EndsAt, term.BufferMinutes) {
			officeLabels = append(officeLabels, formatOfficeHourLabel(ob))
		}
	}
	return classLabels, officeLabels, nil
}

// ════════════════════════════════════════════════════════════
// RoomConflictReport — 全学期教室冲突对
// ════════════════════════════════════════════════════════════

func (s *conflictService) RoomConflictReport(ctx context.Context, termID string) ([]*dto.RoomConflictGroup, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}

	blocks, err := s.repo.MeetingBlock.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期时段失败", zap.Error(err))
		return nil, err
	}

	// 按教室分组（无教室的时段不参与教室冲突）
	byRoom := make(map[string][]*model.MeetingBlock)
	rooms := make(map[string]*model.Room)
	for i := range blocks {
		mb := &blocks[i]
		if mb.RoomID == nil {
			continue
		}
		byRoom[*mb.RoomID] = append(byRoom[*mb.RoomID], mb)
		if mb.Room != nil {
			rooms[*mb.RoomID] = mb.Room
		}
	}

	groups := []*dto.RoomConflictGroup{}
	for roomID, rbs := range byRoom {
		pairs := pairwiseClassConflicts(rbs, term.BufferMinutes)
		if len(pairs) == 0 {
			continue
		}
		brief := dto.RoomBrief{ID: roomID}
		if r := rooms[roomID]; r != nil {
			brief.Name = r.Name
		}
		groups = append(groups, &dto.RoomConflictGroup{Room: brief, Pairs: pairs})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Room.Name != groups[j].Room.Name {
			return groups[i].Room.Name < groups[j].Room.Name
		}
		return groups[i].Room.ID < groups[j].Room.ID
	})
	return groups, nil
}

// ════════════════════════════════════════════════════════════
// InstructorConflictReport — 全学期教师冲突对
// ════════════════════════════════════════════════════════════

func (s *conflictService) InstructorConflictReport(ctx context.Context, termID string) ([]*dto.InstructorConflictGroup, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}

	blocks, err := s.repo.MeetingBlock.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期时段失败", zap.Error(err))
		return nil, err
	}
	offices, err := s.repo.OfficeHourBlock.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期答疑时段失败", zap.Error(err))
		return nil, err
	}

	// 按教师分组（未分配教师的区段不参与教师冲突）
	classBy := make(map[string][]*model.MeetingBlock)
	names := make(map[string]string)
	for i := range blocks {
		mb := &blocks[i]
		if mb.Section == nil || mb.Section.InstructorID == nil {
			continue
		}
		id := *mb.Section.InstructorID
		classBy[id] = append(classBy[id], mb)
		if mb.Section.Instructor != nil {
			names[id] = mb.Section.Instructor.Name
		}
	}
	officeBy := make(map[string][]*model.OfficeHourBlock)
	for i := range offices {
		ob := &offices[i]
		officeBy[ob.InstructorID] = append(officeBy[ob.InstructorID], ob)
		if ob.Instructor != nil {
			names[ob.InstructorID] = ob.Instructor.Name
		}
	}

	ids := make(map[string]bool)
	for id := range classBy {
		ids[id] = true
	}
	for id := range officeBy {
		ids[id] = true
	}

	groups := []*dto.InstructorConflictGroup{}
	for id := range ids {
		pairs := pairwiseClassConflicts(classBy[id], term.BufferMinutes)

		obs := officeBy[id]
		for i := 0; i < len(obs); i++ {
			for j := i + 1; j < len(obs); j++ {
				if dayOverlap(obs[i].Days, obs[j].Days) &&
					timesOverlap(obs[i].StartsAt, obs[i].EndsAt, obs[j].StartsAt, obs[j].EndsAt, term.BufferMinutes) {
					pairs = append(pairs, dto.ConflictPair{
						Kind:   dto.ConflictKindOfficeVsOffice,
						LabelA: formatOfficeHourLabel(obs[i]),
						LabelB: formatOfficeHourLabel(obs[j]),
					})
				}
			}
		}
		for _, mb := range classBy[id] {
			for _, ob := range obs {
				if dayOverlap(mb.Days, ob.Days) &&
					timesOverlap(mb.StartsAt, mb.EndsAt, ob.StartsAt, ob.EndsAt, term.BufferMinutes) {
					pairs = append(pairs, dto.ConflictPair{
						Kind:   dto.ConflictKindClassVsOffice,
						LabelA: formatMeetingBlockLabel(mb),
						LabelB: formatOfficeHourLabel(ob),
					})
				}
			}
		}

		if len(pairs) == 0 {
			continue
		}
		groups = append(groups, &dto.InstructorConflictGroup{
			Instructor: dto.InstructorBrief{ID: id, Name: names[id]},
			Pairs:      pairs,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Instructor.Name != groups[j].Instructor.Name {
			return groups[i].Instructor.Name < groups[j].Instructor.Name
		}
		return groups[i].Instructor.ID < groups[j].Instructor.ID
	})
	return groups, nil
}

func (s *conflictService) ConflictReport(ctx context.Context, termID string) (*dto.ConflictReportResponse, error) {
	rooms, err := s.RoomConflictReport(ctx, termID)
	if err != nil {
		return nil, err
	}
	instructors, err := s.InstructorConflictReport(ctx, termID)
	if err != nil {
		return nil, err
	}
	return &dto.ConflictReportResponse{
		TermID:      termID,
		Rooms:       rooms,
		Instructors: instructors,
	}, nil
}

// pairwiseClassConflicts 课程时段集合内的两两冲突对（i<j 去重）
func pairwiseClassConflicts(blocks []*model.MeetingBlock, bufferMinutes int) []dto.ConflictPair {
	pairs := []dto.ConflictPair{}
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			a, b := blocks[i], blocks[j]
			if dayOverlap(a.Days, b.Days) &&
				timesOverlap(a.StartsAt, a.EndsAt, b.StartsAt, b.EndsAt, bufferMinutes) {
				pairs = append(pairs, dto.ConflictPair{
					Kind:   dto.ConflictKindClassVsClass,
					LabelA: formatMeetingBlockLabel(a),
					LabelB: formatMeetingBlockLabel(b),
				})
			}
		}
	}
	return pairs
}
