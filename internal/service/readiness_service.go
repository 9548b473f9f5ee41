package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
	"github.com/Elzorno/AOP/pkg/redis"
)

// ── 就绪度模块常量 ──

const (
	// 15 周基准学期下，每学分讲授/实验课对应的总分钟数
	lectureMinutesPerCredit = 750
	labMinutesPerCredit     = 2250
	baselineWeeks           = 15

	// 实验学分 = 每周实验接触学时 / 3
	labContactHoursPerCredit = 3

	// 全职教师每周答疑最低要求
	minOfficeMinutesPerWeek = 240
	minOfficeDistinctDays   = 3

	readinessCacheTTL = 5 * time.Minute
)

// ReadinessService 就绪度业务接口
type ReadinessService interface {
	// 计算学期就绪度报表（带缓存）
	ComputeReadiness(ctx context.Context, termID string) (*dto.ReadinessReportResponse, error)
	// 失效学期就绪度缓存（排课数据变更后调用）
	InvalidateReadiness(ctx context.Context, termID string)
}

type readinessService struct {
	repo      *repository.Repository
	cache     *redis.Client
	conflicts ConflictService
	logger    *zap.Logger
}

// NewReadinessService 创建 ReadinessService 实例
func NewReadinessService(repo *repository.Repository, cache *redis.Client, conflicts ConflictService, logger *zap.Logger) ReadinessService {
	return &readinessService{repo: repo, cache: cache, conflicts: conflicts, logger: logger}
}

// ── 纯计算 ──

// requiredInstructionalMinutes 学期应排授课总分钟数
//
// 15 周基准：讲授学分×750 + 实验学分×2250，按实际周数线性
// 缩放后四舍五入。周数非法（≤0 的遗留数据）按 15 周基准核算。
// 讲授/实验合计为零且未同时显式给出时，总接触学时按讲授口径
// 兜底；两者同时给出（即使为零）不触发兜底。
func requiredInstructionalMinutes(course *model.CatalogCourse, weeksInTerm int) int {
	if weeksInTerm <= 0 {
		weeksInTerm = baselineWeeks
	}

	var lecture, lab float64
	if course.LectureHoursPerWeek != nil {
		lecture = *course.LectureHoursPerWeek
	}
	if course.LabHoursPerWeek != nil {
		lab = *course.LabHoursPerWeek
	}
	bothPresent := course.LectureHoursPerWeek != nil && course.LabHoursPerWeek != nil
	if !bothPresent && lecture+lab <= 0 &&
		course.ContactHoursPerWeek != nil && *course.ContactHoursPerWeek > 0 {
		lecture = *course.ContactHoursPerWeek
		lab = 0
	}

	labCredits := lab / labContactHoursPerCredit
	base := lecture*lectureMinutesPerCredit + labCredits*labMinutesPerCredit
	return int(math.Round(base * float64(weeksInTerm) / baselineWeeks))
}

// scheduledInstructionalMinutes 学期实排授课总分钟数
func scheduledInstructionalMinutes(blocks []model.MeetingBlock, weeksInTerm int) int {
	weekly := 0
	for _, mb := range blocks {
		weekly += len(mb.Days) * durationMinutes(mb.StartsAt, mb.EndsAt)
	}
	return weekly * weeksInTerm
}

// officeHoursWeekly 教师答疑时段的周分钟数与覆盖天数
func officeHoursWeekly(blocks []model.OfficeHourBlock) (weeklyMinutes, distinctDays int) {
	days := make(map[string]bool)
	for _, ob := range blocks {
		weeklyMinutes += len(ob.Days) * durationMinutes(ob.StartsAt, ob.EndsAt)
		for _, d := range ob.Days {
			days[d] = true
		}
	}
	return weeklyMinutes, len(days)
}

// missingDataSummary 排课缺失项计数
//
// 线上区段不需要教室，其时段不计入缺教室项。
func missingDataSummary(sections []model.Section) dto.MissingDataSummary {
	var sum dto.MissingDataSummary
	for i := range sections {
		sec := &sections[i]
		if sec.InstructorID == nil {
			sum.SectionsMissingInstructor++
		}
		if len(sec.MeetingBlocks) == 0 {
			sum.SectionsWithoutBlocks++
		}
		if sec.IsOnline() {
			continue
		}
		for j := range sec.MeetingBlocks {
			if sec.MeetingBlocks[j].RoomID == nil {
				sum.BlocksMissingRoom++
			}
		}
	}
	return sum
}

// ════════════════════════════════════════════════════════════
// ComputeReadiness — 学期就绪度报表
// ════════════════════════════════════════════════════════════

func (s *readinessService) ComputeReadiness(ctx context.Context, termID string) (*dto.ReadinessReportResponse, error) {
	cacheKey := redis.ReadinessKey(termID)
	cached := &dto.ReadinessReportResponse{}
	if hit, err := s.cache.GetJSON(ctx, cacheKey, cached); err != nil {
		s.logger.Warn("读取就绪度缓存失败", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	sections, err := s.repo.Section.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期区段失败", zap.Error(err))
		return nil, err
	}

	minutes := minutesCompliance(term, sections)
	office, err := s.officeHoursCompliance(ctx, term)
	if err != nil {
		return nil, err
	}
	pairs, err := s.conflictPairCount(ctx, termID)
	if err != nil {
		return nil, err
	}

	report := &dto.ReadinessReportResponse{
		TermID:        termID,
		GeneratedAt:   time.Now().Format(time.RFC3339),
		Minutes:       minutes,
		OfficeHours:   office,
		Missing:       missingDataSummary(sections),
		ConflictPairs: pairs,
	}
	for _, row := range minutes {
		if !row.Passes {
			report.MinutesFailing++
		}
	}
	for _, row := range office {
		if !row.Passes {
			report.OfficeHoursFailing++
		}
	}
	report.Ready = report.MinutesFailing == 0 && report.OfficeHoursFailing == 0 &&
		!report.Missing.HasAny() && report.ConflictPairs == 0

	if err := s.cache.SetJSON(ctx, cacheKey, report, readinessCacheTTL); err != nil {
		s.logger.Warn("写入就绪度缓存失败", zap.Error(err))
	}
	return report, nil
}

// minutesCompliance 逐区段授课分钟数合规
//
// 线上区段不承担授课分钟要求之外的教室约束，但分钟数照常
// 核算。排序：未达标在前，其余按差值升序。
func minutesCompliance(term *model.Term, sections []model.Section) []*dto.MinutesComplianceRow {
	rows := []*dto.MinutesComplianceRow{}
	for i := range sections {
		sec := &sections[i]
		var course *model.CatalogCourse
		if sec.Offering != nil {
			course = sec.Offering.Course
		}
		if course == nil {
			continue
		}

		required := requiredInstructionalMinutes(course, term.WeeksInTerm)
		scheduled := scheduledInstructionalMinutes(sec.MeetingBlocks, term.WeeksInTerm)
		rows = append(rows, &dto.MinutesComplianceRow{
			SectionID:        sec.SectionID,
			CourseCode:       course.Code,
			SectionCode:      sec.SectionCode,
			RequiredMinutes:  required,
			ScheduledMinutes: scheduled,
			DeltaMinutes:     scheduled - required,
			Passes:           required == 0 || scheduled >= required,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Passes != rows[j].Passes {
			return !rows[i].Passes
		}
		return rows[i].DeltaMinutes < rows[j].DeltaMinutes
	})
	return rows
}

// conflictPairCount 全学期冲突对总数（教室组 + 教师组）
func (s *readinessService) conflictPairCount(ctx context.Context, termID string) (int, error) {
	report, err := s.conflicts.ConflictReport(ctx, termID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, g := range report.Rooms {
		n += len(g.Pairs)
	}
	for _, g := range report.Instructors {
		n += len(g.Pairs)
	}
	return n, nil
}

// officeHoursCompliance 逐教师答疑时长合规
//
// 最低时长与覆盖天数仅约束全职教师；兼职教师恒为达标。
// 排序：未达标在前，其余按周分钟数升序。
func (s *readinessService) officeHoursCompliance(ctx context.Context, term *model.Term) ([]*dto.OfficeHoursComplianceRow, error) {
	// 仅在职教师承担答疑政策，离职教师不进入报表
	const activeOnly = true
	instructors, err := s.repo.Instructor.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	offices, err := s.repo.OfficeHourBlock.ListByTerm(ctx, term.TermID)
	if err != nil {
		s.logger.Error("查询学期答疑时段失败", zap.Error(err))
		return nil, err
	}
	locks, err := s.repo.InstructorTermLock.ListByTerm(ctx, term.TermID)
	if err != nil {
		s.logger.Error("查询答疑锁失败", zap.Error(err))
		return nil, err
	}

	officeBy := make(map[string][]model.OfficeHourBlock)
	for _, ob := range offices {
		officeBy[ob.InstructorID] = append(officeBy[ob.InstructorID], ob)
	}
	// 锁记录缺失视为未锁定
	lockedBy := make(map[string]bool)
	for _, l := range locks {
		lockedBy[l.InstructorID] = l.OfficeHoursLocked
	}

	rows := []*dto.OfficeHoursComplianceRow{}
	for _, ins := range instructors {
		weekly, days := officeHoursWeekly(officeBy[ins.InstructorID])
		meetsMinutes := weekly >= minOfficeMinutesPerWeek
		meetsDays := days >= minOfficeDistinctDays
		passes := meetsMinutes && meetsDays
		if !ins.IsFullTime {
			passes = true
		}
		rows = append(rows, &dto.OfficeHoursComplianceRow{
			InstructorID:      ins.InstructorID,
			InstructorName:    ins.Name,
			IsFullTime:        ins.IsFullTime,
			WeeklyMinutes:     weekly,
			DistinctDays:      days,
			MeetsMinutes:      meetsMinutes,
			MeetsDistinctDays: meetsDays,
			Passes:            passes,
			OfficeHoursLocked: lockedBy[ins.InstructorID],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Passes != rows[j].Passes {
			return !rows[i].Passes
		}
		return rows[i].WeeklyMinutes < rows[j].WeeklyMinutes
	})
	return rows, nil
}

func (s *readinessService) InvalidateReadiness(ctx context.Context, termID string) {
	if err := s.cache.Delete(ctx, redis.ReadinessKey(termID)); err != nil {
		s.logger.Warn("失效就绪度缓存失败", zap.String("term_id", termID), zap.Error(err))
	}
}
