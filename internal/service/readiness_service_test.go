package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Elzorno/AOP/internal/model"
)

// ── 测试辅助 ──

func floatPtr(f float64) *float64 { return &f }

func setupReadinessTest(t *testing.T) (ReadinessService, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	// cache 为 nil：降级为实时计算
	svc := NewReadinessService(repo, nil, NewConflictService(repo, zap.NewNop()), zap.NewNop())

	m.term.terms["term-1"] = &model.Term{
		TermID:      "term-1",
		Code:        "2026FA",
		Name:        "Fall 2026",
		WeeksInTerm: 15,
	}
	return svc, m
}

// seedSectionWithBlocks 构造区段及其上课时段（含课程关联）
func seedSectionWithBlocks(m *mocks, id string, course *model.CatalogCourse, blocks []model.MeetingBlock) {
	m.section.sections[id] = &model.Section{
		SectionID:     id,
		SectionCode:   "001",
		Modality:      model.ModalityInPerson,
		Offering:      &model.Offering{TermID: "term-1", Course: course},
		MeetingBlocks: blocks,
	}
}

// ── 纯计算测试 ──

func TestRequiredInstructionalMinutes(t *testing.T) {
	cases := []struct {
		name   string
		course *model.CatalogCourse
		weeks  int
		want   int
	}{
		{
			"三学分纯讲授",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(3)},
			15,
			2250, // 3 × 750
		},
		{
			"讲授加实验",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(3), LabHoursPerWeek: floatPtr(3)},
			15,
			4500, // 3×750 + (3/3)×2250
		},
		{
			"总接触学时兜底",
			&model.CatalogCourse{ContactHoursPerWeek: floatPtr(4)},
			15,
			3000, // 按讲授口径 4 × 750
		},
		{
			"讲授存在时不触发兜底",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(2), ContactHoursPerWeek: floatPtr(10)},
			15,
			1500,
		},
		{
			"非 15 周线性缩放",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(3)},
			10,
			1500, // 2250 × 10/15
		},
		{
			"缩放结果四舍五入",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(1)},
			7,
			350, // 750 × 7/15 = 350
		},
		{
			"无学时要求为零",
			&model.CatalogCourse{},
			15,
			0,
		},
		{
			"周数非法按 15 周基准",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(3)},
			0,
			2250,
		},
		{
			"讲授显式为零且实验缺失时触发兜底",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(0), ContactHoursPerWeek: floatPtr(4)},
			15,
			3000,
		},
		{
			"讲授实验同时给出为零不触发兜底",
			&model.CatalogCourse{LectureHoursPerWeek: floatPtr(0), LabHoursPerWeek: floatPtr(0), ContactHoursPerWeek: floatPtr(4)},
			15,
			0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := requiredInstructionalMinutes(tc.course, tc.weeks); got != tc.want {
				t.Errorf("期望 %d，实际 %d", tc.want, got)
			}
		})
	}
}

func TestScheduledInstructionalMinutes(t *testing.T) {
	blocks := []model.MeetingBlock{
		{Days: model.DayList{"Mon", "Wed", "Fri"}, StartsAt: "10:00", EndsAt: "10:50"},
	}
	// 3 天 × 50 分钟 × 15 周
	if got := scheduledInstructionalMinutes(blocks, 15); got != 2250 {
		t.Errorf("期望 2250，实际 %d", got)
	}
	if got := scheduledInstructionalMinutes(nil, 15); got != 0 {
		t.Errorf("空时段应为 0，实际 %d", got)
	}
}

func TestOfficeHoursWeekly(t *testing.T) {
	blocks := []model.OfficeHourBlock{
		{Days: model.DayList{"Mon", "Wed"}, StartsAt: "13:00", EndsAt: "14:00"},
		{Days: model.DayList{"Wed", "Fri"}, StartsAt: "09:00", EndsAt: "10:30"},
	}
	weekly, days := officeHoursWeekly(blocks)
	if weekly != 300 { // 2×60 + 2×90
		t.Errorf("期望周时长 300，实际 %d", weekly)
	}
	if days != 3 { // Mon, Wed, Fri 去重
		t.Errorf("期望覆盖 3 天，实际 %d", days)
	}
}

// ── ComputeReadiness 测试 ──

func TestReadinessService_MinutesCompliance(t *testing.T) {
	svc, m := setupReadinessTest(t)

	// 区段 A：3 学分讲授，3×50 分钟/周 刚好达标
	seedSectionWithBlocks(m, "sec-pass",
		&model.CatalogCourse{Code: "CS101", LectureHoursPerWeek: floatPtr(3)},
		[]model.MeetingBlock{
			{Days: model.DayList{"Mon", "Wed", "Fri"}, StartsAt: "10:00", EndsAt: "10:50"},
		})
	// 区段 B：同课程要求但只排了一天
	seedSectionWithBlocks(m, "sec-fail",
		&model.CatalogCourse{Code: "MATH200", LectureHoursPerWeek: floatPtr(3)},
		[]model.MeetingBlock{
			{Days: model.DayList{"Mon"}, StartsAt: "10:00", EndsAt: "10:50"},
		})

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	if len(report.Minutes) != 2 {
		t.Fatalf("期望 2 行分钟数合规，实际 %d", len(report.Minutes))
	}

	// 未达标在前
	first := report.Minutes[0]
	if first.SectionID != "sec-fail" || first.Passes {
		t.Errorf("未达标区段应排在首位: %+v", first)
	}
	if first.RequiredMinutes != 2250 || first.ScheduledMinutes != 750 {
		t.Errorf("分钟数核算不符: required=%d scheduled=%d", first.RequiredMinutes, first.ScheduledMinutes)
	}
	if first.DeltaMinutes != -1500 {
		t.Errorf("期望差值 -1500，实际 %d", first.DeltaMinutes)
	}

	second := report.Minutes[1]
	if second.SectionID != "sec-pass" || !second.Passes || second.DeltaMinutes != 0 {
		t.Errorf("刚好达标区段核算不符: %+v", second)
	}

	if report.MinutesFailing != 1 || report.Ready {
		t.Errorf("期望 1 项未达标且整体未就绪: failing=%d ready=%v", report.MinutesFailing, report.Ready)
	}
}

func TestReadinessService_ZeroRequirementPasses(t *testing.T) {
	svc, m := setupReadinessTest(t)

	// 无学时要求的课程即使未排课也达标
	seedSectionWithBlocks(m, "sec-zero",
		&model.CatalogCourse{Code: "SEM100"}, nil)

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	if len(report.Minutes) != 1 || !report.Minutes[0].Passes {
		t.Errorf("零要求区段应达标: %+v", report.Minutes)
	}
}

func TestReadinessService_OfficeHoursCompliance(t *testing.T) {
	svc, m := setupReadinessTest(t)

	m.instructor.instructors["inst-full"] = &model.Instructor{
		InstructorID: "inst-full", Name: "A", IsFullTime: true, IsActive: true,
	}
	m.instructor.instructors["inst-part"] = &model.Instructor{
		InstructorID: "inst-part", Name: "B", IsFullTime: false, IsActive: true,
	}

	// 全职教师：每周 2 天 × 60 分钟 = 120 分钟，时长与天数双双不足
	m.officeHour.blocks["oh-1"] = &model.OfficeHourBlock{
		OfficeHourBlockID: "oh-1", TermID: "term-1", InstructorID: "inst-full",
		Days: model.DayList{"Mon", "Wed"}, StartsAt: "13:00", EndsAt: "14:00",
	}

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	if len(report.OfficeHours) != 2 {
		t.Fatalf("期望 2 行答疑合规，实际 %d", len(report.OfficeHours))
	}

	// 未达标的全职教师排首位
	first := report.OfficeHours[0]
	if first.InstructorID != "inst-full" || first.Passes {
		t.Errorf("未达标全职教师应排首位: %+v", first)
	}
	if first.WeeklyMinutes != 120 || first.DistinctDays != 2 {
		t.Errorf("答疑核算不符: weekly=%d days=%d", first.WeeklyMinutes, first.DistinctDays)
	}
	if first.MeetsMinutes || first.MeetsDistinctDays {
		t.Errorf("时长与天数均应不足: %+v", first)
	}

	// 兼职教师无答疑也达标
	second := report.OfficeHours[1]
	if second.InstructorID != "inst-part" || !second.Passes {
		t.Errorf("兼职教师应恒达标: %+v", second)
	}

	if report.OfficeHoursFailing != 1 || report.Ready {
		t.Errorf("期望 1 名教师未达标: failing=%d ready=%v", report.OfficeHoursFailing, report.Ready)
	}
}

func TestReadinessService_InactiveInstructorExcluded(t *testing.T) {
	svc, m := setupReadinessTest(t)

	m.instructor.instructors["inst-gone"] = &model.Instructor{
		InstructorID: "inst-gone", Name: "Z", IsFullTime: true, IsActive: false,
	}
	m.instructor.instructors["inst-here"] = &model.Instructor{
		InstructorID: "inst-here", Name: "A", IsFullTime: true, IsActive: true,
	}

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	// 离职教师不承担答疑政策，不应出现在报表中
	if len(report.OfficeHours) != 1 || report.OfficeHours[0].InstructorID != "inst-here" {
		t.Errorf("报表应只含在职教师: %+v", report.OfficeHours)
	}
}

func TestReadinessService_OfficeHoursLockStateAttached(t *testing.T) {
	svc, m := setupReadinessTest(t)

	m.instructor.instructors["inst-a"] = &model.Instructor{
		InstructorID: "inst-a", Name: "A", IsFullTime: true, IsActive: true,
	}
	m.lock.locks["term-1/inst-a"] = &model.InstructorTermLock{
		LockID: "lock-1", TermID: "term-1", InstructorID: "inst-a", OfficeHoursLocked: true,
	}

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	if len(report.OfficeHours) != 1 || !report.OfficeHours[0].OfficeHoursLocked {
		t.Errorf("锁定状态应随行透出: %+v", report.OfficeHours)
	}
}

func TestReadinessService_MissingDataAndConflictPairs(t *testing.T) {
	svc, m := setupReadinessTest(t)

	// 区段 A：有时段但未指派教师、未指定教室
	seedSectionWithBlocks(m, "sec-a",
		&model.CatalogCourse{Code: "CS101"},
		[]model.MeetingBlock{
			{Days: model.DayList{"Mon"}, StartsAt: "10:00", EndsAt: "10:50"},
		})
	// 区段 B：未排任何时段
	seedSectionWithBlocks(m, "sec-b", &model.CatalogCourse{Code: "CS102"}, nil)

	// 同教室两个重叠时段构成 1 个冲突对
	seedClassBlock(m, "mb-1", "CS201", "001", nil, strPtr("R101"), model.DayList{"Tue"}, "09:00", "10:00")
	seedClassBlock(m, "mb-2", "CS201", "002", nil, strPtr("R101"), model.DayList{"Tue"}, "09:30", "10:30")

	report, err := svc.ComputeReadiness(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("就绪度计算应成功: %v", err)
	}
	if report.Missing.SectionsMissingInstructor != 2 {
		t.Errorf("期望 2 个区段缺教师，实际 %d", report.Missing.SectionsMissingInstructor)
	}
	if report.Missing.SectionsWithoutBlocks != 1 {
		t.Errorf("期望 1 个区段未排时段，实际 %d", report.Missing.SectionsWithoutBlocks)
	}
	if report.Missing.BlocksMissingRoom != 1 {
		t.Errorf("期望 1 个时段缺教室，实际 %d", report.Missing.BlocksMissingRoom)
	}
	if report.ConflictPairs != 1 {
		t.Errorf("期望 1 个冲突对，实际 %d", report.ConflictPairs)
	}
	if report.Ready {
		t.Error("存在缺失项与冲突时整体不应就绪")
	}
}

func TestReadinessService_TermNotFound(t *testing.T) {
	svc, _ := setupReadinessTest(t)

	_, err := svc.ComputeReadiness(context.Background(), "nonexistent")
	if !errors.Is(err, ErrTermNotFound) {
		t.Errorf("期望 ErrTermNotFound，实际: %v", err)
	}
}
