package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 测试辅助 ──

func setupConflictTest(t *testing.T, bufferMinutes int) (ConflictService, *repository.Repository, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	svc := NewConflictService(repo, zap.NewNop())

	term := &model.Term{TermID: "term-1", Code: "2026FA", Name: "Fall 2026", BufferMinutes: bufferMinutes}
	m.term.terms[term.TermID] = term
	return svc, repo, m
}

// seedClassBlock 构造带完整关联链的课程时段并写入 Mock
func seedClassBlock(m *mocks, id, course, sectionCode string, instructorID, roomID *string, days model.DayList, startsAt, endsAt string) *model.MeetingBlock {
	section := &model.Section{
		SectionID:    "sec-" + id,
		SectionCode:  sectionCode,
		InstructorID: instructorID,
		Modality:     model.ModalityInPerson,
		Offering: &model.Offering{
			TermID: "term-1",
			Course: &model.CatalogCourse{Code: course},
		},
	}
	mb := &model.MeetingBlock{
		MeetingBlockID: id,
		SectionID:      section.SectionID,
		Type:           model.MeetingTypeLecture,
		Days:           days,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		RoomID:         roomID,
		Section:        section,
	}
	if roomID != nil {
		mb.Room = &model.Room{RoomID: *roomID, Name: *roomID}
	}
	m.block.blocks[id] = mb
	return mb
}

func seedOfficeBlock(m *mocks, id, instructorID string, days model.DayList, startsAt, endsAt string) *model.OfficeHourBlock {
	ob := &model.OfficeHourBlock{
		OfficeHourBlockID: id,
		TermID:            "term-1",
		InstructorID:      instructorID,
		Days:              days,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
	}
	m.officeHour.blocks[id] = ob
	return ob
}

func strPtr(s string) *string { return &s }

// ── CheckCandidateBlock 测试 ──

func TestConflictService_CheckCandidateBlock_RoomConflict(t *testing.T) {
	svc, _, m := setupConflictTest(t, 10)

	// 已有: R101 周一/周三 10:00-11:00
	seedClassBlock(m, "mb-a", "CS101", "001", nil, strPtr("R101"), model.DayList{"Mon", "Wed"}, "10:00", "11:00")

	// 候选: 同教室周一 10:55-11:30，缓冲 10 分钟内
	result, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:   "term-1",
		Days:     []string{"Mon"},
		StartsAt: "10:55",
		EndsAt:   "11:30",
		RoomID:   strPtr("R101"),
	})
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if !result.HasConflict {
		t.Fatal("应检出教室冲突")
	}
	if len(result.Room) != 1 {
		t.Fatalf("期望 1 条教室冲突，实际 %d", len(result.Room))
	}
	want := "CS101 001 (Mon,Wed 10:00-11:00, Room: R101)"
	if result.Room[0] != want {
		t.Errorf("冲突标签不符:\n期望 %s\n实际 %s", want, result.Room[0])
	}
}

func TestConflictService_CheckCandidateBlock_BufferRespected(t *testing.T) {
	svc, _, m := setupConflictTest(t, 10)

	seedClassBlock(m, "mb-a", "CS101", "001", nil, strPtr("R101"), model.DayList{"Mon", "Wed"}, "10:00", "11:00")

	// 候选: 周一 11:15-12:00，间隔 15 分钟 > 缓冲 10 分钟 → 不冲突
	result, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:   "term-1",
		Days:     []string{"Mon"},
		StartsAt: "11:15",
		EndsAt:   "12:00",
		RoomID:   strPtr("R101"),
	})
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if result.HasConflict {
		t.Errorf("缓冲之外不应冲突: %v", result.Room)
	}
}

// 预检幂等：相同候选对同一份在库排课重复预检，结果完全一致
func TestConflictService_CheckCandidateBlock_Idempotent(t *testing.T) {
	svc, _, m := setupConflictTest(t, 10)

	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), strPtr("R101"), model.DayList{"Mon", "Wed"}, "10:00", "11:00")
	seedOfficeBlock(m, "oh-a", "inst-w", model.DayList{"Mon"}, "10:30", "11:30")

	req := &dto.CheckCandidateBlockRequest{
		TermID:       "term-1",
		Days:         []string{"Mon"},
		StartsAt:     "10:30",
		EndsAt:       "11:30",
		RoomID:       strPtr("R101"),
		InstructorID: strPtr("inst-w"),
	}

	first, err := svc.CheckCandidateBlock(context.Background(), req)
	if err != nil {
		t.Fatalf("首次预检应成功: %v", err)
	}
	second, err := svc.CheckCandidateBlock(context.Background(), req)
	if err != nil {
		t.Fatalf("重复预检应成功: %v", err)
	}
	if !first.HasConflict {
		t.Fatal("候选应命中冲突")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("重复预检结果不一致:\n首次 %+v\n再次 %+v", first, second)
	}
}

func TestConflictService_CheckCandidateBlock_DayDisjoint(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	seedClassBlock(m, "mb-a", "CS101", "001", nil, strPtr("R101"), model.DayList{"Mon", "Wed"}, "10:00", "11:00")

	// 同时刻但周二，星期无交集
	result, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:   "term-1",
		Days:     []string{"Tue"},
		StartsAt: "10:00",
		EndsAt:   "11:00",
		RoomID:   strPtr("R101"),
	})
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if result.HasConflict {
		t.Error("星期无交集不应冲突")
	}
}

func TestConflictService_CheckCandidateBlock_InstructorAndOffice(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), nil, model.DayList{"Mon"}, "09:00", "10:00")
	seedOfficeBlock(m, "oh-a", "inst-w", model.DayList{"Mon"}, "09:30", "10:30")

	// 候选占用同教师周一 09:30-10:15：与课程、答疑各冲突一次
	result, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:       "term-1",
		Days:         []string{"Mon"},
		StartsAt:     "09:30",
		EndsAt:       "10:15",
		InstructorID: strPtr("inst-w"),
	})
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if !result.HasConflict {
		t.Fatal("应检出教师冲突")
	}
	if len(result.Instructor) != 1 {
		t.Errorf("期望 1 条课程冲突，实际 %d", len(result.Instructor))
	}
	if len(result.OfficeHours) != 1 {
		t.Errorf("期望 1 条答疑冲突，实际 %d", len(result.OfficeHours))
	}
	if result.OfficeHours[0] != "Office Hours (Mon 09:30-10:30)" {
		t.Errorf("答疑标签不符: %s", result.OfficeHours[0])
	}
}

func TestConflictService_CheckCandidateBlock_ExcludesSelf(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), strPtr("R101"), model.DayList{"Mon"}, "10:00", "11:00")

	// 更新 mb-a 自身时排除自身，不应与自己冲突
	result, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:          "term-1",
		Days:            []string{"Mon"},
		StartsAt:        "10:00",
		EndsAt:          "11:00",
		RoomID:          strPtr("R101"),
		InstructorID:    strPtr("inst-w"),
		ExcludedBlockID: strPtr("mb-a"),
	})
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if result.HasConflict {
		t.Errorf("排除自身后不应冲突: room=%v instructor=%v", result.Room, result.Instructor)
	}
}

func TestConflictService_CheckCandidateBlock_TermNotFound(t *testing.T) {
	svc, _, _ := setupConflictTest(t, 0)

	_, err := svc.CheckCandidateBlock(context.Background(), &dto.CheckCandidateBlockRequest{
		TermID:   "nonexistent",
		Days:     []string{"Mon"},
		StartsAt: "10:00",
		EndsAt:   "11:00",
	})
	if !errors.Is(err, ErrTermNotFound) {
		t.Errorf("期望 ErrTermNotFound，实际: %v", err)
	}
}

// ── CheckOfficeHourCandidate 测试 ──

func TestConflictService_CheckOfficeHourCandidate(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), nil, model.DayList{"Tue"}, "13:00", "14:00")
	seedOfficeBlock(m, "oh-a", "inst-w", model.DayList{"Tue"}, "13:30", "14:30")

	// 候选答疑 Tue 13:45-14:15，排除 oh-a 自身 → 仅剩课程冲突
	result, err := svc.CheckOfficeHourCandidate(context.Background(),
		"term-1", "inst-w", []string{"Tue"}, "13:45", "14:15", strPtr("oh-a"))
	if err != nil {
		t.Fatalf("预检应成功: %v", err)
	}
	if !result.HasConflict {
		t.Fatal("应检出课程冲突")
	}
	if len(result.Instructor) != 1 || len(result.OfficeHours) != 0 {
		t.Errorf("期望课程冲突 1 条、答疑冲突 0 条，实际 %d / %d",
			len(result.Instructor), len(result.OfficeHours))
	}
}

// ── 批量报表测试 ──

func TestConflictService_RoomConflictReport(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	// R101 内两个重叠时段；R202 单时段无冲突
	seedClassBlock(m, "mb-a", "CS101", "001", nil, strPtr("R101"), model.DayList{"Mon"}, "10:00", "11:00")
	seedClassBlock(m, "mb-b", "MATH200", "002", nil, strPtr("R101"), model.DayList{"Mon"}, "10:30", "11:30")
	seedClassBlock(m, "mb-c", "PHYS150", "001", nil, strPtr("R202"), model.DayList{"Mon"}, "10:00", "11:00")

	groups, err := svc.RoomConflictReport(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("报表应成功: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("期望 1 个教室分组，实际 %d", len(groups))
	}
	if groups[0].Room.ID != "R101" {
		t.Errorf("期望教室 R101，实际 %s", groups[0].Room.ID)
	}
	if len(groups[0].Pairs) != 1 {
		t.Fatalf("期望 1 对冲突，实际 %d", len(groups[0].Pairs))
	}
	if groups[0].Pairs[0].Kind != dto.ConflictKindClassVsClass {
		t.Errorf("期望 CLASS_VS_CLASS，实际 %s", groups[0].Pairs[0].Kind)
	}
}

func TestConflictService_InstructorConflictReport_AllKinds(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	// inst-w: 两门课程重叠 + 课程与答疑重叠 + 两段答疑重叠
	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), nil, model.DayList{"Mon"}, "10:00", "11:00")
	seedClassBlock(m, "mb-b", "CS102", "001", strPtr("inst-w"), nil, model.DayList{"Mon"}, "10:30", "11:30")
	seedOfficeBlock(m, "oh-a", "inst-w", model.DayList{"Mon"}, "10:45", "11:45")
	seedOfficeBlock(m, "oh-b", "inst-w", model.DayList{"Mon"}, "11:00", "12:00")

	groups, err := svc.InstructorConflictReport(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("报表应成功: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("期望 1 个教师分组，实际 %d", len(groups))
	}

	counts := map[dto.ConflictKind]int{}
	for _, p := range groups[0].Pairs {
		counts[p.Kind]++
	}
	if counts[dto.ConflictKindClassVsClass] != 1 {
		t.Errorf("期望 CLASS_VS_CLASS 1 对，实际 %d", counts[dto.ConflictKindClassVsClass])
	}
	if counts[dto.ConflictKindOfficeVsOffice] != 1 {
		t.Errorf("期望 OFFICE_VS_OFFICE 1 对，实际 %d", counts[dto.ConflictKindOfficeVsOffice])
	}
	// mb-a×oh-a, mb-a×oh-b(不重叠), mb-b×oh-a, mb-b×oh-b
	if counts[dto.ConflictKindClassVsOffice] != 3 {
		t.Errorf("期望 CLASS_VS_OFFICE 3 对，实际 %d", counts[dto.ConflictKindClassVsOffice])
	}
}

func TestConflictService_ConflictReport_Clean(t *testing.T) {
	svc, _, m := setupConflictTest(t, 0)

	seedClassBlock(m, "mb-a", "CS101", "001", strPtr("inst-w"), strPtr("R101"), model.DayList{"Mon"}, "10:00", "11:00")
	seedClassBlock(m, "mb-b", "CS102", "001", strPtr("inst-w"), strPtr("R101"), model.DayList{"Mon"}, "11:00", "12:00")

	// 首尾相接不构冲突；报表为空但不报错
	report, err := svc.ConflictReport(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("报表应成功: %v", err)
	}
	if len(report.Rooms) != 0 || len(report.Instructors) != 0 {
		t.Errorf("相邻时段不应冲突: rooms=%d instructors=%d",
			len(report.Rooms), len(report.Instructors))
	}
}
