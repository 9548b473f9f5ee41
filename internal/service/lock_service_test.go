package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Elzorno/AOP/internal/model"
)

// ── 测试辅助 ──

func setupLockTest(t *testing.T) (LockService, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	readiness := NewReadinessService(repo, nil, NewConflictService(repo, zap.NewNop()), zap.NewNop())
	svc := NewLockService(repo, readiness, zap.NewNop())

	m.term.terms["term-1"] = &model.Term{
		TermID: "term-1", Code: "2026FA", Name: "Fall 2026", WeeksInTerm: 15,
	}
	return svc, m
}

// ── 学期课表锁测试 ──

func TestLockService_LockTerm(t *testing.T) {
	svc, m := setupLockTest(t)

	resp, err := svc.LockTerm(context.Background(), "term-1", "registrar")
	if err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}
	if !resp.ScheduleLocked {
		t.Fatal("响应应为已锁定")
	}
	if resp.ScheduleLockedAt == nil {
		t.Error("应记录锁定时间")
	}
	if resp.ScheduleLockedBy == nil || *resp.ScheduleLockedBy != "registrar" {
		t.Errorf("应记录操作人 registrar: %v", resp.ScheduleLockedBy)
	}

	term := m.term.terms["term-1"]
	if !term.ScheduleLocked || term.ScheduleLockedBy == nil {
		t.Error("锁定状态应落库")
	}
}

func TestLockService_LockTerm_Idempotent(t *testing.T) {
	svc, m := setupLockTest(t)

	if _, err := svc.LockTerm(context.Background(), "term-1", "a"); err != nil {
		t.Fatalf("首次上锁应成功: %v", err)
	}
	firstBy := *m.term.terms["term-1"].ScheduleLockedBy

	// 重复上锁不改写原始锁定人
	if _, err := svc.LockTerm(context.Background(), "term-1", "b"); err != nil {
		t.Fatalf("重复上锁应成功: %v", err)
	}
	if got := *m.term.terms["term-1"].ScheduleLockedBy; got != firstBy {
		t.Errorf("重复上锁不应改写锁定人: %s", got)
	}
}

func TestLockService_LockTerm_ReadinessWarnings(t *testing.T) {
	svc, m := setupLockTest(t)

	// 一个分钟数未达标的区段：警告不阻断上锁
	m.section.sections["sec-1"] = &model.Section{
		SectionID:   "sec-1",
		SectionCode: "001",
		Offering: &model.Offering{
			TermID: "term-1",
			Course: &model.CatalogCourse{Code: "CS101", LectureHoursPerWeek: floatPtr(3)},
		},
	}

	resp, err := svc.LockTerm(context.Background(), "term-1", "registrar")
	if err != nil {
		t.Fatalf("未达标不应阻断上锁: %v", err)
	}
	if !resp.ScheduleLocked {
		t.Fatal("应成功上锁")
	}
	// 该区段同时触发：分钟数未达标、未指派教师、未排时段
	want := []string{
		"1 section(s) below required instructional minutes",
		"1 section(s) missing an instructor",
		"1 section(s) without meeting blocks",
	}
	if len(resp.Warnings) != len(want) {
		t.Fatalf("期望 %d 条警告，实际 %v", len(want), resp.Warnings)
	}
	for i, w := range want {
		if resp.Warnings[i] != w {
			t.Errorf("警告文案不符: got %q want %q", resp.Warnings[i], w)
		}
	}
}

func TestLockService_UnlockTerm(t *testing.T) {
	svc, m := setupLockTest(t)

	if _, err := svc.LockTerm(context.Background(), "term-1", "a"); err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}
	resp, err := svc.UnlockTerm(context.Background(), "term-1", "b")
	if err != nil {
		t.Fatalf("解锁应成功: %v", err)
	}
	if resp.ScheduleLocked {
		t.Error("响应应为未锁定")
	}

	term := m.term.terms["term-1"]
	if term.ScheduleLocked || term.ScheduleLockedAt != nil || term.ScheduleLockedBy != nil {
		t.Error("解锁应清空锁定时间与操作人")
	}
}

func TestLockService_EnsureTermUnlocked(t *testing.T) {
	svc, _ := setupLockTest(t)

	// 未锁定时放行并返回学期
	term, err := svc.EnsureTermUnlocked(context.Background(), "term-1")
	if err != nil {
		t.Fatalf("未锁定应放行: %v", err)
	}
	if term.TermID != "term-1" {
		t.Errorf("应返回学期实体: %+v", term)
	}

	if _, err := svc.LockTerm(context.Background(), "term-1", "a"); err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}
	if _, err := svc.EnsureTermUnlocked(context.Background(), "term-1"); !errors.Is(err, ErrScheduleLocked) {
		t.Errorf("锁定后写入应被拒绝，实际: %v", err)
	}
}

func TestLockService_TermNotFound(t *testing.T) {
	svc, _ := setupLockTest(t)

	if _, err := svc.GetTermLock(context.Background(), "nonexistent"); !errors.Is(err, ErrTermNotFound) {
		t.Errorf("期望 ErrTermNotFound，实际: %v", err)
	}
}

// ── 教师答疑锁测试 ──

func TestLockService_GetOfficeHoursLock_ImplicitlyUnlocked(t *testing.T) {
	svc, m := setupLockTest(t)
	m.instructor.instructors["inst-a"] = &model.Instructor{
		InstructorID: "inst-a", Name: "A", IsActive: true,
	}

	// 无锁记录时按需建档并视为未锁定
	resp, err := svc.GetOfficeHoursLock(context.Background(), "term-1", "inst-a")
	if err != nil {
		t.Fatalf("读取应成功: %v", err)
	}
	if resp.OfficeHoursLocked {
		t.Error("缺失锁记录应视为未锁定")
	}

	// 幂等：重复读取命中同一条记录
	if _, err := svc.GetOfficeHoursLock(context.Background(), "term-1", "inst-a"); err != nil {
		t.Fatalf("重复读取应成功: %v", err)
	}
	if len(m.lock.locks) != 1 {
		t.Errorf("按需建档应幂等，实际 %d 条记录", len(m.lock.locks))
	}
}

func TestLockService_LockAndUnlockOfficeHours(t *testing.T) {
	svc, m := setupLockTest(t)
	m.instructor.instructors["inst-a"] = &model.Instructor{
		InstructorID: "inst-a", Name: "A", IsActive: true,
	}

	resp, err := svc.LockOfficeHours(context.Background(), "term-1", "inst-a", "chair")
	if err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}
	if !resp.OfficeHoursLocked || resp.OfficeHoursLockedAt == nil {
		t.Errorf("应为锁定并记录时间: %+v", resp)
	}
	if resp.OfficeHoursLockedBy == nil || *resp.OfficeHoursLockedBy != "chair" {
		t.Errorf("应记录操作人 chair: %v", resp.OfficeHoursLockedBy)
	}

	if err := svc.EnsureOfficeHoursUnlocked(context.Background(), "term-1", "inst-a"); !errors.Is(err, ErrOfficeHoursLocked) {
		t.Errorf("锁定后写入应被拒绝，实际: %v", err)
	}

	resp, err = svc.UnlockOfficeHours(context.Background(), "term-1", "inst-a", "chair")
	if err != nil {
		t.Fatalf("解锁应成功: %v", err)
	}
	if resp.OfficeHoursLocked || resp.OfficeHoursLockedAt != nil || resp.OfficeHoursLockedBy != nil {
		t.Errorf("解锁应清空锁定信息: %+v", resp)
	}

	if err := svc.EnsureOfficeHoursUnlocked(context.Background(), "term-1", "inst-a"); err != nil {
		t.Errorf("解锁后应放行: %v", err)
	}
}

func TestLockService_OfficeHoursLock_InstructorNotFound(t *testing.T) {
	svc, _ := setupLockTest(t)

	_, err := svc.LockOfficeHours(context.Background(), "term-1", "nonexistent", "chair")
	if !errors.Is(err, ErrInstructorNotFound) {
		t.Errorf("期望 ErrInstructorNotFound，实际: %v", err)
	}
}
