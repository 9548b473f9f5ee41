package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
)

// ── 测试辅助 ──

func setupOfficeHourTest(t *testing.T) (OfficeHourService, LockService, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	logger := zap.NewNop()
	conflicts := NewConflictService(repo, logger)
	readiness := NewReadinessService(repo, nil, conflicts, logger)
	locks := NewLockService(repo, readiness, logger)
	svc := NewOfficeHourService(repo, locks, conflicts, readiness, logger)

	m.term.terms["term-1"] = &model.Term{
		TermID: "term-1", Code: "2026FA", Name: "Fall 2026", WeeksInTerm: 15,
	}
	m.instructor.instructors["inst-w"] = &model.Instructor{
		InstructorID: "inst-w", Name: "W", IsFullTime: true, IsActive: true,
	}
	return svc, locks, m
}

// ── Create 测试 ──

func TestOfficeHourService_Create_Success(t *testing.T) {
	svc, _, m := setupOfficeHourTest(t)

	resp, err := svc.Create(context.Background(), &dto.CreateOfficeHourRequest{
		TermID:       "term-1",
		InstructorID: "inst-w",
		Days:         []string{"thu", "Tue"},
		StartsAt:     "13:00",
		EndsAt:       "14:00",
	}, "chair")
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if len(resp.Days) != 2 || resp.Days[0] != "Tue" || resp.Days[1] != "Thu" {
		t.Errorf("星期应归一化为 [Tue Thu]: %v", resp.Days)
	}
	if len(m.officeHour.blocks) != 1 {
		t.Errorf("应落库 1 条，实际 %d", len(m.officeHour.blocks))
	}
}

func TestOfficeHourService_Create_RejectedOnConflict(t *testing.T) {
	svc, _, m := setupOfficeHourTest(t)

	seedOfficeBlock(m, "oh-existing", "inst-w", model.DayList{"Tue"}, "13:00", "14:00")

	_, err := svc.Create(context.Background(), &dto.CreateOfficeHourRequest{
		TermID:       "term-1",
		InstructorID: "inst-w",
		Days:         []string{"Tue"},
		StartsAt:     "13:30",
		EndsAt:       "14:30",
	}, "chair")

	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("期望 *ConflictError，实际: %v", err)
	}
	if len(cerr.OfficeHours) != 1 {
		t.Errorf("期望 1 条答疑冲突: %+v", cerr)
	}
}

func TestOfficeHourService_Create_RejectedWhenOfficeHoursLocked(t *testing.T) {
	svc, locks, _ := setupOfficeHourTest(t)

	if _, err := locks.LockOfficeHours(context.Background(), "term-1", "inst-w", "chair"); err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}

	_, err := svc.Create(context.Background(), &dto.CreateOfficeHourRequest{
		TermID:       "term-1",
		InstructorID: "inst-w",
		Days:         []string{"Tue"},
		StartsAt:     "13:00",
		EndsAt:       "14:00",
	}, "chair")
	if !errors.Is(err, ErrOfficeHoursLocked) {
		t.Errorf("期望 ErrOfficeHoursLocked，实际: %v", err)
	}
}

func TestOfficeHourService_Create_TermScheduleLockDoesNotBlock(t *testing.T) {
	svc, locks, _ := setupOfficeHourTest(t)

	// 学期课表锁只约束上课时段，答疑时段由答疑锁单独管控
	if _, err := locks.LockTerm(context.Background(), "term-1", "registrar"); err != nil {
		t.Fatalf("上锁应成功: %v", err)
	}

	if _, err := svc.Create(context.Background(), &dto.CreateOfficeHourRequest{
		TermID:       "term-1",
		InstructorID: "inst-w",
		Days:         []string{"Tue"},
		StartsAt:     "13:00",
		EndsAt:       "14:00",
	}, "chair"); err != nil {
		t.Errorf("课表锁不应阻断答疑写入: %v", err)
	}
}

// ── Update / Delete 测试 ──

func TestOfficeHourService_Update_ExcludesSelfFromConflict(t *testing.T) {
	svc, _, m := setupOfficeHourTest(t)

	seedOfficeBlock(m, "oh-1", "inst-w", model.DayList{"Tue"}, "13:00", "14:00")

	resp, err := svc.Update(context.Background(), "oh-1", &dto.UpdateOfficeHourRequest{
		EndsAt: strPtr("14:30"),
	}, "chair")
	if err != nil {
		t.Fatalf("更新应成功: %v", err)
	}
	if resp.EndsAt != "14:30" {
		t.Errorf("结束时刻应更新为 14:30: %s", resp.EndsAt)
	}
}

func TestOfficeHourService_Delete(t *testing.T) {
	svc, _, m := setupOfficeHourTest(t)

	seedOfficeBlock(m, "oh-1", "inst-w", model.DayList{"Tue"}, "13:00", "14:00")

	if err := svc.Delete(context.Background(), "oh-1", "chair"); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}
	if len(m.officeHour.blocks) != 0 {
		t.Error("删除后不应残留记录")
	}

	if err := svc.Delete(context.Background(), "oh-1", "chair"); !errors.Is(err, ErrOfficeHourNotFound) {
		t.Errorf("期望 ErrOfficeHourNotFound，实际: %v", err)
	}
}
