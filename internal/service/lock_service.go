package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 锁定模块业务错误 ──

var (
	ErrScheduleLocked    = errors.New("学期课表已锁定，禁止修改")
	ErrOfficeHoursLocked = errors.New("该教师本学期答疑时段已锁定，禁止修改")
)

// LockService 锁定业务接口
//
// 两层锁：学期级课表锁约束全部上课时段写入；(学期, 教师) 级
// 答疑锁只约束该教师的答疑时段写入。锁记录缺失视为未锁定，
// 读取走幂等的按需建档。
type LockService interface {
	// 学期课表锁
	GetTermLock(ctx context.Context, termID string) (*dto.TermLockResponse, error)
	LockTerm(ctx context.Context, termID, actor string) (*dto.TermLockResponse, error)
	UnlockTerm(ctx context.Context, termID, actor string) (*dto.TermLockResponse, error)

	// 教师答疑锁
	GetOfficeHoursLock(ctx context.Context, termID, instructorID string) (*dto.OfficeHoursLockResponse, error)
	LockOfficeHours(ctx context.Context, termID, instructorID, actor string) (*dto.OfficeHoursLockResponse, error)
	UnlockOfficeHours(ctx context.Context, termID, instructorID, actor string) (*dto.OfficeHoursLockResponse, error)

	// 写入路径守卫
	EnsureTermUnlocked(ctx context.Context, termID string) (*model.Term, error)
	EnsureOfficeHoursUnlocked(ctx context.Context, termID, instructorID string) error
}

type lockService struct {
	repo      *repository.Repository
	readiness ReadinessService
	logger    *zap.Logger
}

// NewLockService 创建 LockService 实例
func NewLockService(repo *repository.Repository, readiness ReadinessService, logger *zap.Logger) LockService {
	return &lockService{repo: repo, readiness: readiness, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 学期课表锁
// ════════════════════════════════════════════════════════════

func (s *lockService) GetTermLock(ctx context.Context, termID string) (*dto.TermLockResponse, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	return termLockResponse(term, nil), nil
}

// LockTerm 上锁并返回非阻断的就绪度警告摘要
//
// 未达标项不会阻止上锁，仅随响应提示。
func (s *lockService) LockTerm(ctx context.Context, termID, actor string) (*dto.TermLockResponse, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	if !term.ScheduleLocked {
		now := time.Now()
		term.ScheduleLocked = true
		term.ScheduleLockedAt = &now
		term.ScheduleLockedBy = &actor
		term.UpdatedBy = &actor
		if err := s.repo.Term.Update(ctx, term); err != nil {
			s.logger.Error("锁定学期失败", zap.String("term_id", termID), zap.Error(err))
			return nil, err
		}
		s.logger.Info("学期课表已锁定", zap.String("term_id", termID), zap.String("actor", actor))
	}

	warnings := s.readinessWarnings(ctx, termID)
	return termLockResponse(term, warnings), nil
}

func (s *lockService) UnlockTerm(ctx context.Context, termID, actor string) (*dto.TermLockResponse, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	if term.ScheduleLocked {
		term.ScheduleLocked = false
		term.ScheduleLockedAt = nil
		term.ScheduleLockedBy = nil
		term.UpdatedBy = &actor
		if err := s.repo.Term.Update(ctx, term); err != nil {
			s.logger.Error("解锁学期失败", zap.String("term_id", termID), zap.Error(err))
			return nil, err
		}
		s.logger.Info("学期课表已解锁", zap.String("term_id", termID), zap.String("actor", actor))
	}
	return termLockResponse(term, nil), nil
}

// readinessWarnings 上锁时的就绪度警告摘要（失败不阻断上锁）
func (s *lockService) readinessWarnings(ctx context.Context, termID string) []string {
	report, err := s.readiness.ComputeReadiness(ctx, termID)
	if err != nil {
		s.logger.Warn("上锁时计算就绪度失败", zap.String("term_id", termID), zap.Error(err))
		return []string{"readiness check unavailable"}
	}

	warnings := []string{}
	if report.MinutesFailing > 0 {
		warnings = append(warnings,
			fmt.Sprintf("%d section(s) below required instructional minutes", report.MinutesFailing))
	}
	if report.OfficeHoursFailing > 0 {
		warnings = append(warnings,
			fmt.Sprintf("%d full-time instructor(s) below office hours policy", report.OfficeHoursFailing))
	}
	if n := report.Missing.SectionsMissingInstructor; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d section(s) missing an instructor", n))
	}
	if n := report.Missing.SectionsWithoutBlocks; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d section(s) without meeting blocks", n))
	}
	if n := report.Missing.BlocksMissingRoom; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d in-person meeting block(s) without a room", n))
	}
	if report.ConflictPairs > 0 {
		warnings = append(warnings, fmt.Sprintf("%d conflict pair(s) in the schedule", report.ConflictPairs))
	}
	return warnings
}

// ════════════════════════════════════════════════════════════
// 教师答疑锁
// ════════════════════════════════════════════════════════════

func (s *lockService) GetOfficeHoursLock(ctx context.Context, termID, instructorID string) (*dto.OfficeHoursLockResponse, error) {
	if _, err := s.getTerm(ctx, termID); err != nil {
		return nil, err
	}
	if err := s.ensureInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	lock, err := s.repo.InstructorTermLock.GetOrCreate(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("读取答疑锁失败", zap.Error(err))
		return nil, err
	}
	return officeHoursLockResponse(lock), nil
}

func (s *lockService) LockOfficeHours(ctx context.Context, termID, instructorID, actor string) (*dto.OfficeHoursLockResponse, error) {
	return s.setOfficeHoursLock(ctx, termID, instructorID, actor, true)
}

func (s *lockService) UnlockOfficeHours(ctx context.Context, termID, instructorID, actor string) (*dto.OfficeHoursLockResponse, error) {
	return s.setOfficeHoursLock(ctx, termID, instructorID, actor, false)
}

func (s *lockService) setOfficeHoursLock(ctx context.Context, termID, instructorID, actor string, locked bool) (*dto.OfficeHoursLockResponse, error) {
	if _, err := s.getTerm(ctx, termID); err != nil {
		return nil, err
	}
	if err := s.ensureInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	lock, err := s.repo.InstructorTermLock.GetOrCreate(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("读取答疑锁失败", zap.Error(err))
		return nil, err
	}

	if lock.OfficeHoursLocked != locked {
		lock.OfficeHoursLocked = locked
		if locked {
			now := time.Now()
			lock.OfficeHoursLockedAt = &now
			lock.OfficeHoursLockedBy = &actor
		} else {
			lock.OfficeHoursLockedAt = nil
			lock.OfficeHoursLockedBy = nil
		}
		lock.UpdatedBy = &actor
		if err := s.repo.InstructorTermLock.Update(ctx, lock); err != nil {
			s.logger.Error("更新答疑锁失败", zap.Error(err))
			return nil, err
		}
		s.logger.Info("答疑锁状态变更",
			zap.String("term_id", termID),
			zap.String("instructor_id", instructorID),
			zap.Bool("locked", locked),
			zap.String("actor", actor))
	}
	return officeHoursLockResponse(lock), nil
}

// ════════════════════════════════════════════════════════════
// 写入路径守卫
// ════════════════════════════════════════════════════════════

// EnsureTermUnlocked 学期存在且课表未锁定，返回学期供后续复用
func (s *lockService) EnsureTermUnlocked(ctx context.Context, termID string) (*model.Term, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	if term.IsScheduleLocked() {
		return nil, ErrScheduleLocked
	}
	return term, nil
}

// EnsureOfficeHoursUnlocked 该教师本学期答疑时段可写
func (s *lockService) EnsureOfficeHoursUnlocked(ctx context.Context, termID, instructorID string) error {
	lock, err := s.repo.InstructorTermLock.GetOrCreate(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("读取答疑锁失败", zap.Error(err))
		return err
	}
	if lock.OfficeHoursLocked {
		return ErrOfficeHoursLocked
	}
	return nil
}

// ── 内部辅助 ──

func (s *lockService) getTerm(ctx context.Context, termID string) (*model.Term, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}
	return term, nil
}

func (s *lockService) ensureInstructor(ctx context.Context, instructorID string) error {
	if _, err := s.repo.Instructor.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstructorNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return err
	}
	return nil
}

func termLockResponse(term *model.Term, warnings []string) *dto.TermLockResponse {
	resp := &dto.TermLockResponse{
		TermID:         term.TermID,
		ScheduleLocked: term.ScheduleLocked,
		Warnings:       warnings,
	}
	if term.ScheduleLockedAt != nil {
		at := term.ScheduleLockedAt.Format(time.RFC3339)
		resp.ScheduleLockedAt = &at
	}
	resp.ScheduleLockedBy = term.ScheduleLockedBy
	return resp
}

func officeHoursLockResponse(lock *model.InstructorTermLock) *dto.OfficeHoursLockResponse {
	resp := &dto.OfficeHoursLockResponse{
		TermID:            lock.TermID,
		InstructorID:      lock.InstructorID,
		OfficeHoursLocked: lock.OfficeHoursLocked,
	}
	if lock.OfficeHoursLockedAt != nil {
		at := lock.OfficeHoursLockedAt.Format(time.RFC3339)
		resp.OfficeHoursLockedAt = &at
	}
	resp.OfficeHoursLockedBy = lock.OfficeHoursLockedBy
	return resp
}
