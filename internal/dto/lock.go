package dto

// ── 锁定模块 DTO ──

// TermLockResponse 学期排课锁状态响应
//
// 上锁操作返回非阻断的就绪度警告摘要：警告不会阻止上锁，
// 仅提示仍有未达标项。
type TermLockResponse struct {
	TermID           string   `json:"term_id"`
	ScheduleLocked   bool     `json:"schedule_locked"`
	ScheduleLockedAt *string  `json:"schedule_locked_at,omitempty"`
	ScheduleLockedBy *string  `json:"schedule_locked_by,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// OfficeHoursLockResponse 教师答疑锁状态响应
type OfficeHoursLockResponse struct {
	TermID              string  `json:"term_id"`
	InstructorID        string  `json:"instructor_id"`
	OfficeHoursLocked   bool    `json:"office_hours_locked"`
	OfficeHoursLockedAt *string `json:"office_hours_locked_at,omitempty"`
	OfficeHoursLockedBy *string `json:"office_hours_locked_by,omitempty"`
}
