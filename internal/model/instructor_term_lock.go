package model

import "time"

// InstructorTermLock 教师学期锁表 — 对应 instructor_term_locks
// (term_id, instructor_id) 唯一；首次访问时按"未锁定"惰性创建
type InstructorTermLock struct {
	LockID              string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lock_id"`
	TermID              string     `gorm:"type:uuid;not null;index:idx_itl_term_instructor,unique" json:"term_id"`
	InstructorID        string     `gorm:"type:uuid;not null;index:idx_itl_term_instructor,unique" json:"instructor_id"`
	OfficeHoursLocked   bool       `gorm:"not null;default:false" json:"office_hours_locked"`
	OfficeHoursLockedAt *time.Time `json:"office_hours_locked_at,omitempty"`
	OfficeHoursLockedBy *string    `gorm:"type:varchar(64)" json:"office_hours_locked_by,omitempty"`
	BaseModel

	// 关联
	Term       *Term       `gorm:"foreignKey:TermID;references:TermID"             json:"term,omitempty"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID;references:InstructorID" json:"instructor,omitempty"`
}

// TableName 指定表名
func (InstructorTermLock) TableName() string { return "instructor_term_locks" }
