package model

import "time"

// Term 学期表 — 对应 terms
type Term struct {
	TermID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"term_id"`
	Code             string     `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name             string     `gorm:"type:varchar(100);not null"                     json:"name"`
	StartsOn         time.Time  `gorm:"type:date;not null"                             json:"starts_on"`
	EndsOn           time.Time  `gorm:"type:date;not null"                             json:"ends_on"`
	WeeksInTerm      int        `gorm:"type:smallint;not null;default:15"              json:"weeks_in_term"`
	BufferMinutes    int        `gorm:"type:smallint;not null;default:0"               json:"buffer_minutes"` // 所有重叠检测的全局缓冲
	ScheduleLocked   bool       `gorm:"not null;default:false"                         json:"schedule_locked"`
	ScheduleLockedAt *time.Time `json:"schedule_locked_at,omitempty"`
	ScheduleLockedBy *string    `gorm:"type:varchar(64)" json:"schedule_locked_by,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Term) TableName() string { return "terms" }

// IsScheduleLocked 学期课表是否已锁定
func (t *Term) IsScheduleLocked() bool { return t.ScheduleLocked }
