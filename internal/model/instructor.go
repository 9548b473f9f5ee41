package model

// Instructor 教师表 — 对应 instructors
type Instructor struct {
	InstructorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"instructor_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(200)"                              json:"email,omitempty"`
	IsFullTime   bool   `gorm:"not null;default:true"                          json:"is_full_time"` // 答疑时长规则仅约束全职教师
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Instructor) TableName() string { return "instructors" }
