package model

// OfficeHourBlock 答疑时间块表 — 对应 office_hour_blocks
// 归属 (学期, 教师)，与具体教学班无关
type OfficeHourBlock struct {
	OfficeHourBlockID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"office_hour_block_id"`
	TermID            string  `gorm:"type:uuid;not null;index"                       json:"term_id"`
	InstructorID      string  `gorm:"type:uuid;not null;index"                       json:"instructor_id"`
	Days              DayList `gorm:"column:days_json;type:jsonb;not null"           json:"days"`
	StartsAt          string  `gorm:"type:time;not null"                             json:"starts_at"`
	EndsAt            string  `gorm:"type:time;not null"                             json:"ends_at"`
	Notes             string  `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Term       *Term       `gorm:"foreignKey:TermID;references:TermID"             json:"term,omitempty"`
	Instructor *Instructor `gorm:"foreignKey:InstructorID;references:InstructorID" json:"instructor,omitempty"`
}

// TableName 指定表名
func (OfficeHourBlock) TableName() string { return "office_hour_blocks" }
