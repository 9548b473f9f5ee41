package model

// Offering 开课计划表 — 对应 offerings
// 学期 × 目录课程的关联，下挂若干教学班
type Offering struct {
	OfferingID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"offering_id"`
	TermID     string `gorm:"type:uuid;not null;index:idx_offerings_term_course,unique" json:"term_id"`
	CourseID   string `gorm:"type:uuid;not null;index:idx_offerings_term_course,unique" json:"course_id"`
	Notes      string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	VersionedModel

	// 关联
	Term     *Term          `gorm:"foreignKey:TermID;references:TermID"     json:"term,omitempty"`
	Course   *CatalogCourse `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Sections []Section      `gorm:"foreignKey:OfferingID"                   json:"sections,omitempty"`
}

// TableName 指定表名
func (Offering) TableName() string { return "offerings" }
