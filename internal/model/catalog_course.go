package model

// CatalogCourse 课程目录表 — 对应 catalog_courses
// 对排课核心而言为只读：周学时数据驱动课时达标计算
type CatalogCourse struct {
	CourseID            string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code                string   `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Title               string   `gorm:"type:varchar(200);not null"                     json:"title"`
	Credits             float64  `gorm:"type:numeric(4,2);not null;default:0"           json:"credits"`
	LectureHoursPerWeek *float64 `gorm:"type:numeric(5,2)"                              json:"lecture_hours_per_week,omitempty"`
	LabHoursPerWeek     *float64 `gorm:"type:numeric(5,2)"                              json:"lab_hours_per_week,omitempty"`
	ContactHoursPerWeek *float64 `gorm:"type:numeric(5,2)"                              json:"contact_hours_per_week,omitempty"` // 讲课/实验拆分缺失时的回退值
	Description         string   `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive            bool     `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (CatalogCourse) TableName() string { return "catalog_courses" }
