package dto

// ── 课程目录模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Code                string   `json:"code"                   binding:"required,min=2,max=32"`
	Title               string   `json:"title"                  binding:"required,min=2,max=200"`
	Credits             float64  `json:"credits"                binding:"required,min=0,max=30"`
	LectureHoursPerWeek *float64 `json:"lecture_hours_per_week" binding:"omitempty,min=0,max=60"`
	LabHoursPerWeek     *float64 `json:"lab_hours_per_week"     binding:"omitempty,min=0,max=60"`
	ContactHoursPerWeek *float64 `json:"contact_hours_per_week" binding:"omitempty,min=0,max=60"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Title               *string  `json:"title"                  binding:"omitempty,min=2,max=200"`
	Credits             *float64 `json:"credits"                binding:"omitempty,min=0,max=30"`
	LectureHoursPerWeek *float64 `json:"lecture_hours_per_week" binding:"omitempty,min=0,max=60"`
	LabHoursPerWeek     *float64 `json:"lab_hours_per_week"     binding:"omitempty,min=0,max=60"`
	ContactHoursPerWeek *float64 `json:"contact_hours_per_week" binding:"omitempty,min=0,max=60"`
	IsActive            *bool    `json:"is_active"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID                  string   `json:"id"`
	Code                string   `json:"code"`
	Title               string   `json:"title"`
	Credits             float64  `json:"credits"`
	LectureHoursPerWeek *float64 `json:"lecture_hours_per_week,omitempty"`
	LabHoursPerWeek     *float64 `json:"lab_hours_per_week,omitempty"`
	ContactHoursPerWeek *float64 `json:"contact_hours_per_week,omitempty"`
	IsActive            bool     `json:"is_active"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// CourseBrief 课程简要信息（嵌入开课/区段响应）
type CourseBrief struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}
