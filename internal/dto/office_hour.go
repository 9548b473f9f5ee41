package dto

// ── 答疑时段模块 DTO ──

// CreateOfficeHourRequest 创建答疑时段请求
type CreateOfficeHourRequest struct {
	TermID       string   `json:"term_id"       binding:"required,uuid"`
	InstructorID string   `json:"instructor_id" binding:"required,uuid"`
	Days         []string `json:"days"          binding:"required,min=1"`
	StartsAt     string   `json:"starts_at"     binding:"required"`
	EndsAt       string   `json:"ends_at"       binding:"required"`
}

// UpdateOfficeHourRequest 更新答疑时段请求
type UpdateOfficeHourRequest struct {
	Days     []string `json:"days" binding:"omitempty,min=1"`
	StartsAt *string  `json:"starts_at"`
	EndsAt   *string  `json:"ends_at"`
}

// OfficeHourResponse 答疑时段信息响应
type OfficeHourResponse struct {
	ID           string   `json:"id"`
	TermID       string   `json:"term_id"`
	InstructorID string   `json:"instructor_id"`
	Days         []string `json:"days"`
	StartsAt     string   `json:"starts_at"`
	EndsAt       string   `json:"ends_at"`
	Label        string   `json:"label"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}
