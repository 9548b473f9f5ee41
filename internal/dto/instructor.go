package dto

// ── 教师模块 DTO ──

// CreateInstructorRequest 创建教师请求
type CreateInstructorRequest struct {
	Name       string `json:"name"         binding:"required,min=2,max=100"`
	Email      string `json:"email"        binding:"required,email"`
	IsFullTime *bool  `json:"is_full_time"`
}

// UpdateInstructorRequest 更新教师请求
type UpdateInstructorRequest struct {
	Name       *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"        binding:"omitempty,email"`
	IsFullTime *bool   `json:"is_full_time"`
	IsActive   *bool   `json:"is_active"`
}

// InstructorResponse 教师信息响应
type InstructorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsFullTime bool   `json:"is_full_time"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// InstructorBrief 教师简要信息（嵌入区段/报表响应）
type InstructorBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
