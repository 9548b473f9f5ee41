package dto

// ── 学期模块 DTO ──

// CreateTermRequest 创建学期请求
type CreateTermRequest struct {
	Code          string `json:"code"           binding:"required,min=2,max=32"`
	Name          string `json:"name"           binding:"required,min=2,max=100"`
	StartsOn      string `json:"starts_on"      binding:"required"` // "2026-09-01"
	EndsOn        string `json:"ends_on"        binding:"required"` // "2026-12-18"
	WeeksInTerm   *int   `json:"weeks_in_term"  binding:"omitempty,min=1,max=30"`
	BufferMinutes *int   `json:"buffer_minutes" binding:"omitempty,min=0,max=120"`
}

// UpdateTermRequest 更新学期请求
type UpdateTermRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=100"`
	StartsOn      *string `json:"starts_on"`
	EndsOn        *string `json:"ends_on"`
	WeeksInTerm   *int    `json:"weeks_in_term"  binding:"omitempty,min=1,max=30"`
	BufferMinutes *int    `json:"buffer_minutes" binding:"omitempty,min=0,max=120"`
}

// TermResponse 学期信息响应
type TermResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	StartsOn        string  `json:"starts_on"`
	EndsOn          string  `json:"ends_on"`
	WeeksInTerm     int     `json:"weeks_in_term"`
	BufferMinutes   int     `json:"buffer_minutes"`
	ScheduleLocked  bool    `json:"schedule_locked"`
	ScheduleLockedAt *string `json:"schedule_locked_at,omitempty"`
	ScheduleLockedBy *string `json:"schedule_locked_by,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// TermBrief 学期简要信息（嵌入其他响应）
type TermBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
