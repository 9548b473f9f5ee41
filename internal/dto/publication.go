package dto

// ── 课表发布模块 DTO ──

// PublishScheduleRequest 发布课表请求
type PublishScheduleRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=500"`
}

// PublicationResponse 发布版本响应
type PublicationResponse struct {
	ID          string `json:"id"`
	TermID      string `json:"term_id"`
	Version     int    `json:"version"`
	PublicToken string `json:"public_token"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
	CreatedBy   string `json:"created_by,omitempty"`
}
