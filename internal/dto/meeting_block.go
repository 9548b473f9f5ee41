package dto

// ── 上课时段模块 DTO ──

// CreateMeetingBlockRequest 创建上课时段请求
type CreateMeetingBlockRequest struct {
	SectionID string   `json:"section_id" binding:"required,uuid"`
	Type      string   `json:"type"       binding:"required,oneof=lecture lab other"`
	Days      []string `json:"days"       binding:"required,min=1"` // ["Mon","Wed"]
	StartsAt  string   `json:"starts_at"  binding:"required"`       // "10:00"
	EndsAt    string   `json:"ends_at"    binding:"required"`       // "11:15"
	RoomID    *string  `json:"room_id"    binding:"omitempty,uuid"`
}

// UpdateMeetingBlockRequest 更新上课时段请求
type UpdateMeetingBlockRequest struct {
	Type     *string  `json:"type"      binding:"omitempty,oneof=lecture lab other"`
	Days     []string `json:"days"      binding:"omitempty,min=1"`
	StartsAt *string  `json:"starts_at"`
	EndsAt   *string  `json:"ends_at"`
	RoomID   *string  `json:"room_id"   binding:"omitempty,uuid"`
}

// MeetingBlockResponse 上课时段信息响应
type MeetingBlockResponse struct {
	ID        string     `json:"id"`
	SectionID string     `json:"section_id"`
	Type      string     `json:"type"`
	Days      []string   `json:"days"`
	StartsAt  string     `json:"starts_at"`
	EndsAt    string     `json:"ends_at"`
	Room      *RoomBrief `json:"room,omitempty"`
	Label     string     `json:"label"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}
