package dto

// ── 教室模块 DTO ──

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	Name       string `json:"name"        binding:"required,min=1,max=64"`
	Building   string `json:"building"    binding:"omitempty,max=100"`
	RoomNumber string `json:"room_number" binding:"omitempty,max=32"`
}

// UpdateRoomRequest 更新教室请求
type UpdateRoomRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=1,max=64"`
	Building   *string `json:"building"    binding:"omitempty,max=100"`
	RoomNumber *string `json:"room_number" binding:"omitempty,max=32"`
	IsActive   *bool   `json:"is_active"`
}

// RoomResponse 教室信息响应
type RoomResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Building   string `json:"building,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// RoomBrief 教室简要信息（嵌入时段响应）
type RoomBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
