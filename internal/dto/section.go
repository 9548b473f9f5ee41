package dto

// ── 教学区段模块 DTO ──

// CreateSectionRequest 创建区段请求
type CreateSectionRequest struct {
	OfferingID   string  `json:"offering_id"   binding:"required,uuid"`
	SectionCode  string  `json:"section_code"  binding:"required,min=1,max=16"`
	InstructorID *string `json:"instructor_id" binding:"omitempty,uuid"`
	Modality     string  `json:"modality"      binding:"required,oneof=in_person hybrid online"`
}

// UpdateSectionRequest 更新区段请求
type UpdateSectionRequest struct {
	SectionCode  *string `json:"section_code"  binding:"omitempty,min=1,max=16"`
	InstructorID *string `json:"instructor_id" binding:"omitempty,uuid"`
	Modality     *string `json:"modality"      binding:"omitempty,oneof=in_person hybrid online"`
}

// SectionListRequest 区段列表查询参数
type SectionListRequest struct {
	TermID       string `form:"term_id"       binding:"omitempty,uuid"`
	OfferingID   string `form:"offering_id"   binding:"omitempty,uuid"`
	InstructorID string `form:"instructor_id" binding:"omitempty,uuid"`
}

// SectionResponse 区段信息响应
type SectionResponse struct {
	ID            string                  `json:"id"`
	OfferingID    string                  `json:"offering_id"`
	SectionCode   string                  `json:"section_code"`
	Course        *CourseBrief            `json:"course,omitempty"`
	Instructor    *InstructorBrief        `json:"instructor,omitempty"`
	Modality      string                  `json:"modality"`
	MeetingBlocks []*MeetingBlockResponse `json:"meeting_blocks,omitempty"`
	CreatedAt     string                  `json:"created_at"`
	UpdatedAt     string                  `json:"updated_at"`
}
