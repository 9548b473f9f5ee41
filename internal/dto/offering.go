package dto

// ── 开课模块 DTO ──

// CreateOfferingRequest 创建开课请求
type CreateOfferingRequest struct {
	TermID   string `json:"term_id"   binding:"required,uuid"`
	CourseID string `json:"course_id" binding:"required,uuid"`
}

// OfferingListRequest 开课列表查询参数
type OfferingListRequest struct {
	TermID   string `form:"term_id"   binding:"omitempty,uuid"`
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// OfferingResponse 开课信息响应
type OfferingResponse struct {
	ID        string             `json:"id"`
	Term      *TermBrief         `json:"term,omitempty"`
	Course    *CourseBrief       `json:"course,omitempty"`
	Sections  []*SectionResponse `json:"sections,omitempty"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}
