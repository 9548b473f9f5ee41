package dto

// ── 冲突检测模块 DTO ──

// ConflictKind 冲突双方的组合类型
type ConflictKind string

// 冲突类别常量（报表中标注冲突双方的组合类型）
const (
	ConflictKindClassVsClass   ConflictKind = "CLASS_VS_CLASS"
	ConflictKindOfficeVsOffice ConflictKind = "OFFICE_VS_OFFICE"
	ConflictKindClassVsOffice  ConflictKind = "CLASS_VS_OFFICE"
)

// CheckCandidateBlockRequest 拟排时段冲突预检请求
//
// 候选时段尚未入库，按原始字段传入；excluded_block_id 用于
// 编辑已有时段时排除其自身。
type CheckCandidateBlockRequest struct {
	TermID          string   `json:"term_id"           binding:"required,uuid"`
	Days            []string `json:"days"              binding:"required,min=1"`
	StartsAt        string   `json:"starts_at"         binding:"required"`
	EndsAt          string   `json:"ends_at"           binding:"required"`
	RoomID          *string  `json:"room_id"           binding:"omitempty,uuid"`
	InstructorID    *string  `json:"instructor_id"     binding:"omitempty,uuid"`
	ExcludedBlockID *string  `json:"excluded_block_id" binding:"omitempty,uuid"`
}

// CheckCandidateBlockResponse 预检结果
//
// 冲突是数据不是错误：有冲突时 HTTP 仍为 200，由调用方决定
// 是否放行。
type CheckCandidateBlockResponse struct {
	HasConflict bool     `json:"has_conflict"`
	Room        []string `json:"room_conflicts"`
	Instructor  []string `json:"instructor_conflicts"`
	OfficeHours []string `json:"office_hour_conflicts"`
}

// ConflictPair 批量冲突报表中的一对冲突时段
type ConflictPair struct {
	Kind   ConflictKind `json:"kind"`
	LabelA string `json:"label_a"`
	LabelB string `json:"label_b"`
}

// RoomConflictGroup 同一教室下的冲突对集合
type RoomConflictGroup struct {
	Room  RoomBrief      `json:"room"`
	Pairs []ConflictPair `json:"pairs"`
}

// InstructorConflictGroup 同一教师名下的冲突对集合
type InstructorConflictGroup struct {
	Instructor InstructorBrief `json:"instructor"`
	Pairs      []ConflictPair  `json:"pairs"`
}

// ConflictReportResponse 全学期冲突报表
type ConflictReportResponse struct {
	TermID      string                     `json:"term_id"`
	Rooms       []*RoomConflictGroup       `json:"rooms"`
	Instructors []*InstructorConflictGroup `json:"instructors"`
}
