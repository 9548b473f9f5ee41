package dto

// ── 就绪度/合规模块 DTO ──

// MinutesComplianceRow 单个区段的授课分钟数合规行
type MinutesComplianceRow struct {
	SectionID        string `json:"section_id"`
	CourseCode       string `json:"course_code"`
	SectionCode      string `json:"section_code"`
	RequiredMinutes  int    `json:"required_minutes"`
	ScheduledMinutes int    `json:"scheduled_minutes"`
	DeltaMinutes     int    `json:"delta_minutes"`
	Passes           bool   `json:"passes"`
}

// OfficeHoursComplianceRow 单个教师的答疑时长合规行
type OfficeHoursComplianceRow struct {
	InstructorID      string `json:"instructor_id"`
	InstructorName    string `json:"instructor_name"`
	IsFullTime        bool   `json:"is_full_time"`
	WeeklyMinutes     int    `json:"weekly_minutes"`
	DistinctDays      int    `json:"distinct_days"`
	MeetsMinutes      bool   `json:"meets_minutes"`
	MeetsDistinctDays bool   `json:"meets_distinct_days"`
	Passes            bool   `json:"passes"`
	OfficeHoursLocked bool   `json:"office_hours_locked"`
}

// MissingDataSummary 排课缺失项计数
type MissingDataSummary struct {
	SectionsMissingInstructor int `json:"sections_missing_instructor"`
	SectionsWithoutBlocks     int `json:"sections_without_blocks"`
	BlocksMissingRoom         int `json:"blocks_missing_room"`
}

// HasAny 是否存在任一缺失项
func (m MissingDataSummary) HasAny() bool {
	return m.SectionsMissingInstructor > 0 || m.SectionsWithoutBlocks > 0 || m.BlocksMissingRoom > 0
}

// ReadinessReportResponse 学期就绪度全量报表
type ReadinessReportResponse struct {
	TermID             string                      `json:"term_id"`
	GeneratedAt        string                      `json:"generated_at"`
	Minutes            []*MinutesComplianceRow     `json:"minutes"`
	OfficeHours        []*OfficeHoursComplianceRow `json:"office_hours"`
	MinutesFailing     int                         `json:"minutes_failing"`
	OfficeHoursFailing int                         `json:"office_hours_failing"`
	Missing            MissingDataSummary          `json:"missing"`
	ConflictPairs      int                         `json:"conflict_pairs"`
	Ready              bool                        `json:"ready"`
}
