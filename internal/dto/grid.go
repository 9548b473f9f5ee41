package dto

// ── 周课表网格模块 DTO ──

// GridCell 网格中的一个时段单元
type GridCell struct {
	BlockID  string `json:"block_id"`
	Kind     string `json:"kind"` // class / office_hours
	Label    string `json:"label"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	StartRow int    `json:"start_row"` // 相对窗口起点的行偏移（每行 5 分钟）
	RowSpan  int    `json:"row_span"`
}

// GridDay 网格中的一列（一个星期标记）
type GridDay struct {
	Day   string      `json:"day"`
	Cells []*GridCell `json:"cells"`
}

// GridResponse 周课表网格响应
//
// 窗口按当周最早开始/最晚结束向外取整到整点。
type GridResponse struct {
	TermID      string     `json:"term_id"`
	WindowStart string     `json:"window_start"`
	WindowEnd   string     `json:"window_end"`
	Days        []*GridDay `json:"days"`
}
