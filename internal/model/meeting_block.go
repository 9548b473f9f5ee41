package model

// 上课时间块类型
const (
	MeetingTypeLecture = "LECTURE"
	MeetingTypeLab     = "LAB"
	MeetingTypeOther   = "OTHER"
)

// MeetingBlock 上课时间块表 — 对应 meeting_blocks
// 每周重复的教学班时间槽：星期集合 + 起止时刻（半开区间，不跨午夜）
type MeetingBlock struct {
	MeetingBlockID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"meeting_block_id"`
	SectionID      string  `gorm:"type:uuid;not null;index"                       json:"section_id"`
	Type           string  `gorm:"type:varchar(20);not null;default:'LECTURE'"    json:"type"` // LECTURE | LAB | OTHER
	Days           DayList `gorm:"column:days_json;type:jsonb;not null"           json:"days"`
	StartsAt       string  `gorm:"type:time;not null"                             json:"starts_at"` // "HH:MM"
	EndsAt         string  `gorm:"type:time;not null"                             json:"ends_at"`   // "HH:MM"，必须晚于 StartsAt
	RoomID         *string `gorm:"type:uuid;index"                                json:"room_id,omitempty"` // ONLINE 教学班为 NULL
	Notes          string  `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID;references:RoomID"       json:"room,omitempty"`
}

// TableName 指定表名
func (MeetingBlock) TableName() string { return "meeting_blocks" }
