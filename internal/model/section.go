package model

// 教学班授课形式
const (
	ModalityInPerson = "IN_PERSON"
	ModalityHybrid   = "HYBRID"
	ModalityOnline   = "ONLINE"
)

// Section 教学班表 — 对应 sections
type Section struct {
	SectionID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	OfferingID   string  `gorm:"type:uuid;not null"                             json:"offering_id"`
	SectionCode  string  `gorm:"type:varchar(20);not null"                      json:"section_code"`
	InstructorID *string `gorm:"type:uuid"                                      json:"instructor_id,omitempty"`
	Modality     string  `gorm:"type:varchar(20);not null;default:'IN_PERSON'"  json:"modality"` // IN_PERSON | HYBRID | ONLINE
	Notes        string  `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Offering      *Offering      `gorm:"foreignKey:OfferingID;references:OfferingID"       json:"offering,omitempty"`
	Instructor    *Instructor    `gorm:"foreignKey:InstructorID;references:InstructorID"   json:"instructor,omitempty"`
	MeetingBlocks []MeetingBlock `gorm:"foreignKey:SectionID"                              json:"meeting_blocks,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }

// IsOnline 纯线上教学班不占用教室
func (s *Section) IsOnline() bool { return s.Modality == ModalityOnline }
