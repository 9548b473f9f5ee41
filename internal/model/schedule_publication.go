package model

// SchedulePublication 课表发布记录表 — 对应 schedule_publications
// 每次发布生成一个递增版本的导出快照，公开令牌用于免登录下载
type SchedulePublication struct {
	PublicationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"publication_id"`
	TermID        string `gorm:"type:uuid;not null;index:idx_pub_term_version,unique" json:"term_id"`
	Version       int    `gorm:"not null;index:idx_pub_term_version,unique"     json:"version"`
	PublicToken   string `gorm:"type:varchar(64);not null;uniqueIndex"          json:"public_token"`
	FilePath      string `gorm:"type:varchar(500);not null"                     json:"file_path"`
	Notes         string `gorm:"type:varchar(2000)"                             json:"notes,omitempty"`
	BaseModel

	// 关联
	Term *Term `gorm:"foreignKey:TermID;references:TermID" json:"term,omitempty"`
}

// TableName 指定表名
func (SchedulePublication) TableName() string { return "schedule_publications" }
