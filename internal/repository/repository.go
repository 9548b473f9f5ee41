package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Term                TermRepository
	CatalogCourse       CatalogCourseRepository
	Offering            OfferingRepository
	Section             SectionRepository
	MeetingBlock        MeetingBlockRepository
	OfficeHourBlock     OfficeHourBlockRepository
	Room                RoomRepository
	Instructor          InstructorRepository
	InstructorTermLock  InstructorTermLockRepository
	SchedulePublication SchedulePublicationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Term:                NewTermRepo(db),
		CatalogCourse:       NewCatalogCourseRepo(db),
		Offering:            NewOfferingRepo(db),
		Section:             NewSectionRepo(db),
		MeetingBlock:        NewMeetingBlockRepo(db),
		OfficeHourBlock:     NewOfficeHourBlockRepo(db),
		Room:                NewRoomRepo(db),
		Instructor:          NewInstructorRepo(db),
		InstructorTermLock:  NewInstructorTermLockRepo(db),
		SchedulePublication: NewSchedulePublicationRepo(db),
	}
}
