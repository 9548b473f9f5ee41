package handler

import "github.com/Elzorno/AOP/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Term         *TermHandler
	Course       *CourseHandler
	Offering     *OfferingHandler
	Section      *SectionHandler
	MeetingBlock *MeetingBlockHandler
	OfficeHour   *OfficeHourHandler
	Room         *RoomHandler
	Instructor   *InstructorHandler
	Conflict     *ConflictHandler
	Readiness    *ReadinessHandler
	Lock         *LockHandler
	Grid         *GridHandler
	Export       *ExportHandler
	Publication  *PublicationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Term:         NewTermHandler(svc.Term),
		Course:       NewCourseHandler(svc.CatalogCourse),
		Offering:     NewOfferingHandler(svc.Offering),
		Section:      NewSectionHandler(svc.Section),
		MeetingBlock: NewMeetingBlockHandler(svc.MeetingBlock),
		OfficeHour:   NewOfficeHourHandler(svc.OfficeHour),
		Room:         NewRoomHandler(svc.Room),
		Instructor:   NewInstructorHandler(svc.Instructor),
		Conflict:     NewConflictHandler(svc.Conflict),
		Readiness:    NewReadinessHandler(svc.Readiness),
		Lock:         NewLockHandler(svc.Lock),
		Grid:         NewGridHandler(svc.Grid),
		Export:       NewExportHandler(svc.Export, svc.Calendar),
		Publication:  NewPublicationHandler(svc.Publication),
	}
}
