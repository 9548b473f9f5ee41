package service

import (
	"go.uber.org/zap"

	"github.com/Elzorno/AOP/config"
	"github.com/Elzorno/AOP/internal/repository"
	"github.com/Elzorno/AOP/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Term          TermService
	CatalogCourse CatalogCourseService
	Offering      OfferingService
	Section       SectionService
	MeetingBlock  MeetingBlockService
	OfficeHour    OfficeHourService
	Room          RoomService
	Instructor    InstructorService
	Conflict      ConflictService
	Readiness     ReadinessService
	Lock          LockService
	Grid          GridService
	Export        ExportService
	Calendar      CalendarService
	Publication   PublicationService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	conflict := NewConflictService(repo, logger)
	readiness := NewReadinessService(repo, cache, conflict, logger)
	lock := NewLockService(repo, readiness, logger)
	export := NewExportService(repo, logger)

	return &Service{
		Term:          NewTermService(repo, logger),
		CatalogCourse: NewCatalogCourseService(repo, logger),
		Offering:      NewOfferingService(repo, logger),
		Section:       NewSectionService(repo, lock, logger),
		MeetingBlock:  NewMeetingBlockService(repo, lock, conflict, readiness, logger),
		OfficeHour:    NewOfficeHourService(repo, lock, conflict, readiness, logger),
		Room:          NewRoomService(repo, logger),
		Instructor:    NewInstructorService(repo, logger),
		Conflict:      conflict,
		Readiness:     readiness,
		Lock:          lock,
		Grid:          NewGridService(repo, logger),
		Export:        export,
		Calendar:      NewCalendarService(repo, logger),
		Publication:   NewPublicationService(repo, export, cfg.Publish.Dir, logger),
	}
}
