package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Elzorno/AOP/config"
	"github.com/Elzorno/AOP/internal/api/handler"
	"github.com/Elzorno/AOP/internal/api/middleware"
	"github.com/Elzorno/AOP/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.Actor())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开下载（凭发布令牌，不需要调用方标识）
		public := v1.Group("/public")
		public.Use(middleware.RateLimit(rdb, 60, time.Minute))
		{
			public.GET("/publications/:token", h.Publication.Download)
		}

		// 学期模块
		terms := v1.Group("/terms")
		{
			terms.GET("", h.Term.ListTerms)
			terms.GET("/:id", h.Term.GetTerm)
			terms.POST("", h.Term.CreateTerm)
			terms.PUT("/:id", h.Term.UpdateTerm)
			terms.DELETE("/:id", h.Term.DeleteTerm)

			// 学期下属资源
			terms.GET("/:id/offerings", h.Offering.ListOfferings)
			terms.GET("/:id/office-hours", h.OfficeHour.ListOfficeHours)

			// 锁定
			terms.GET("/:id/lock", h.Lock.GetTermLock)
			terms.POST("/:id/lock", h.Lock.LockTerm)
			terms.DELETE("/:id/lock", h.Lock.UnlockTerm)
			terms.GET("/:id/instructors/:instructorId/office-hours-lock", h.Lock.GetOfficeHoursLock)
			terms.POST("/:id/instructors/:instructorId/office-hours-lock", h.Lock.LockOfficeHours)
			terms.DELETE("/:id/instructors/:instructorId/office-hours-lock", h.Lock.UnlockOfficeHours)

			// 冲突报表
			terms.GET("/:id/conflicts", h.Conflict.TermConflictReport)
			terms.GET("/:id/conflicts/rooms", h.Conflict.RoomConflictReport)
			terms.GET("/:id/conflicts/instructors", h.Conflict.InstructorConflictReport)

			// 就绪度
			terms.GET("/:id/readiness", h.Readiness.TermReadiness)

			// 周视图
			terms.GET("/:id/instructors/:instructorId/grid", h.Grid.InstructorGrid)
			terms.GET("/:id/rooms/:roomId/grid", h.Grid.RoomGrid)

			// 导出与订阅
			terms.GET("/:id/export", h.Export.ExportTermSchedule)
			terms.GET("/:id/instructors/:instructorId/calendar.ics", h.Export.InstructorCalendar)

			// 发布
			terms.POST("/:id/publications", h.Publication.Publish)
			terms.GET("/:id/publications", h.Publication.ListByTerm)
			terms.GET("/:id/publications/latest", h.Publication.Latest)
		}

		// 课程目录模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.POST("", h.Course.CreateCourse)
			courses.PUT("/:id", h.Course.UpdateCourse)
			courses.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 开课模块
		offerings := v1.Group("/offerings")
		{
			offerings.GET("/:id", h.Offering.GetOffering)
			offerings.POST("", h.Offering.CreateOffering)
			offerings.DELETE("/:id", h.Offering.DeleteOffering)
		}

		// 教学班模块
		sections := v1.Group("/sections")
		{
			sections.GET("", h.Section.ListSections)
			sections.GET("/:id", h.Section.GetSection)
			sections.POST("", h.Section.CreateSection)
			sections.PUT("/:id", h.Section.UpdateSection)
			sections.DELETE("/:id", h.Section.DeleteSection)
			sections.GET("/:id/meeting-blocks", h.MeetingBlock.ListBySection)
		}

		// 上课时段模块
		meetingBlocks := v1.Group("/meeting-blocks")
		{
			meetingBlocks.GET("/:id", h.MeetingBlock.GetMeetingBlock)
			meetingBlocks.POST("", h.MeetingBlock.CreateMeetingBlock)
			meetingBlocks.PUT("/:id", h.MeetingBlock.UpdateMeetingBlock)
			meetingBlocks.DELETE("/:id", h.MeetingBlock.DeleteMeetingBlock)
		}

		// 答疑时段模块
		officeHours := v1.Group("/office-hours")
		{
			officeHours.GET("/:id", h.OfficeHour.GetOfficeHour)
			officeHours.POST("", h.OfficeHour.CreateOfficeHour)
			officeHours.PUT("/:id", h.OfficeHour.UpdateOfficeHour)
			officeHours.DELETE("/:id", h.OfficeHour.DeleteOfficeHour)
		}

		// 教室模块
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", h.Room.ListRooms)
			rooms.GET("/:id", h.Room.GetRoom)
			rooms.POST("", h.Room.CreateRoom)
			rooms.PUT("/:id", h.Room.UpdateRoom)
			rooms.DELETE("/:id", h.Room.DeleteRoom)
		}

		// 教师模块
		instructors := v1.Group("/instructors")
		{
			instructors.GET("", h.Instructor.ListInstructors)
			instructors.GET("/:id", h.Instructor.GetInstructor)
			instructors.POST("", h.Instructor.CreateInstructor)
			instructors.PUT("/:id", h.Instructor.UpdateInstructor)
			instructors.DELETE("/:id", h.Instructor.DeleteInstructor)
		}

		// 冲突预检模块
		conflicts := v1.Group("/conflicts")
		{
			conflicts.POST("/check", h.Conflict.CheckCandidate)
		}
	}

	return r
}
