package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── ICS 日历订阅 ────────────────────────────────────────────
//
// 职责：将教师在一个学期内的课程/答疑时段导出为标准
// iCalendar (RFC 5545) 内容，供日历客户端订阅。
//
// 设计决策：
//   - 每个 (时段, 星期标记) 生成一个 VEVENT
//   - DTSTART 取学期开始日之后首个匹配星期的当日时刻
//   - RRULE FREQ=WEEKLY，UNTIL 为学期结束日
//   - 事件时刻按本地时间导出，不做时区换算
// ─────────────────────────────────────────────────────────────

// weekday token → RRULE BYDAY 值
var icsByDay = map[string]string{
	"Mon": "MO", "Tue": "TU", "Wed": "WE", "Thu": "TH",
	"Fri": "FR", "Sat": "SA", "Sun": "SU",
}

// CalendarService 日历订阅业务接口
type CalendarService interface {
	// InstructorCalendar 教师学期日历（ICS 文本）
	InstructorCalendar(ctx context.Context, termID, instructorID string) (string, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) InstructorCalendar(ctx context.Context, termID, instructorID string) (string, string, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return "", "", err
	}
	instructor, err := s.repo.Instructor.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInstructorNotFound
		}
		return "", "", err
	}

	blocks, err := s.repo.MeetingBlock.ListByTermAndInstructor(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("查询教师课程时段失败", zap.Error(err))
		return "", "", err
	}
	offices, err := s.repo.OfficeHourBlock.ListByTermAndInstructor(ctx, termID, instructorID)
	if err != nil {
		s.logger.Error("查询教师答疑时段失败", zap.Error(err))
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//AOP//Schedule//EN")
	cal.SetName(fmt.Sprintf("%s — %s", instructor.Name, term.Name))

	for i := range blocks {
		mb := &blocks[i]
		location := ""
		if mb.Room != nil {
			location = mb.Room.Name
		}
		summary := formatMeetingBlockLabel(mb)
		for _, day := range mb.Days {
			uid := fmt.Sprintf("%s-%s@aop", mb.MeetingBlockID, day)
			s.addWeeklyEvent(cal, uid, summary, location, term, day, clock(mb.StartsAt), clock(mb.EndsAt))
		}
	}
	for i := range offices {
		ob := &offices[i]
		summary := formatOfficeHourLabel(ob)
		for _, day := range ob.Days {
			uid := fmt.Sprintf("%s-%s@aop", ob.OfficeHourBlockID, day)
			s.addWeeklyEvent(cal, uid, summary, "", term, day, clock(ob.StartsAt), clock(ob.EndsAt))
		}
	}

	filename := fmt.Sprintf("%s_%s.ics", term.Code, instructorID)
	return cal.Serialize(), filename, nil
}

// addWeeklyEvent 为一个 (时段, 星期) 添加每周重复事件
func (s *calendarService) addWeeklyEvent(cal *ics.Calendar, uid, summary, location string, term *model.Term, day, startsAt, endsAt string) {
	byDay, ok := icsByDay[day]
	if !ok {
		return
	}
	first, ok := firstOccurrence(term.StartsOn, day)
	if !ok || first.After(term.EndsOn) {
		return
	}

	startMin := toMinutes(startsAt)
	endMin := toMinutes(endsAt)
	start := first.Add(time.Duration(startMin) * time.Minute)
	end := first.Add(time.Duration(endMin) * time.Minute)

	event := cal.AddEvent(uid)
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(summary)
	if location != "" {
		event.SetLocation(location)
	}
	event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
		byDay, term.EndsOn.Format("20060102T235959Z")))
}

// firstOccurrence 学期开始日起首个匹配星期标记的日期（零点）
func firstOccurrence(startsOn time.Time, day string) (time.Time, bool) {
	target := -1
	for i, token := range model.WeekdayTokens {
		if token == day {
			// WeekdayTokens 以 Mon 起始；time.Weekday 以 Sunday=0
			target = (i + 1) % 7
			break
		}
	}
	if target < 0 {
		return time.Time{}, false
	}

	d := time.Date(startsOn.Year(), startsOn.Month(), startsOn.Day(), 0, 0, 0, 0, startsOn.Location())
	for i := 0; i < 7; i++ {
		if int(d.Weekday()) == target {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}
