package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Elzorno/AOP/internal/model"
)

// ── 时间区间原语 ──────────────────────────────────────────
//
// 排课域的所有重叠判定都归结为两个纯函数：
//   - dayOverlap: 星期集合是否有交集
//   - timesOverlap: 当日分钟区间（半开）是否相交
//
// 缓冲语义：bufferMinutes > 0 时将其中一个区间向两侧扩展，
// 等价于要求两区间的间隔不小于缓冲；判定对参数顺序对称。
// 扩展结果截断在 [0, 1440]，不做跨午夜回绕。
// 区间合法性（end > start）由上游校验保证，原语本身不设防。
// ─────────────────────────────────────────────────────────────

const minutesPerDay = 24 * 60

// toMinutes 将 "HH:MM"（或 "HH:MM:SS"）解析为当日分钟数
func toMinutes(hhmm string) int {
	if len(hhmm) > 5 {
		hhmm = hhmm[:5]
	}
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return h*60 + m
}

// minutesToClock 分钟数 → "HH:MM"
func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// dayOverlap 两个星期集合是否共享至少一个标记
func dayOverlap(daysA, daysB model.DayList) bool {
	if len(daysA) == 0 || len(daysB) == 0 {
		return false
	}
	setB := make(map[string]bool, len(daysB))
	for _, d := range daysB {
		setB[d] = true
	}
	for _, d := range daysA {
		if setB[d] {
			return true
		}
	}
	return false
}

// timesOverlap 两个当日时间区间（缓冲扩展后）是否相交
//
// 只扩展一侧区间：双侧同时扩展会把间隔要求放大成缓冲的两倍。
func timesOverlap(startA, endA, startB, endB string, bufferMinutes int) bool {
	a0, a1 := toMinutes(startA), toMinutes(endA)
	b0, b1 := toMinutes(startB), toMinutes(endB)

	if bufferMinutes > 0 {
		b0 = max(0, b0-bufferMinutes)
		b1 = min(minutesPerDay, b1+bufferMinutes)
	}

	// [a0,a1) 与 [b0,b1) 相交
	return a0 < b1 && b0 < a1
}

// durationMinutes 区间时长（非法输入返回 0）
func durationMinutes(startsAt, endsAt string) int {
	d := toMinutes(endsAt) - toMinutes(startsAt)
	if d < 0 {
		return 0
	}
	return d
}

// ── 冲突标签 ──
//
// 标签为纯投影，供同步校验响应与批量报表直接透出：
//   课程块: "<course> <section> (<days> <start>-<end>, Room: <room|—>)"
//   答疑块: "Office Hours (<days> <start>-<end>)"

func formatMeetingBlockLabel(mb *model.MeetingBlock) string {
	course := "COURSE"
	sec := "SEC"
	if mb.Section != nil {
		if mb.Section.SectionCode != "" {
			sec = mb.Section.SectionCode
		}
		if mb.Section.Offering != nil && mb.Section.Offering.Course != nil {
			course = mb.Section.Offering.Course.Code
		}
	}
	room := "—"
	if mb.Room != nil {
		room = mb.Room.Name
	}
	return fmt.Sprintf("%s %s (%s %s-%s, Room: %s)",
		course, sec, mb.Days.String(), clock(mb.StartsAt), clock(mb.EndsAt), room)
}

func formatOfficeHourLabel(ob *model.OfficeHourBlock) string {
	return fmt.Sprintf("Office Hours (%s %s-%s)",
		ob.Days.String(), clock(ob.StartsAt), clock(ob.EndsAt))
}

// clock 截取 "HH:MM"（数据库 time 列可能带秒）
func clock(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// validClockTime "HH:MM" 是否为合法当日时刻
func validClockTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	h, err := strconv.Atoi(t[:2])
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(t[3:])
	if err != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60
}
