package service

import (
	"strings"
	"testing"

	"github.com/Elzorno/AOP/internal/model"
)

// ── dayOverlap 测试 ──

func TestDayOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b model.DayList
		want bool
	}{
		{"共享单日", model.DayList{"Mon", "Wed"}, model.DayList{"Wed", "Fri"}, true},
		{"完全相同", model.DayList{"Tue"}, model.DayList{"Tue"}, true},
		{"无交集", model.DayList{"Mon", "Wed"}, model.DayList{"Tue", "Thu"}, false},
		{"A为空", model.DayList{}, model.DayList{"Mon"}, false},
		{"B为空", model.DayList{"Mon"}, model.DayList{}, false},
		{"双方为空", model.DayList{}, model.DayList{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dayOverlap(tc.a, tc.b); got != tc.want {
				t.Errorf("dayOverlap(%v, %v) = %v，期望 %v", tc.a, tc.b, got, tc.want)
			}
			// 对称性
			if got := dayOverlap(tc.b, tc.a); got != tc.want {
				t.Errorf("dayOverlap 不对称: (%v, %v)", tc.b, tc.a)
			}
		})
	}
}

// ── timesOverlap 测试 ──

func TestTimesOverlap_NoBuffer(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       bool
	}{
		{"部分重叠", "10:00", "11:00", "10:30", "11:30", true},
		{"包含关系", "09:00", "12:00", "10:00", "11:00", true},
		{"完全相同", "10:00", "11:00", "10:00", "11:00", true},
		{"首尾相接不算重叠", "10:00", "11:00", "11:00", "12:00", false},
		{"完全分离", "08:00", "09:00", "10:00", "11:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := timesOverlap(tc.startA, tc.endA, tc.startB, tc.endB, 0); got != tc.want {
				t.Errorf("timesOverlap(%s-%s, %s-%s, 0) = %v，期望 %v",
					tc.startA, tc.endA, tc.startB, tc.endB, got, tc.want)
			}
			// 对称性
			if got := timesOverlap(tc.startB, tc.endB, tc.startA, tc.endA, 0); got != tc.want {
				t.Errorf("timesOverlap 不对称: (%s-%s, %s-%s)", tc.startB, tc.endB, tc.startA, tc.endA)
			}
		})
	}
}

func TestTimesOverlap_WithBuffer(t *testing.T) {
	// 10:00-11:00 与 11:15-12:00 间隔 15 分钟
	if timesOverlap("10:00", "11:00", "11:15", "12:00", 0) {
		t.Error("无缓冲时不应冲突")
	}
	// 缓冲 10 分钟：已有区间扩展后止于 11:10，仍早于 11:15
	if timesOverlap("10:00", "11:00", "11:15", "12:00", 10) {
		t.Error("间隔大于缓冲时不应冲突")
	}
	// 缓冲 15 分钟：扩展后止于 11:15，半开区间首尾相接不算相交
	if timesOverlap("10:00", "11:00", "11:15", "12:00", 15) {
		t.Error("间隔恰为缓冲时不应冲突")
	}
	// 缓冲 20 分钟：扩展后止于 11:20，越过候选起点
	if !timesOverlap("10:00", "11:00", "11:15", "12:00", 20) {
		t.Error("间隔小于缓冲时应冲突")
	}
	// 单调性：缓冲增大只会把不冲突变为冲突
	for _, buf := range []int{0, 5, 10, 15, 16, 30} {
		if timesOverlap("10:00", "11:00", "11:15", "12:00", buf) != (buf > 15) {
			t.Errorf("缓冲 %d 分钟的判定不符合间隔阈值语义", buf)
		}
	}
}

func TestTimesOverlap_BufferClamped(t *testing.T) {
	// 扩展截断在 [0, 1440]，不跨午夜回绕
	if timesOverlap("00:00", "01:00", "23:00", "23:59", 120) {
		t.Error("缓冲扩展不应跨午夜回绕")
	}
	// 同在凌晨边界附近时正常判定
	if !timesOverlap("00:00", "01:00", "01:30", "02:00", 60) {
		t.Error("边界附近的缓冲扩展应生效")
	}
}

// ── 分钟换算测试 ──

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
		{"10:00:00", 600}, // 数据库 time 列带秒
	}
	for _, tc := range cases {
		if got := toMinutes(tc.in); got != tc.want {
			t.Errorf("toMinutes(%q) = %d，期望 %d", tc.in, got, tc.want)
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := durationMinutes("10:00", "11:15"); got != 75 {
		t.Errorf("期望 75，实际 %d", got)
	}
	// 非法区间返回 0
	if got := durationMinutes("12:00", "11:00"); got != 0 {
		t.Errorf("倒序区间应返回 0，实际 %d", got)
	}
}

func TestMinutesToClock(t *testing.T) {
	if got := minutesToClock(510); got != "08:30" {
		t.Errorf("期望 08:30，实际 %s", got)
	}
}

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59"}
	for _, v := range valid {
		if !validClockTime(v) {
			t.Errorf("%q 应为合法时刻", v)
		}
	}
	invalid := []string{"24:00", "12:60", "9:00", "12-30", "", "abcde"}
	for _, v := range invalid {
		if validClockTime(v) {
			t.Errorf("%q 不应为合法时刻", v)
		}
	}
}

// ── 冲突标签测试 ──

func TestFormatMeetingBlockLabel(t *testing.T) {
	roomID := "room-R101"
	instructorID := "inst-w"
	mb := &model.MeetingBlock{
		Days:     model.DayList{"Mon", "Wed"},
		StartsAt: "10:00",
		EndsAt:   "11:15",
		RoomID:   &roomID,
		Room:     &model.Room{RoomID: roomID, Name: "R101"},
		Section: &model.Section{
			SectionCode:  "001",
			InstructorID: &instructorID,
			Offering: &model.Offering{
				Course: &model.CatalogCourse{Code: "CS101"},
			},
		},
	}

	want := "CS101 001 (Mon,Wed 10:00-11:15, Room: R101)"
	if got := formatMeetingBlockLabel(mb); got != want {
		t.Errorf("标签不符:\n期望 %s\n实际 %s", want, got)
	}
}

func TestFormatMeetingBlockLabel_NoRoom(t *testing.T) {
	mb := &model.MeetingBlock{
		Days:     model.DayList{"Fri"},
		StartsAt: "14:00:00",
		EndsAt:   "15:30:00",
		Section: &model.Section{
			SectionCode: "W01",
			Offering:    &model.Offering{Course: &model.CatalogCourse{Code: "MATH200"}},
		},
	}

	want := "MATH200 W01 (Fri 14:00-15:30, Room: —)"
	if got := formatMeetingBlockLabel(mb); got != want {
		t.Errorf("无教室标签不符:\n期望 %s\n实际 %s", want, got)
	}
}

func TestFormatOfficeHourLabel(t *testing.T) {
	ob := &model.OfficeHourBlock{
		Days:     model.DayList{"Tue", "Thu"},
		StartsAt: "13:00",
		EndsAt:   "14:00",
	}

	want := "Office Hours (Tue,Thu 13:00-14:00)"
	if got := formatOfficeHourLabel(ob); got != want {
		t.Errorf("答疑标签不符:\n期望 %s\n实际 %s", want, got)
	}
}

// 标签可逆：从格式化结果反解出的星期集合与起止时刻应与原始一致
func TestFormatMeetingBlockLabel_RoundTrip(t *testing.T) {
	mb := &model.MeetingBlock{
		Days:     model.DayList{"Mon", "Wed", "Fri"},
		StartsAt: "09:05",
		EndsAt:   "10:20",
		Room:     &model.Room{RoomID: "r-1", Name: "R101"},
		Section: &model.Section{
			SectionCode: "002",
			Offering:    &model.Offering{Course: &model.CatalogCourse{Code: "CS250"}},
		},
	}
	label := formatMeetingBlockLabel(mb)

	open := strings.Index(label, "(")
	roomIdx := strings.Index(label, ", Room:")
	if open < 0 || roomIdx < 0 || roomIdx < open {
		t.Fatalf("标签结构不可解析: %s", label)
	}
	meta := strings.Fields(label[open+1 : roomIdx])
	if len(meta) != 2 {
		t.Fatalf("星期与时刻段不可分离: %q", label[open+1:roomIdx])
	}

	gotDays := model.NormalizeDayTokens(strings.Split(meta[0], ","))
	if len(gotDays) != len(mb.Days) {
		t.Fatalf("反解星期数不符: %v", gotDays)
	}
	for i, d := range mb.Days {
		if gotDays[i] != d {
			t.Errorf("反解星期不符: got %v want %v", gotDays, mb.Days)
			break
		}
	}

	times := strings.Split(meta[1], "-")
	if len(times) != 2 || times[0] != mb.StartsAt || times[1] != mb.EndsAt {
		t.Errorf("反解起止时刻不符: %v", times)
	}
}
