package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ── 星期标记 ──────────────────────────────────────────────
//
// 排课系统中所有时间块都以"每周重复 + 星期集合"表达。
// 标准形式为 Mon/Tue/Wed/Thu/Fri/Sat/Sun 的无重复有序集合；
// 历史数据中存在 JSON 字符串（`["Mon","Wed"]`）和逗号分隔
// 字符串（`Mon,Wed`）两种遗留编码，统一在入库/读取边界归一化，
// 核心逻辑只接触标准形式。
// ─────────────────────────────────────────────────────────────

// WeekdayTokens 标准星期标记（Mon 起）
var WeekdayTokens = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekdayRank 标准标记 → 排序序号；同时兼容全称和大小写
var weekdayRank = map[string]int{}

var weekdayAlias = map[string]string{
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tues": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thur": "Thu", "thurs": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
	"sun": "Sun", "sunday": "Sun",
}

func init() {
	for i, d := range WeekdayTokens {
		weekdayRank[d] = i
	}
}

// DayList 星期集合，对应数据库 JSONB 列
// 实现 GORM Scanner/Valuer 接口；读取时兼容遗留字符串编码
type DayList []string

// Scan 解析数据库返回值（JSON 数组或遗留字符串编码）
func (d *DayList) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("DayList.Scan: unsupported type %T", src)
	}
	*d = ParseDayTokens(s)
	return nil
}

// Value 序列化为 JSON 数组文本
func (d DayList) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, fmt.Errorf("DayList.Value: %w", err)
	}
	return string(b), nil
}

// String 以逗号连接（用于冲突标签等展示场景）
func (d DayList) String() string {
	return strings.Join([]string(d), ",")
}

// NormalizeDayTokens 将任意来源的星期标记列表归一化：
// 去空白、大小写归一、丢弃未知标记、去重，并按周序排列。
func NormalizeDayTokens(raw []string) DayList {
	seen := make(map[string]bool, len(raw))
	out := make(DayList, 0, len(raw))
	for _, t := range raw {
		canon, ok := weekdayAlias[strings.ToLower(strings.TrimSpace(t))]
		if !ok || seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, canon)
	}
	// 按周序排列（插入排序即可，最多 7 个元素）
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && weekdayRank[out[j-1]] > weekdayRank[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// ParseDayTokens 解析遗留字符串编码：优先按 JSON 数组解析，
// 失败则按逗号分隔处理；解析结果同样经过归一化。
func ParseDayTokens(s string) DayList {
	s = strings.TrimSpace(s)
	if s == "" {
		return DayList{}
	}
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return NormalizeDayTokens(arr)
	}
	return NormalizeDayTokens(strings.Split(s, ","))
}
