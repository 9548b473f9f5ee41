package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSections   = errors.New("该学期暂无教学班")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 课表导出为 Excel (.xlsx)，一个教学班时段占一行
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response；
//     发布流程也复用同一 buffer 落盘归档
type ExportService interface {
	// ExportTermSchedule 导出学期课表为 Excel
	ExportTermSchedule(ctx context.Context, termID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTermSchedule — 导出学期课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Schedule"
//   - 行：每个上课时段一行，按课程代码 + 班次 + 星期排序
//   - 列：Course | Section | Instructor | Modality | Days | Time | Room

func (s *exportService) ExportTermSchedule(ctx context.Context, termID string) (*bytes.Buffer, string, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTermNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}

	sections, err := s.repo.Section.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询学期教学班失败", zap.Error(err))
		return nil, "", err
	}
	if len(sections) == 0 {
		return nil, "", ErrExportNoSections
	}

	type rowDef struct {
		course     string
		section    string
		instructor string
		modality   string
		days       string
		timeRange  string
		room       string
	}

	var rows []rowDef
	for i := range sections {
		sec := &sections[i]
		course := ""
		if sec.Offering != nil && sec.Offering.Course != nil {
			course = sec.Offering.Course.Code
		}
		instructor := "—"
		if sec.Instructor != nil {
			instructor = sec.Instructor.Name
		}

		if len(sec.MeetingBlocks) == 0 {
			rows = append(rows, rowDef{
				course: course, section: sec.SectionCode,
				instructor: instructor, modality: sec.Modality,
				days: "—", timeRange: "—", room: "—",
			})
			continue
		}
		for j := range sec.MeetingBlocks {
			mb := &sec.MeetingBlocks[j]
			room := "—"
			if mb.Room != nil {
				room = mb.Room.Name
			}
			rows = append(rows, rowDef{
				course:     course,
				section:    sec.SectionCode,
				instructor: instructor,
				modality:   sec.Modality,
				days:       mb.Days.String(),
				timeRange:  fmt.Sprintf("%s-%s", clock(mb.StartsAt), clock(mb.EndsAt)),
				room:       room,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].course != rows[j].course {
			return rows[i].course < rows[j].course
		}
		if rows[i].section != rows[j].section {
			return rows[i].section < rows[j].section
		}
		return rows[i].timeRange < rows[j].timeRange
	})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{14, 10, 20, 12, 16, 14, 14}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Schedule", term.Name))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"Course", "Section", "Instructor", "Modality", "Days", "Time", "Room"}
	for i, h := range headers {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cellName, h)
	}

	// 数据行
	for r, rd := range rows {
		values := []string{rd.course, rd.section, rd.instructor, rd.modality, rd.days, rd.timeRange, rd.room}
		for c, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(c+1, r+3)
			f.SetCellValue(sheetName, cellName, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", term.Code)
	return buf, filename, nil
}
