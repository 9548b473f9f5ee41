package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportTermSchedule 导出学期课表 Excel
// GET /api/v1/terms/:id/export
func (h *ExportHandler) ExportTermSchedule(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTermSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// InstructorCalendar 教师学期日历订阅（ICS）
// GET /api/v1/terms/:id/instructors/:instructorId/calendar.ics
func (h *ExportHandler) InstructorCalendar(c *gin.Context) {
	ics, filename, err := h.calendarSvc.InstructorCalendar(c.Request.Context(), c.Param("id"), c.Param("instructorId"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	case errors.Is(err, service.ErrExportNoSections):
		response.BadRequest(c, 22001, "该学期暂无排课数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 22002, "课表文件生成失败")
	default:
		response.InternalError(c)
	}
}
