package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// GridHandler 周视图模块 HTTP 处理器
type GridHandler struct {
	gridSvc service.GridService
}

// NewGridHandler 创建 GridHandler
func NewGridHandler(gridSvc service.GridService) *GridHandler {
	return &GridHandler{gridSvc: gridSvc}
}

// InstructorGrid 教师周视图（课程 + 答疑时段）
// GET /api/v1/terms/:id/instructors/:instructorId/grid
func (h *GridHandler) InstructorGrid(c *gin.Context) {
	grid, err := h.gridSvc.InstructorGrid(c.Request.Context(), c.Param("id"), c.Param("instructorId"))
	if err != nil {
		h.handleGridError(c, err)
		return
	}
	response.OK(c, grid)
}

// RoomGrid 教室周视图
// GET /api/v1/terms/:id/rooms/:roomId/grid
func (h *GridHandler) RoomGrid(c *gin.Context) {
	grid, err := h.gridSvc.RoomGrid(c.Request.Context(), c.Param("id"), c.Param("roomId"))
	if err != nil {
		h.handleGridError(c, err)
		return
	}
	response.OK(c, grid)
}

// handleGridError 统一处理周视图模块业务错误
func (h *GridHandler) handleGridError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13001, "教室不存在")
	default:
		response.InternalError(c)
	}
}
