package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// LockHandler 锁定模块 HTTP 处理器
type LockHandler struct {
	lockSvc service.LockService
}

// NewLockHandler 创建 LockHandler
func NewLockHandler(lockSvc service.LockService) *LockHandler {
	return &LockHandler{lockSvc: lockSvc}
}

// GetTermLock 查询学期课表锁状态
// GET /api/v1/terms/:id/lock
func (h *LockHandler) GetTermLock(c *gin.Context) {
	state, err := h.lockSvc.GetTermLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// LockTerm 锁定学期课表
// POST /api/v1/terms/:id/lock
//
// 就绪度不达标不阻止锁定，仅在响应中附带警告。
func (h *LockHandler) LockTerm(c *gin.Context) {
	state, err := h.lockSvc.LockTerm(c.Request.Context(), c.Param("id"), GetActor(c))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// UnlockTerm 解锁学期课表
// DELETE /api/v1/terms/:id/lock
func (h *LockHandler) UnlockTerm(c *gin.Context) {
	state, err := h.lockSvc.UnlockTerm(c.Request.Context(), c.Param("id"), GetActor(c))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// GetOfficeHoursLock 查询教师答疑锁状态
// GET /api/v1/terms/:id/instructors/:instructorId/office-hours-lock
//
// 无记录视为未锁定，首次查询时隐式创建。
func (h *LockHandler) GetOfficeHoursLock(c *gin.Context) {
	state, err := h.lockSvc.GetOfficeHoursLock(c.Request.Context(), c.Param("id"), c.Param("instructorId"))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// LockOfficeHours 锁定教师答疑时段
// POST /api/v1/terms/:id/instructors/:instructorId/office-hours-lock
func (h *LockHandler) LockOfficeHours(c *gin.Context) {
	state, err := h.lockSvc.LockOfficeHours(c.Request.Context(), c.Param("id"), c.Param("instructorId"), GetActor(c))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// UnlockOfficeHours 解锁教师答疑时段
// DELETE /api/v1/terms/:id/instructors/:instructorId/office-hours-lock
func (h *LockHandler) UnlockOfficeHours(c *gin.Context) {
	state, err := h.lockSvc.UnlockOfficeHours(c.Request.Context(), c.Param("id"), c.Param("instructorId"), GetActor(c))
	if err != nil {
		h.handleLockSvcError(c, err)
		return
	}
	response.OK(c, state)
}

// handleLockSvcError 统一处理锁定模块业务错误
func (h *LockHandler) handleLockSvcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	default:
		response.InternalError(c)
	}
}
