package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// ConflictHandler 冲突检测模块 HTTP 处理器
type ConflictHandler struct {
	conflictSvc service.ConflictService
}

// NewConflictHandler 创建 ConflictHandler
func NewConflictHandler(conflictSvc service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflictSvc: conflictSvc}
}

// CheckCandidate 拟排时段同步预检
// POST /api/v1/conflicts/check
//
// 冲突是数据不是错误：有冲突时仍返回 200，由调用方决定去留。
func (h *ConflictHandler) CheckCandidate(c *gin.Context) {
	var req dto.CheckCandidateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.conflictSvc.CheckCandidateBlock(c.Request.Context(), &req)
	if err != nil {
		h.handleConflictSvcError(c, err)
		return
	}
	response.OK(c, result)
}

// TermConflictReport 全学期冲突报表
// GET /api/v1/terms/:id/conflicts
func (h *ConflictHandler) TermConflictReport(c *gin.Context) {
	report, err := h.conflictSvc.ConflictReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleConflictSvcError(c, err)
		return
	}
	response.OK(c, report)
}

// RoomConflictReport 全学期教室冲突报表
// GET /api/v1/terms/:id/conflicts/rooms
func (h *ConflictHandler) RoomConflictReport(c *gin.Context) {
	groups, err := h.conflictSvc.RoomConflictReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleConflictSvcError(c, err)
		return
	}
	response.OK(c, groups)
}

// InstructorConflictReport 全学期教师冲突报表
// GET /api/v1/terms/:id/conflicts/instructors
func (h *ConflictHandler) InstructorConflictReport(c *gin.Context) {
	groups, err := h.conflictSvc.InstructorConflictReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleConflictSvcError(c, err)
		return
	}
	response.OK(c, groups)
}

// handleConflictSvcError 统一处理冲突模块业务错误
func (h *ConflictHandler) handleConflictSvcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	default:
		response.InternalError(c)
	}
}
