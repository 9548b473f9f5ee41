package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// InstructorHandler 教师模块 HTTP 处理器
type InstructorHandler struct {
	instructorSvc service.InstructorService
}

// NewInstructorHandler 创建 InstructorHandler
func NewInstructorHandler(instructorSvc service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorSvc: instructorSvc}
}

// ListInstructors 获取教师列表
// GET /api/v1/instructors?active_only=true
func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	instructors, err := h.instructorSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": instructors})
}

// GetInstructor 获取教师详情
// GET /api/v1/instructors/:id
func (h *InstructorHandler) GetInstructor(c *gin.Context) {
	instructor, err := h.instructorSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, instructor)
}

// CreateInstructor 创建教师
// POST /api/v1/instructors
func (h *InstructorHandler) CreateInstructor(c *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	instructor, err := h.instructorSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.Created(c, instructor)
}

// UpdateInstructor 更新教师
// PUT /api/v1/instructors/:id
func (h *InstructorHandler) UpdateInstructor(c *gin.Context) {
	var req dto.UpdateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	instructor, err := h.instructorSvc.Update(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, instructor)
}

// DeleteInstructor 删除教师
// DELETE /api/v1/instructors/:id
func (h *InstructorHandler) DeleteInstructor(c *gin.Context) {
	if err := h.instructorSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleInstructorError 统一处理教师模块业务错误
func (h *InstructorHandler) handleInstructorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	default:
		response.InternalError(c)
	}
}
