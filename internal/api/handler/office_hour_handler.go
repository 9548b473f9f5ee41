package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// OfficeHourHandler 答疑时段模块 HTTP 处理器
type OfficeHourHandler struct {
	officeSvc service.OfficeHourService
}

// NewOfficeHourHandler 创建 OfficeHourHandler
func NewOfficeHourHandler(officeSvc service.OfficeHourService) *OfficeHourHandler {
	return &OfficeHourHandler{officeSvc: officeSvc}
}

// ListOfficeHours 获取学期答疑时段（可按教师过滤）
// GET /api/v1/terms/:id/office-hours?instructor_id=…
func (h *OfficeHourHandler) ListOfficeHours(c *gin.Context) {
	termID := c.Param("id")
	instructorID := c.Query("instructor_id")

	var (
		blocks []dto.OfficeHourResponse
		err    error
	)
	if instructorID != "" {
		blocks, err = h.officeSvc.ListByTermAndInstructor(c.Request.Context(), termID, instructorID)
	} else {
		blocks, err = h.officeSvc.ListByTerm(c.Request.Context(), termID)
	}
	if err != nil {
		h.handleOfficeHourError(c, err)
		return
	}
	response.OK(c, gin.H{"list": blocks})
}

// GetOfficeHour 获取答疑时段详情
// GET /api/v1/office-hours/:id
func (h *OfficeHourHandler) GetOfficeHour(c *gin.Context) {
	block, err := h.officeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleOfficeHourError(c, err)
		return
	}
	response.OK(c, block)
}

// CreateOfficeHour 创建答疑时段
// POST /api/v1/office-hours
func (h *OfficeHourHandler) CreateOfficeHour(c *gin.Context) {
	var req dto.CreateOfficeHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.officeSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleOfficeHourError(c, err)
		return
	}
	response.Created(c, block)
}

// UpdateOfficeHour 更新答疑时段
// PUT /api/v1/office-hours/:id
func (h *OfficeHourHandler) UpdateOfficeHour(c *gin.Context) {
	var req dto.UpdateOfficeHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.officeSvc.Update(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handleOfficeHourError(c, err)
		return
	}
	response.OK(c, block)
}

// DeleteOfficeHour 删除答疑时段
// DELETE /api/v1/office-hours/:id
func (h *OfficeHourHandler) DeleteOfficeHour(c *gin.Context) {
	if err := h.officeSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleOfficeHourError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleOfficeHourError 统一处理答疑时段模块业务错误
func (h *OfficeHourHandler) handleOfficeHourError(c *gin.Context, err error) {
	if handleConflictError(c, err) || handleLockError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrOfficeHourNotFound):
		response.NotFound(c, 21001, "答疑时段不存在")
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 19002, "时段起止时刻不合法")
	case errors.Is(err, service.ErrInvalidDays):
		response.BadRequest(c, 19003, "星期标记不合法")
	default:
		response.InternalError(c)
	}
}
