package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// OfferingHandler 开课模块 HTTP 处理器
type OfferingHandler struct {
	offeringSvc service.OfferingService
}

// NewOfferingHandler 创建 OfferingHandler
func NewOfferingHandler(offeringSvc service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringSvc: offeringSvc}
}

// ListOfferings 获取学期开课列表
// GET /api/v1/terms/:id/offerings
func (h *OfferingHandler) ListOfferings(c *gin.Context) {
	offerings, err := h.offeringSvc.ListByTerm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.OK(c, gin.H{"list": offerings})
}

// GetOffering 获取开课详情
// GET /api/v1/offerings/:id
func (h *OfferingHandler) GetOffering(c *gin.Context) {
	offering, err := h.offeringSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.OK(c, offering)
}

// CreateOffering 创建开课
// POST /api/v1/offerings
func (h *OfferingHandler) CreateOffering(c *gin.Context) {
	var req dto.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	offering, err := h.offeringSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.Created(c, offering)
}

// DeleteOffering 删除开课
// DELETE /api/v1/offerings/:id
func (h *OfferingHandler) DeleteOffering(c *gin.Context) {
	if err := h.offeringSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleOfferingError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleOfferingError 统一处理开课模块业务错误
func (h *OfferingHandler) handleOfferingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, 16001, "开课计划不存在")
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 15001, "目录课程不存在")
	default:
		response.InternalError(c)
	}
}
