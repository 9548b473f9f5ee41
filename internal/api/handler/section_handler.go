package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// SectionHandler 教学班模块 HTTP 处理器
type SectionHandler struct {
	sectionSvc service.SectionService
}

// NewSectionHandler 创建 SectionHandler
func NewSectionHandler(sectionSvc service.SectionService) *SectionHandler {
	return &SectionHandler{sectionSvc: sectionSvc}
}

// ListSections 获取教学班列表
// GET /api/v1/sections?term_id=…&offering_id=…
func (h *SectionHandler) ListSections(c *gin.Context) {
	var req dto.SectionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var (
		sections []dto.SectionResponse
		err      error
	)
	switch {
	case req.OfferingID != "":
		sections, err = h.sectionSvc.ListByOffering(c.Request.Context(), req.OfferingID)
	case req.TermID != "":
		sections, err = h.sectionSvc.ListByTerm(c.Request.Context(), req.TermID)
	default:
		response.BadRequest(c, 10001, "term_id 或 offering_id 至少提供一个")
		return
	}
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sections})
}

// GetSection 获取教学班详情
// GET /api/v1/sections/:id
func (h *SectionHandler) GetSection(c *gin.Context) {
	section, err := h.sectionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.OK(c, section)
}

// CreateSection 创建教学班
// POST /api/v1/sections
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	section, err := h.sectionSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.Created(c, section)
}

// UpdateSection 更新教学班
// PUT /api/v1/sections/:id
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	section, err := h.sectionSvc.Update(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.OK(c, section)
}

// DeleteSection 删除教学班
// DELETE /api/v1/sections/:id
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	if err := h.sectionSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleSectionError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleSectionError 统一处理教学班模块业务错误
func (h *SectionHandler) handleSectionError(c *gin.Context, err error) {
	if handleLockError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 17001, "教学班不存在")
	case errors.Is(err, service.ErrOfferingNotFound):
		response.NotFound(c, 16001, "开课计划不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 18001, "教师不存在")
	case errors.Is(err, service.ErrInvalidModality):
		response.BadRequest(c, 17002, "授课形式不合法")
	default:
		response.InternalError(c)
	}
}
