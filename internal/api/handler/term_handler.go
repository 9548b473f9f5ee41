package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// TermHandler 学期模块 HTTP 处理器
type TermHandler struct {
	termSvc service.TermService
}

// NewTermHandler 创建 TermHandler
func NewTermHandler(termSvc service.TermService) *TermHandler {
	return &TermHandler{termSvc: termSvc}
}

// ListTerms 获取学期列表
// GET /api/v1/terms
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.termSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": terms})
}

// GetTerm 获取学期详情
// GET /api/v1/terms/:id
func (h *TermHandler) GetTerm(c *gin.Context) {
	term, err := h.termSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTermError(c, err)
		return
	}
	response.OK(c, term)
}

// CreateTerm 创建学期
// POST /api/v1/terms
func (h *TermHandler) CreateTerm(c *gin.Context) {
	var req dto.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	term, err := h.termSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleTermError(c, err)
		return
	}
	response.Created(c, term)
}

// UpdateTerm 更新学期
// PUT /api/v1/terms/:id
func (h *TermHandler) UpdateTerm(c *gin.Context) {
	var req dto.UpdateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	term, err := h.termSvc.Update(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handleTermError(c, err)
		return
	}
	response.OK(c, term)
}

// DeleteTerm 删除学期
// DELETE /api/v1/terms/:id
func (h *TermHandler) DeleteTerm(c *gin.Context) {
	if err := h.termSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleTermError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTermError 统一处理学期模块业务错误
func (h *TermHandler) handleTermError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 14002, "学期日期无效")
	default:
		response.InternalError(c)
	}
}
