package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// PublicationHandler 课表发布模块 HTTP 处理器
type PublicationHandler struct {
	publicationSvc service.PublicationService
}

// NewPublicationHandler 创建 PublicationHandler
func NewPublicationHandler(publicationSvc service.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationSvc: publicationSvc}
}

// Publish 发布学期课表快照
// POST /api/v1/terms/:id/publications
//
// 仅允许在课表锁定后发布，保证快照与锁定状态一致。
func (h *PublicationHandler) Publish(c *gin.Context) {
	var req dto.PublishScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pub, err := h.publicationSvc.Publish(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handlePublicationError(c, err)
		return
	}
	response.Created(c, pub)
}

// ListByTerm 学期历史发布列表
// GET /api/v1/terms/:id/publications
func (h *PublicationHandler) ListByTerm(c *gin.Context) {
	pubs, err := h.publicationSvc.ListByTerm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePublicationError(c, err)
		return
	}
	response.OK(c, pubs)
}

// Latest 学期最新发布版本
// GET /api/v1/terms/:id/publications/latest
func (h *PublicationHandler) Latest(c *gin.Context) {
	pub, err := h.publicationSvc.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePublicationError(c, err)
		return
	}
	response.OK(c, pub)
}

// Download 凭公开令牌下载已发布课表（无需调用方标识）
// GET /api/v1/public/publications/:token
func (h *PublicationHandler) Download(c *gin.Context) {
	path, filename, err := h.publicationSvc.DownloadByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handlePublicationError(c, err)
		return
	}
	c.FileAttachment(path, filename)
}

// handlePublicationError 统一处理发布模块业务错误
func (h *PublicationHandler) handlePublicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "学期不存在")
	case errors.Is(err, service.ErrTermNotLocked):
		response.Forbidden(c, 23001, "课表尚未锁定，不能发布")
	case errors.Is(err, service.ErrPublicationNotFound):
		response.NotFound(c, 23002, "发布记录不存在")
	case errors.Is(err, service.ErrExportNoSections):
		response.BadRequest(c, 22001, "该学期暂无排课数据")
	default:
		response.InternalError(c)
	}
}
