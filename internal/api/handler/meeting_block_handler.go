package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// MeetingBlockHandler 上课时段模块 HTTP 处理器
type MeetingBlockHandler struct {
	blockSvc service.MeetingBlockService
}

// NewMeetingBlockHandler 创建 MeetingBlockHandler
func NewMeetingBlockHandler(blockSvc service.MeetingBlockService) *MeetingBlockHandler {
	return &MeetingBlockHandler{blockSvc: blockSvc}
}

// ListBySection 获取教学班下的上课时段
// GET /api/v1/sections/:id/meeting-blocks
func (h *MeetingBlockHandler) ListBySection(c *gin.Context) {
	blocks, err := h.blockSvc.ListBySection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleBlockError(c, err)
		return
	}
	response.OK(c, gin.H{"list": blocks})
}

// GetMeetingBlock 获取上课时段详情
// GET /api/v1/meeting-blocks/:id
func (h *MeetingBlockHandler) GetMeetingBlock(c *gin.Context) {
	block, err := h.blockSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleBlockError(c, err)
		return
	}
	response.OK(c, block)
}

// CreateMeetingBlock 创建上课时段
// POST /api/v1/meeting-blocks
func (h *MeetingBlockHandler) CreateMeetingBlock(c *gin.Context) {
	var req dto.CreateMeetingBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.blockSvc.Create(c.Request.Context(), &req, GetActor(c))
	if err != nil {
		h.handleBlockError(c, err)
		return
	}
	response.Created(c, block)
}

// UpdateMeetingBlock 更新上课时段
// PUT /api/v1/meeting-blocks/:id
func (h *MeetingBlockHandler) UpdateMeetingBlock(c *gin.Context) {
	var req dto.UpdateMeetingBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.blockSvc.Update(c.Request.Context(), c.Param("id"), &req, GetActor(c))
	if err != nil {
		h.handleBlockError(c, err)
		return
	}
	response.OK(c, block)
}

// DeleteMeetingBlock 删除上课时段
// DELETE /api/v1/meeting-blocks/:id
func (h *MeetingBlockHandler) DeleteMeetingBlock(c *gin.Context) {
	if err := h.blockSvc.Delete(c.Request.Context(), c.Param("id"), GetActor(c)); err != nil {
		h.handleBlockError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleBlockError 统一处理上课时段模块业务错误
func (h *MeetingBlockHandler) handleBlockError(c *gin.Context, err error) {
	if handleConflictError(c, err) || handleLockError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMeetingBlockNotFound):
		response.NotFound(c, 19001, "上课时段不存在")
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 17001, "教学班不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13001, "教室不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 19002, "时段起止时刻不合法")
	case errors.Is(err, service.ErrInvalidDays):
		response.BadRequest(c, 19003, "星期标记不合法")
	case errors.Is(err, service.ErrInvalidMeetingType):
		response.BadRequest(c, 19004, "时段类型不合法")
	case errors.Is(err, service.ErrOnlineSectionRoom):
		response.BadRequest(c, 19005, "线上教学班不可绑定教室")
	default:
		response.InternalError(c)
	}
}
