package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// ReadinessHandler 学期就绪度模块 HTTP 处理器
type ReadinessHandler struct {
	readinessSvc service.ReadinessService
}

// NewReadinessHandler 创建 ReadinessHandler
func NewReadinessHandler(readinessSvc service.ReadinessService) *ReadinessHandler {
	return &ReadinessHandler{readinessSvc: readinessSvc}
}

// TermReadiness 学期就绪度报表（课时合规 + 答疑合规）
// GET /api/v1/terms/:id/readiness
func (h *ReadinessHandler) TermReadiness(c *gin.Context) {
	report, err := h.readinessSvc.ComputeReadiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTermNotFound):
			response.NotFound(c, 14001, "学期不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, report)
}
