package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Elzorno/AOP/internal/service"
	"github.com/Elzorno/AOP/pkg/response"
)

// GetActor 从 Gin 上下文中提取操作主体。
// Actor 中间件负责从 X-Actor 请求头注入；缺失时回退为 "system"，
// 审计字段与锁记录均以此落库。
func GetActor(c *gin.Context) string {
	v, exists := c.Get("actor")
	if !exists {
		return "system"
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "system"
	}
	return s
}

// handleConflictError 冲突拒绝 → 409，details 携带各类别冲突标签。
// 返回 true 表示已写入响应。
func handleConflictError(c *gin.Context, err error) bool {
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		response.Conflict(c, 20901, "存在排课冲突", gin.H{
			"room_conflicts":        cerr.Room,
			"instructor_conflicts":  cerr.Instructor,
			"office_hour_conflicts": cerr.OfficeHours,
		})
		return true
	}
	return false
}

// handleLockError 锁定拒绝 → 403。返回 true 表示已写入响应。
func handleLockError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrScheduleLocked):
		response.Forbidden(c, 20301, "学期课表已锁定")
		return true
	case errors.Is(err, service.ErrOfficeHoursLocked):
		response.Forbidden(c, 20302, "答疑时段已锁定")
		return true
	}
	return false
}
