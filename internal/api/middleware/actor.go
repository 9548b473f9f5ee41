package middleware

import (
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// actorMaxLen 限制调用方标识最大长度
const actorMaxLen = 128

// Actor 操作人标识中间件
// 从请求头 X-Actor 读取调用方标识并注入 gin.Context，
// 供审计字段与锁定记录使用；缺省为 system。
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" || len(actor) > actorMaxLen {
			actor = "system"
		}

		c.Set(actorKey, actor)

		c.Next()
	}
}
