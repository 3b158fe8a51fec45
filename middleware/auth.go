package middleware

import (
	"github.com/FeifanTech/GEO-Nexus/constant"

	"github.com/gin-gonic/gin"
)

const ContextKeyUserID = "userID"

// Auth 临时鉴权：接入真实用户体系前统一注入演示用户
func Auth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContextKeyUserID, constant.DemoUserID)
		ctx.Next()
	}
}

// CurrentUserID 取当前请求的用户标识
func CurrentUserID(ctx *gin.Context) string {
	if value, ok := ctx.Get(ContextKeyUserID); ok {
		if userID, ok := value.(string); ok && userID != "" {
			return userID
		}
	}
	return constant.DemoUserID
}
