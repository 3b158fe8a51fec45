package controller

import (
	"net/http"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/middleware"

	"github.com/gin-gonic/gin"
)

// CurrentUser 当前登录用户
// @Summary 当前登录用户
// @Description 临时实现：总是返回演示用户
// @Tags Auth
// @Produce json
// @Router /api/auth/me [get]
func CurrentUser(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"id":    middleware.CurrentUserID(ctx),
		"email": constant.DemoUserEmail,
	})
}
