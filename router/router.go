package router

import (
	"sync"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/FeifanTech/GEO-Nexus/middleware"

	"github.com/gin-gonic/gin"
)

var once sync.Once
var instance *gin.Engine

func GetInstance() *gin.Engine {
	once.Do(func() {
		if !config.GetInstance().IsDevelopment() {
			gin.SetMode(gin.ReleaseMode)
		}

		instance = gin.New()
		instance.Use(gin.Recovery())
		if config.GetInstance().GetBoolOrDefault(config.ApplicationLogRequest, true) {
			instance.Use(middleware.Logger)
		}
		instance.Use(middleware.Auth())

		addBasicRouter(instance)
		addApiRouter(instance)
	})
	return instance
}
