package router

import (
	"github.com/FeifanTech/GEO-Nexus/controller"

	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine) {

	api := engine.Group("/api")
	{
		// 统一 AI 代理，所有诊断/生成/监测任务的入口
		api.POST("/dify", controller.DifyProxy)

		// 鉴权（临时演示实现）
		api.GET("/auth/me", controller.CurrentUser)

		// 问题库
		api.POST("/queries", controller.CreateQuery)
		api.GET("/queries", controller.ListQueries)
		api.PUT("/queries/:query_id", controller.UpdateQuery)
		api.DELETE("/queries/:query_id", controller.DeleteQuery)

		// 产品
		api.POST("/products", controller.CreateProduct)
		api.GET("/products", controller.ListProducts)
		api.PUT("/products/:product_id", controller.UpdateProduct)
		api.DELETE("/products/:product_id", controller.DeleteProduct)

		// 竞品
		api.POST("/competitors", controller.CreateCompetitor)
		api.GET("/competitors", controller.ListCompetitors)
		api.PUT("/competitors/:competitor_id", controller.UpdateCompetitor)
		api.DELETE("/competitors/:competitor_id", controller.DeleteCompetitor)

		// AI 搜索监测
		monitor := api.Group("/monitor")
		{
			monitor.POST("/tasks", controller.CreateMonitorTasks)
			monitor.GET("/tasks", controller.ListMonitorTasks)
			monitor.GET("/tasks/:task_id", controller.GetMonitorTask)
			monitor.DELETE("/tasks/:task_id", controller.DeleteMonitorTask)
			monitor.POST("/tasks/:task_id/execute", controller.ExecuteMonitorTask)

			monitor.POST("/execute", controller.ExecuteMonitorBatch)
			monitor.POST("/executions/:execution_id/cancel", controller.CancelExecution)

			monitor.GET("/queries/:query_id/analytics", controller.QueryAnalytics)
			monitor.GET("/queries/:query_id/history", controller.QueryHistory)
		}
	}
}
