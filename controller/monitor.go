package controller

import (
	"net/http"

	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/middleware"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/str"
	"github.com/FeifanTech/GEO-Nexus/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// writeServiceError 服务层错误码映射到 HTTP 状态
func writeServiceError(ctx *gin.Context, errModel *model.Error) {
	status := http.StatusInternalServerError
	switch errModel.Code {
	case model.ErrorParams, model.ErrorEmptyId:
		status = http.StatusBadRequest
	case model.ErrorTaskNotFound, model.ErrorExecutionNotFound, model.ErrorQueryNotFound:
		status = http.StatusNotFound
	case model.ErrorExecutionRunning, model.ErrorTaskAlreadyDone:
		status = http.StatusConflict
	}
	ctx.JSON(status, gin.H{"error": errModel.Message})
}

// CreateMonitorTasks 批量创建监测任务
// @Summary 批量创建监测任务
// @Description 按问题列表创建监测任务，每个问题一条
// @Tags Monitor
// @Accept json
// @Produce json
// @Param request body model.CreateMonitorTaskRequest true "创建请求"
// @Router /api/monitor/tasks [post]
func CreateMonitorTasks(ctx *gin.Context) {
	var req model.CreateMonitorTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, errModel := factory.GetServiceFactory().NewMonitorService().
		CreateTasks(ctx, middleware.CurrentUserID(ctx), &req)
	if errModel != nil {
		log.Errorf("CreateMonitorTasks error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"tasks": tasks})
}

// ListMonitorTasks 查询监测任务列表
// @Summary 查询监测任务列表
// @Description 可按 query_id、status 过滤，分页，创建时间倒序
// @Tags Monitor
// @Produce json
// @Param query_id query string false "问题ID"
// @Param status query string false "任务状态"
// @Param limit query int false "分页大小"
// @Param offset query int false "偏移"
// @Router /api/monitor/tasks [get]
func ListMonitorTasks(ctx *gin.Context) {
	condition := &model.MonitorTaskListCondition{
		UserID: middleware.CurrentUserID(ctx),
	}

	if queryID := ctx.Query("query_id"); queryID != "" {
		condition.QueryID = &queryID
	}
	if status := ctx.Query("status"); status != "" {
		if !constant.TaskStatus(status).IsValid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + status})
			return
		}
		condition.Status = &status
	}

	limit, err := str.StringToInt(ctx.Query("limit"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := str.StringToInt(ctx.Query("offset"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	if limit > 0 {
		condition.Pager = &model.Pager{Limit: limit, Offset: offset}
	}

	tasks, errModel := factory.GetServiceFactory().NewMonitorService().ListTasks(ctx, condition)
	if errModel != nil {
		log.Errorf("ListMonitorTasks error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetMonitorTask 获取监测任务详情
// @Summary 获取监测任务详情
// @Tags Monitor
// @Produce json
// @Param task_id path string true "任务ID"
// @Router /api/monitor/tasks/{task_id} [get]
func GetMonitorTask(ctx *gin.Context) {
	taskID := ctx.Param("task_id")
	if taskID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
		return
	}

	task, errModel := factory.GetServiceFactory().NewMonitorService().
		GetTask(ctx, middleware.CurrentUserID(ctx), taskID)
	if errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteMonitorTask 删除监测任务
// @Summary 删除监测任务
// @Tags Monitor
// @Produce json
// @Param task_id path string true "任务ID"
// @Router /api/monitor/tasks/{task_id} [delete]
func DeleteMonitorTask(ctx *gin.Context) {
	taskID := ctx.Param("task_id")
	if taskID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
		return
	}

	if errModel := factory.GetServiceFactory().NewMonitorService().
		DeleteTask(ctx, middleware.CurrentUserID(ctx), taskID); errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ExecuteMonitorTask 同步执行单个监测任务
// @Summary 执行监测任务
// @Description 模型串行执行，全部跑完返回带结果的任务
// @Tags Monitor
// @Produce json
// @Param task_id path string true "任务ID"
// @Router /api/monitor/tasks/{task_id}/execute [post]
func ExecuteMonitorTask(ctx *gin.Context) {
	taskID := ctx.Param("task_id")
	if taskID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
		return
	}

	task, errModel := factory.GetServiceFactory().NewMonitorService().
		ExecuteTask(ctx.Request.Context(), middleware.CurrentUserID(ctx), taskID)
	if errModel != nil {
		log.Errorf("ExecuteMonitorTask error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// ExecuteBatchRequest 批量执行请求
type ExecuteBatchRequest struct {
	TaskIDs []string `json:"task_ids" binding:"required"`
}

// ExecuteMonitorBatch 异步批量执行
// @Summary 批量执行监测任务
// @Description 后台串行执行，立即返回执行标识
// @Tags Monitor
// @Accept json
// @Produce json
// @Param request body ExecuteBatchRequest true "批量执行请求"
// @Router /api/monitor/execute [post]
func ExecuteMonitorBatch(ctx *gin.Context) {
	var req ExecuteBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, errModel := factory.GetServiceFactory().NewMonitorService().
		ExecuteBatch(ctx, middleware.CurrentUserID(ctx), req.TaskIDs)
	if errModel != nil {
		log.Errorf("ExecuteMonitorBatch error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CancelExecution 取消批量执行
// @Summary 取消批量执行
// @Description 执行中的任务标记为 failed，未开始的保持 pending
// @Tags Monitor
// @Produce json
// @Param execution_id path string true "执行ID"
// @Router /api/monitor/executions/{execution_id}/cancel [post]
func CancelExecution(ctx *gin.Context) {
	executionID := ctx.Param("execution_id")
	if executionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "execution_id is required"})
		return
	}

	if errModel := factory.GetServiceFactory().NewMonitorService().Cancel(executionID); errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "execution canceled"})
}

// QueryAnalytics 问题维度的监测统计
// @Summary 监测统计
// @Description 提及率和各模型平均排名，只统计已完成任务
// @Tags Monitor
// @Produce json
// @Param query_id path string true "问题ID"
// @Router /api/monitor/queries/{query_id}/analytics [get]
func QueryAnalytics(ctx *gin.Context) {
	queryID := ctx.Param("query_id")
	if queryID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query_id is required"})
		return
	}

	analytics, errModel := factory.GetServiceFactory().NewMonitorService().
		Analytics(ctx, middleware.CurrentUserID(ctx), queryID)
	if errModel != nil {
		log.Errorf("QueryAnalytics error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, analytics)
}

// QueryHistory 问题维度的监测历史
// @Summary 监测历史
// @Description 最近的趋势记录，最新的在前
// @Tags Monitor
// @Produce json
// @Param query_id path string true "问题ID"
// @Param limit query int false "返回条数，默认 30"
// @Router /api/monitor/queries/{query_id}/history [get]
func QueryHistory(ctx *gin.Context) {
	queryID := ctx.Param("query_id")
	if queryID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query_id is required"})
		return
	}

	limit := cast.ToInt64(ctx.Query("limit"))
	if limit <= 0 {
		limit = 30
	}

	records, errModel := factory.GetServiceFactory().NewMonitorService().
		History(ctx, middleware.CurrentUserID(ctx), queryID, limit)
	if errModel != nil {
		log.Errorf("QueryHistory error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"history": records})
}
