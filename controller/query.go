package controller

import (
	"net/http"

	"github.com/FeifanTech/GEO-Nexus/middleware"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreateQuery 创建搜索问题
// @Summary 创建搜索问题
// @Tags Query
// @Accept json
// @Produce json
// @Param request body model.UpsertQueryRequest true "问题内容"
// @Router /api/queries [post]
func CreateQuery(ctx *gin.Context) {
	var req model.UpsertQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query, errModel := factory.GetServiceFactory().NewCatalogService().
		CreateQuery(ctx, middleware.CurrentUserID(ctx), &req)
	if errModel != nil {
		log.Errorf("CreateQuery error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusCreated, query)
}

// ListQueries 问题列表
// @Summary 问题列表
// @Tags Query
// @Produce json
// @Router /api/queries [get]
func ListQueries(ctx *gin.Context) {
	queries, errModel := factory.GetServiceFactory().NewCatalogService().
		ListQueries(ctx, middleware.CurrentUserID(ctx))
	if errModel != nil {
		log.Errorf("ListQueries error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"queries": queries})
}

// UpdateQuery 更新搜索问题
// @Summary 更新搜索问题
// @Tags Query
// @Accept json
// @Produce json
// @Param query_id path string true "问题ID"
// @Param request body model.UpsertQueryRequest true "问题内容"
// @Router /api/queries/{query_id} [put]
func UpdateQuery(ctx *gin.Context) {
	queryID := ctx.Param("query_id")
	if queryID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query_id is required"})
		return
	}

	var req model.UpsertQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query, errModel := factory.GetServiceFactory().NewCatalogService().
		UpdateQuery(ctx, middleware.CurrentUserID(ctx), queryID, &req)
	if errModel != nil {
		log.Errorf("UpdateQuery error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, query)
}

// DeleteQuery 删除搜索问题
// @Summary 删除搜索问题
// @Tags Query
// @Produce json
// @Param query_id path string true "问题ID"
// @Router /api/queries/{query_id} [delete]
func DeleteQuery(ctx *gin.Context) {
	queryID := ctx.Param("query_id")
	if queryID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query_id is required"})
		return
	}

	if errModel := factory.GetServiceFactory().NewCatalogService().
		DeleteQuery(ctx, middleware.CurrentUserID(ctx), queryID); errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.Status(http.StatusNoContent)
}
