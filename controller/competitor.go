package controller

import (
	"net/http"

	"github.com/FeifanTech/GEO-Nexus/middleware"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreateCompetitor 创建竞品
// @Summary 创建竞品
// @Tags Competitor
// @Accept json
// @Produce json
// @Param request body model.UpsertCompetitorRequest true "竞品内容"
// @Router /api/competitors [post]
func CreateCompetitor(ctx *gin.Context) {
	var req model.UpsertCompetitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	competitor, errModel := factory.GetServiceFactory().NewCatalogService().
		CreateCompetitor(ctx, middleware.CurrentUserID(ctx), &req)
	if errModel != nil {
		log.Errorf("CreateCompetitor error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusCreated, competitor)
}

// ListCompetitors 竞品列表
// @Summary 竞品列表
// @Tags Competitor
// @Produce json
// @Router /api/competitors [get]
func ListCompetitors(ctx *gin.Context) {
	competitors, errModel := factory.GetServiceFactory().NewCatalogService().
		ListCompetitors(ctx, middleware.CurrentUserID(ctx))
	if errModel != nil {
		log.Errorf("ListCompetitors error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"competitors": competitors})
}

// UpdateCompetitor 更新竞品
// @Summary 更新竞品
// @Tags Competitor
// @Accept json
// @Produce json
// @Param competitor_id path string true "竞品ID"
// @Param request body model.UpsertCompetitorRequest true "竞品内容"
// @Router /api/competitors/{competitor_id} [put]
func UpdateCompetitor(ctx *gin.Context) {
	competitorID := ctx.Param("competitor_id")
	if competitorID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "competitor_id is required"})
		return
	}

	var req model.UpsertCompetitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	competitor, errModel := factory.GetServiceFactory().NewCatalogService().
		UpdateCompetitor(ctx, middleware.CurrentUserID(ctx), competitorID, &req)
	if errModel != nil {
		log.Errorf("UpdateCompetitor error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, competitor)
}

// DeleteCompetitor 删除竞品
// @Summary 删除竞品
// @Tags Competitor
// @Produce json
// @Param competitor_id path string true "竞品ID"
// @Router /api/competitors/{competitor_id} [delete]
func DeleteCompetitor(ctx *gin.Context) {
	competitorID := ctx.Param("competitor_id")
	if competitorID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "competitor_id is required"})
		return
	}

	if errModel := factory.GetServiceFactory().NewCatalogService().
		DeleteCompetitor(ctx, middleware.CurrentUserID(ctx), competitorID); errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.Status(http.StatusNoContent)
}
