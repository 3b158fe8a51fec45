package controller

import (
	"net/http"

	"github.com/FeifanTech/GEO-Nexus/middleware"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreateProduct 创建产品
// @Summary 创建产品
// @Tags Product
// @Accept json
// @Produce json
// @Param request body model.UpsertProductRequest true "产品内容"
// @Router /api/products [post]
func CreateProduct(ctx *gin.Context) {
	var req model.UpsertProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, errModel := factory.GetServiceFactory().NewCatalogService().
		CreateProduct(ctx, middleware.CurrentUserID(ctx), &req)
	if errModel != nil {
		log.Errorf("CreateProduct error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// ListProducts 产品列表
// @Summary 产品列表
// @Tags Product
// @Produce json
// @Router /api/products [get]
func ListProducts(ctx *gin.Context) {
	products, errModel := factory.GetServiceFactory().NewCatalogService().
		ListProducts(ctx, middleware.CurrentUserID(ctx))
	if errModel != nil {
		log.Errorf("ListProducts error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct 更新产品
// @Summary 更新产品
// @Tags Product
// @Accept json
// @Produce json
// @Param product_id path string true "产品ID"
// @Param request body model.UpsertProductRequest true "产品内容"
// @Router /api/products/{product_id} [put]
func UpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("product_id")
	if productID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	var req model.UpsertProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, errModel := factory.GetServiceFactory().NewCatalogService().
		UpdateProduct(ctx, middleware.CurrentUserID(ctx), productID, &req)
	if errModel != nil {
		log.Errorf("UpdateProduct error: %v", errModel)
		writeServiceError(ctx, errModel)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct 删除产品
// @Summary 删除产品
// @Tags Product
// @Produce json
// @Param product_id path string true "产品ID"
// @Router /api/products/{product_id} [delete]
func DeleteProduct(ctx *gin.Context) {
	productID := ctx.Param("product_id")
	if productID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	if errModel := factory.GetServiceFactory().NewCatalogService().
		DeleteProduct(ctx, middleware.CurrentUserID(ctx), productID); errModel != nil {
		writeServiceError(ctx, errModel)
		return
	}

	ctx.Status(http.StatusNoContent)
}
