package handlers

import (
	"net/http"
	"strings"

	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAssets(c *gin.Context) {
	skuID, ok := optionalID(c, "skuId")
	if !ok {
		respondInvalidID(c, skuEntity)
		return
	}

	page := pageFromQuery(c)
	assets, total, err := h.store.ListAssets(c.Request.Context(), database.AssetFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		SKUID:       skuID,
		Status:      c.Query("status"),
		Datacenter:  strings.TrimSpace(c.Query("datacenter")),
		Environment: c.Query("environment"),
		Page:        page,
	})
	if err != nil {
		h.respondError(c, assetEntity, "ListAssets", err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":     assets,
		"pagination": newPagination(page, total),
	})
}

func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, assetEntity)
		return
	}

	asset, err := h.store.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, assetEntity, "GetAsset", err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	asset := models.NewAsset()
	if err := c.ShouldBindJSON(asset); err != nil {
		h.respondBindError(c, assetEntity, err)
		return
	}

	created, err := h.store.CreateAsset(c.Request.Context(), asset)
	if err != nil {
		h.respondError(c, assetEntity, "CreateAsset", err)
		return
	}

	h.recordChange(c, models.EntityAsset, created.ID, models.ActionCreate, "Created asset "+created.AssetTag)
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, assetEntity)
		return
	}

	asset, err := h.store.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, assetEntity, "UpdateAsset", err)
		return
	}
	base := asset.Base
	asset.SKU = nil
	if err := bindMerge(c, asset); err != nil {
		h.respondBindError(c, assetEntity, err)
		return
	}
	asset.Base = base

	updated, err := h.store.UpdateAsset(c.Request.Context(), asset)
	if err != nil {
		h.respondError(c, assetEntity, "UpdateAsset", err)
		return
	}

	h.recordChange(c, models.EntityAsset, updated.ID, models.ActionUpdate, "Updated asset "+updated.AssetTag)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, assetEntity)
		return
	}

	if err := h.store.DeleteAsset(c.Request.Context(), id); err != nil {
		h.respondError(c, assetEntity, "DeleteAsset", err)
		return
	}

	h.recordChange(c, models.EntityAsset, id, models.ActionDelete, "Deleted asset")
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
