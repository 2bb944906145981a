package handlers

import (
	"net/http"
	"strings"

	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSKUs(c *gin.Context) {
	catalogID, ok := optionalID(c, "catalogId")
	if !ok {
		respondInvalidID(c, catalogEntity)
		return
	}

	page := pageFromQuery(c)
	skus, total, err := h.store.ListSKUs(c.Request.Context(), database.SKUFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		CatalogID:    catalogID,
		Manufacturer: strings.TrimSpace(c.Query("manufacturer")),
		Status:       c.Query("status"),
		Page:         page,
	})
	if err != nil {
		h.respondError(c, skuEntity, "ListSKUs", err)
		return
	}
	if skus == nil {
		skus = []models.SKU{}
	}

	c.JSON(http.StatusOK, gin.H{
		"skus":       skus,
		"pagination": newPagination(page, total),
	})
}

func (h *Handler) GetSKU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, skuEntity)
		return
	}

	sku, err := h.store.GetSKU(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, skuEntity, "GetSKU", err)
		return
	}
	c.JSON(http.StatusOK, sku)
}

func (h *Handler) CreateSKU(c *gin.Context) {
	sku := models.NewSKU()
	if err := c.ShouldBindJSON(sku); err != nil {
		h.respondBindError(c, skuEntity, err)
		return
	}

	created, err := h.store.CreateSKU(c.Request.Context(), sku)
	if err != nil {
		h.respondError(c, skuEntity, "CreateSKU", err)
		return
	}

	h.recordChange(c, models.EntitySKU, created.ID, models.ActionCreate, "Created SKU "+created.SKUCode)
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateSKU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, skuEntity)
		return
	}

	sku, err := h.store.GetSKU(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, skuEntity, "UpdateSKU", err)
		return
	}
	base := sku.Base
	sku.Catalog = nil
	if err := bindMerge(c, sku); err != nil {
		h.respondBindError(c, skuEntity, err)
		return
	}
	sku.Base = base

	updated, err := h.store.UpdateSKU(c.Request.Context(), sku)
	if err != nil {
		h.respondError(c, skuEntity, "UpdateSKU", err)
		return
	}

	h.recordChange(c, models.EntitySKU, updated.ID, models.ActionUpdate, "Updated SKU "+updated.SKUCode)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteSKU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, skuEntity)
		return
	}

	if err := h.store.DeleteSKU(c.Request.Context(), id); err != nil {
		h.respondError(c, skuEntity, "DeleteSKU", err)
		return
	}

	h.recordChange(c, models.EntitySKU, id, models.ActionDelete, "Deleted SKU")
	c.JSON(http.StatusOK, gin.H{"message": "SKU deleted successfully"})
}
