package handlers

import (
	"net/http"
	"strings"

	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCatalogs(c *gin.Context) {
	page := pageFromQuery(c)
	catalogs, total, err := h.store.ListCatalogs(c.Request.Context(), database.CatalogFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Page:     page,
	})
	if err != nil {
		h.respondError(c, catalogEntity, "ListCatalogs", err)
		return
	}
	if catalogs == nil {
		catalogs = []models.Catalog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"catalogs":   catalogs,
		"pagination": newPagination(page, total),
	})
}

func (h *Handler) GetCatalog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, catalogEntity)
		return
	}

	catalog, err := h.store.GetCatalog(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, catalogEntity, "GetCatalog", err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

func (h *Handler) CreateCatalog(c *gin.Context) {
	catalog := models.NewCatalog()
	if err := c.ShouldBindJSON(catalog); err != nil {
		h.respondBindError(c, catalogEntity, err)
		return
	}

	created, err := h.store.CreateCatalog(c.Request.Context(), catalog)
	if err != nil {
		h.respondError(c, catalogEntity, "CreateCatalog", err)
		return
	}

	h.recordChange(c, models.EntityCatalog, created.ID, models.ActionCreate, "Created catalog "+created.Name)
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateCatalog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, catalogEntity)
		return
	}

	catalog, err := h.store.GetCatalog(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, catalogEntity, "UpdateCatalog", err)
		return
	}
	base := catalog.Base
	if err := bindMerge(c, catalog); err != nil {
		h.respondBindError(c, catalogEntity, err)
		return
	}
	catalog.Base = base

	updated, err := h.store.UpdateCatalog(c.Request.Context(), catalog)
	if err != nil {
		h.respondError(c, catalogEntity, "UpdateCatalog", err)
		return
	}

	h.recordChange(c, models.EntityCatalog, updated.ID, models.ActionUpdate, "Updated catalog "+updated.Name)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteCatalog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		respondInvalidID(c, catalogEntity)
		return
	}

	if err := h.store.DeleteCatalog(c.Request.Context(), id); err != nil {
		h.respondError(c, catalogEntity, "DeleteCatalog", err)
		return
	}

	h.recordChange(c, models.EntityCatalog, id, models.ActionDelete, "Deleted catalog")
	c.JSON(http.StatusOK, gin.H{"message": "Catalog deleted successfully"})
}
