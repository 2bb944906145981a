package handlers

import (
	"net/http"

	"it-inventory/internal/database"
	"it-inventory/internal/logging"
	"it-inventory/internal/middleware"
	"it-inventory/internal/models"

	"github.com/gin-gonic/gin"
)

// recordChange drops cached reports after an inventory mutation and audits
// it.
func (h *Handler) recordChange(c *gin.Context, entityName string, id uint, action, details string) {
	h.reports.Invalidate(c.Request.Context())
	h.audit(c, entityName, id, action, details)
}

// audit failures are logged, not returned to the client.
func (h *Handler) audit(c *gin.Context, entityName string, id uint, action, details string) {
	entry := &models.AuditLog{
		Entity:    entityName,
		EntityID:  id,
		Action:    action,
		Details:   details,
		RequestID: middleware.RequestID(c),
	}
	if u, ok := middleware.CurrentUser(c); ok {
		entry.UserID = &u.ID
		entry.Username = u.Username
	}
	if err := h.store.RecordAudit(c.Request.Context(), entry); err != nil {
		logging.LogError(h.log, "handlers", "recordChange", "writing audit log", entry, err)
	}
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	entityID, ok := optionalID(c, "entityId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity ID"})
		return
	}

	page := pageFromQuery(c)
	logs, total, err := h.store.ListAudit(c.Request.Context(), database.AuditFilter{
		Entity:   c.Query("entity"),
		EntityID: entityID,
		Page:     page,
	})
	if err != nil {
		h.respondError(c, entity{name: "Audit log"}, "ListAuditLogs", err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": newPagination(page, total),
	})
}
