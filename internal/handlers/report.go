package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"it-inventory/internal/models"
	"it-inventory/internal/reports"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FinancialReport serves GET /api/reports/financial.
func (h *Handler) FinancialReport(c *gin.Context) {
	req := reports.Request{Type: reports.Type(c.DefaultQuery("type", string(reports.TypeForecast)))}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"startDate", &req.StartDate},
		{"endDate", &req.EndDate},
		{"targetDate", &req.TargetDate},
	} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		d, err := models.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + p.key, "details": []string{err.Error()}})
			return
		}
		*p.dst = &d.Time
	}

	ids, ok := idList(c.Query("assetIds"))
	if !ok {
		respondInvalidID(c, assetEntity)
		return
	}
	req.AssetIDs = ids

	if c.Query("format") == "xlsx" {
		h.exportReport(c, req)
		return
	}

	report, err := h.reports.Build(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, assetEntity, "FinancialReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) exportReport(c *gin.Context, req reports.Request) {
	report, err := h.reports.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, assetEntity, "exportReport", err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteXLSX(&buf, report); err != nil {
		h.respondError(c, assetEntity, "exportReport", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report.xlsx", report.Type))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
