package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"it-inventory/internal/database"
	"it-inventory/internal/logging"
	"it-inventory/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// entity names a resource in user-facing messages.
type entity struct {
	name   string // "Catalog"
	lower  string // "catalog"
	inUse  string
	parent string // message when the referenced parent is missing
}

var (
	catalogEntity = entity{
		name:  "Catalog",
		lower: "catalog",
		inUse: "Cannot delete catalog with associated SKUs",
	}
	skuEntity = entity{
		name:   "SKU",
		lower:  "SKU",
		inUse:  "Cannot delete SKU with associated assets",
		parent: "catalogId: catalog does not exist",
	}
	assetEntity = entity{
		name:   "Asset",
		lower:  "asset",
		parent: "skuId: SKU does not exist",
	}
	userEntity = entity{
		name:  "User",
		lower: "user",
	}
)

var duplicateMessages = map[string]string{
	"assetTag":          "Asset tag already exists",
	"skuCode":           "SKU code already exists",
	"name,manufacturer": "A catalog with this name and manufacturer already exists",
	"username":          "Username already exists",
}

func (h *Handler) respondError(c *gin.Context, e entity, funcName string, err error) {
	var (
		dup  *database.DuplicateError
		verr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error", "details": validationDetails(verr)})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": e.name + " not found"})
	case errors.Is(err, database.ErrInUse):
		msg := e.inUse
		if msg == "" {
			msg = e.name + " is still in use"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, database.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error", "details": []string{e.parent}})
	case errors.As(err, &dup):
		msg, ok := duplicateMessages[dup.Field]
		if !ok {
			msg = "A record with this information already exists"
		}
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case errors.Is(err, reports.ErrDateRangeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date and end date are required for forecast report"})
	case errors.Is(err, reports.ErrRangeTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Forecast range may cover at most " + strconv.Itoa(reports.MaxForecastMonths) + " months"})
	case errors.Is(err, reports.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
	default:
		logging.LogError(h.log, "handlers", funcName, c.Request.Method+" "+c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondBindError answers a body that failed to decode or validate.
func (h *Handler) respondBindError(c *gin.Context, e entity, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		h.respondError(c, e, "bind", err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": []string{err.Error()}})
}

func respondInvalidID(c *gin.Context, e entity) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + e.lower + " ID"})
}

func validationDetails(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fieldPath(fe)+": "+describe(fe))
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "ip":
		return "must be a valid IP address"
	case "mac":
		return "must be a valid MAC address"
	case "gtefield":
		return "must not be before " + fe.Param()
	}
	return "failed " + fe.Tag() + " validation"
}
