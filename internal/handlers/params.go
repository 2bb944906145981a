package handlers

import (
	"strconv"
	"strings"

	"it-inventory/internal/database"

	"github.com/gin-gonic/gin"
)

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func newPagination(p database.Page, total int64) pagination {
	p = p.Normalize()
	return pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: p.Pages(total)}
}

// pageFromQuery reads page and limit, falling back to defaults on bad input.
func pageFromQuery(c *gin.Context) database.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return database.Page{Page: page, Limit: limit}.Normalize()
}

func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func pathID(c *gin.Context) (uint, bool) {
	return parseID(c.Param("id"))
}

// optionalID parses an id query parameter; empty means no filter.
func optionalID(c *gin.Context, key string) (uint, bool) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, true
	}
	return parseID(v)
}

// idList parses a comma separated list of ids, ignoring empty items.
func idList(s string) ([]uint, bool) {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, ok := parseID(part)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
