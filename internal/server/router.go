package server

import (
	"net/http"
	"time"

	"it-inventory/internal/config"
	"it-inventory/internal/handlers"
	"it-inventory/internal/middleware"
	"it-inventory/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionName = "inventory_session"

type Deps struct {
	Store   handlers.Store
	Reports handlers.ReportService
	Log     *logrus.Logger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDs())

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AddAllowMethods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions)
		corsConfig.AddAllowHeaders(middleware.RequestIDHeader)
		corsConfig.AddExposeHeaders(middleware.RequestIDHeader, "Content-Disposition")
		corsConfig.AllowCredentials = true
		corsConfig.MaxAge = 12 * time.Hour
		r.Use(cors.New(corsConfig))
	}

	h := handlers.New(deps.Store, deps.Reports, deps.Log)

	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.Use(middleware.Logger(deps.Log))

	// with auth disabled every caller may read and write
	read := []gin.HandlerFunc{}
	write := []gin.HandlerFunc{}
	audit := []gin.HandlerFunc{}

	if cfg.AuthEnabled {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(sessions.Options{Path: "/", MaxAge: 12 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
		api.Use(sessions.Sessions(sessionName, store))
		api.Use(middleware.InjectUser(deps.Store, deps.Log))

		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.GET("/auth/me", middleware.RequireAuth(), h.Me)

		api.GET("/users", middleware.RequireRole(models.RoleAdmin), h.ListUsers)
		api.POST("/users", middleware.RequireRole(models.RoleAdmin), h.CreateUser)

		read = append(read, middleware.RequireAuth())
		write = append(write, middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
		audit = append(audit, middleware.RequireRole(models.RoleAdmin, models.RoleViewer))
	}

	// CATALOGS
	api.GET("/catalogs", with(read, h.ListCatalogs)...)
	api.POST("/catalogs", with(write, h.CreateCatalog)...)
	api.GET("/catalogs/:id", with(read, h.GetCatalog)...)
	api.PUT("/catalogs/:id", with(write, h.UpdateCatalog)...)
	api.DELETE("/catalogs/:id", with(write, h.DeleteCatalog)...)

	// SKUS
	api.GET("/skus", with(read, h.ListSKUs)...)
	api.POST("/skus", with(write, h.CreateSKU)...)
	api.GET("/skus/:id", with(read, h.GetSKU)...)
	api.PUT("/skus/:id", with(write, h.UpdateSKU)...)
	api.DELETE("/skus/:id", with(write, h.DeleteSKU)...)

	// ASSETS
	api.GET("/assets", with(read, h.ListAssets)...)
	api.POST("/assets", with(write, h.CreateAsset)...)
	api.GET("/assets/:id", with(read, h.GetAsset)...)
	api.PUT("/assets/:id", with(write, h.UpdateAsset)...)
	api.DELETE("/assets/:id", with(write, h.DeleteAsset)...)

	// REPORTS
	api.GET("/reports/financial", with(read, h.FinancialReport)...)

	// AUDIT
	api.GET("/audit", with(audit, h.ListAuditLogs)...)

	return r
}

func with(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
