package handlers

import (
	"errors"
	"net/http"

	"it-inventory/internal/database"
	"it-inventory/internal/middleware"
	"it-inventory/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"notblank"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, userEntity, err)
		return
	}

	user, err := h.store.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.respondError(c, userEntity, "Login", err)
		return
	}
	if user == nil || !database.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionRole, string(user.Role))
	if err := sess.Save(); err != nil {
		h.respondError(c, userEntity, "Login", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := sess.Save(); err != nil {
		h.respondError(c, userEntity, "Logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	Username string          `json:"username" binding:"notblank,min=3,max=50"`
	Password string          `json:"password" binding:"required,min=8,max=72"`
	Role     models.UserRole `json:"role" binding:"required,oneof=admin editor viewer"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, userEntity, "ListUsers", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, userEntity, err)
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.respondError(c, userEntity, "CreateUser", err)
		return
	}

	h.audit(c, models.EntityUser, user.ID, models.ActionCreate, "Created user "+user.Username+" with role "+string(user.Role))
	c.JSON(http.StatusCreated, user)
}

// Health answers liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
