package middleware

import (
	"context"
	"errors"

	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentUserKey = "CurrentUser"

type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// InjectUser loads the session's user into the request context. A session
// pointing at a user that no longer exists is cleared.
func InjectUser(users UserLookup, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := sessionUserID(c); ok {
			user, err := users.GetUser(c.Request.Context(), uid)
			switch {
			case err == nil:
				c.Set(currentUserKey, user)
			case errors.Is(err, database.ErrNotFound):
				log.WithField("userId", uid).Warn("dropping session of unknown user")
				sess := sessions.Default(c)
				sess.Clear()
				_ = sess.Save()
			default:
				log.WithError(err).WithField("userId", uid).Error("failed to load session user")
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// SetCurrentUser is used by tests and by routers that authenticate by other
// means.
func SetCurrentUser(c *gin.Context, u *models.User) {
	c.Set(currentUserKey, u)
}
