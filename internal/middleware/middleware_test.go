package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetUser(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

// newEngine wires sessions, a login route that stores uid, and InjectUser.
func newEngine(users fakeUsers) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDs())
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(InjectUser(users, logrus.New()))
	r.GET("/login/:uid", func(c *gin.Context) {
		var uid uint
		for _, ch := range c.Param("uid") {
			uid = uid*10 + uint(ch-'0')
		}
		sess := sessions.Default(c)
		sess.Set(SessionUserID, uid)
		_ = sess.Save()
		c.Status(http.StatusNoContent)
	})
	return r
}

func login(t *testing.T, r *gin.Engine, uid string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+uid, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func do(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	users := fakeUsers{
		1: {Base: models.Base{ID: 1}, Username: "admin", Role: models.RoleAdmin},
		2: {Base: models.Base{ID: 2}, Username: "viewer", Role: models.RoleViewer},
	}
	r := newEngine(users)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/any", RequireAuth(), ok)
	r.GET("/admin", RequireRole(models.RoleAdmin), ok)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", nil).Code)

	admin := login(t, r, "1")
	assert.Equal(t, http.StatusOK, do(r, "/any", admin).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", admin).Code)

	viewer := login(t, r, "2")
	assert.Equal(t, http.StatusOK, do(r, "/any", viewer).Code)
	w := do(r, "/admin", viewer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Access denied"}`, w.Body.String())

	stale := login(t, r, "9")
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", stale).Code)
}

func TestRequestIDs(t *testing.T) {
	r := newEngine(fakeUsers{})
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := do(r, "/id", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestIDs(), Logger(log))
	r.GET("/fail", func(c *gin.Context) { _ = c.AbortWithError(http.StatusInternalServerError, errors.New("boom")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/fail", entry["path"])
	assert.EqualValues(t, 500, entry["status"])
	assert.NotEmpty(t, entry["requestId"])
}
