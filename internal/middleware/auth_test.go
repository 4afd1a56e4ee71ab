package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("filmfolio", cookie.NewStore([]byte("test-secret"))))

	r.POST("/login", func(c *gin.Context) {
		if err := SetAdminSession(c); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.POST("/logout", func(c *gin.Context) {
		ClearAdminSession(c)
		c.Status(http.StatusOK)
	})

	admin := r.Group("/admin")
	admin.Use(RequireAdmin())
	admin.GET("/panel", func(c *gin.Context) {
		c.String(http.StatusOK, "panel")
	})

	return r
}

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestRequireAdminRedirectsHTMLRequests(t *testing.T) {
	r := newGuardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	// 登录页要带上原始路径方便登录后跳回
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fpanel", w.Header().Get("Location"))
}

func TestRequireAdminRejectsAPIRequests(t *testing.T) {
	r := newGuardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAdminAllowsWithSession(t *testing.T) {
	r := newGuardedRouter()
	cookies := login(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "panel", w.Body.String())
}

func TestRequireAdminRejectsForgedCookie(t *testing.T) {
	r := newGuardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	// 伪造未签名的会话 Cookie 不应通过
	req.AddCookie(&http.Cookie{Name: "filmfolio", Value: "admin-session=authenticated"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	r := newGuardedRouter()
	cookies := login(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 用退出后返回的 Cookie 再访问，应被拒绝
	after := w.Result().Cookies()
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	for _, ck := range after {
		req.AddCookie(ck)
	}
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
