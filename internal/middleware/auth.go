package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// 会话中的管理员哨兵值：存在且相等即视为已登录，没有更多状态
const (
	adminSessionKey = "admin-session"
	adminSentinel   = "authenticated"
)

// SessionMaxAge 管理会话有效期 24 小时
const SessionMaxAge = 86400

// RequireAdmin 管理区会话闸门
// 页面请求未登录时重定向到登录页并带上原始路径，API 请求返回 401
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未登录",
		})
	}
}

// IsAdmin 判断当前请求是否持有管理会话
func IsAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	v := session.Get(adminSessionKey)
	s, ok := v.(string)
	return ok && s == adminSentinel
}

// SetAdminSession 写入管理会话哨兵
func SetAdminSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Set(adminSessionKey, adminSentinel)
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session.Save()
}

// ClearAdminSession 清除管理会话
func ClearAdminSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(adminSessionKey)
	session.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return session.Save()
}
