package router

import (
	"github.com/gin-gonic/gin"

	"github.com/user/filmfolio/internal/handler"
	"github.com/user/filmfolio/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	api := r.Group("/api")
	{
		// ==================== 健康检查 ====================
		api.GET("/health", h.Health)

		// ==================== 认证 ====================
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
		}

		// ==================== 公开接口 ====================
		api.GET("/films", h.ListFilms)
		api.GET("/films/:id", h.GetFilm)
		api.GET("/settings/banner", h.GetBanner)
		api.GET("/settings/bio", h.GetBio)
		api.POST("/contact", h.SubmitContact)

		// ==================== 管理接口（需要会话）====================
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/films", h.CreateFilm)
			admin.PATCH("/films/:id", h.UpdateFilm)
			admin.DELETE("/films/:id", h.DeleteFilm)
			admin.POST("/upload", h.Upload)
			admin.POST("/settings/banner", h.PostBanner)
			admin.POST("/settings/bio", h.PostBio)
			admin.GET("/contact", h.ListContacts)
		}
	}

	// 前端构建产物由 gin 托管；/admin 下的页面同样走会话闸门，未登录跳转登录页
	r.StaticFile("/login", "./web/login.html")
	adminPages := r.Group("/admin")
	adminPages.Use(middleware.RequireAdmin())
	{
		adminPages.StaticFile("", "./web/admin.html")
	}
}
