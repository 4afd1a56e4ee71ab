package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/filmfolio/internal/middleware"
	"github.com/user/filmfolio/internal/utils"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// 密码比对通过即种下会话哨兵，24 小时有效
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Unauthorized(c, "密码错误")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.adminHash, []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "密码错误")
		return
	}

	if err := middleware.SetAdminSession(c); err != nil {
		log.Printf("写入会话失败: %v", err)
		utils.InternalServerError(c, "登录处理失败")
		return
	}

	utils.SuccessWithMessage(c, "登录成功", nil)
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.ClearAdminSession(c); err != nil {
		log.Printf("清除会话失败: %v", err)
		utils.InternalServerError(c, "退出处理失败")
		return
	}
	utils.SuccessWithMessage(c, "已退出登录", nil)
}
