package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/user/filmfolio/internal/model"
	"github.com/user/filmfolio/internal/utils"
)

// SubmitContact 提交联系表单
// 邮件/Webhook 通知是预留的集成点，目前只落库
func (h *Handler) SubmitContact(c *gin.Context) {
	if !h.contactLimiter.Allow(utils.HashIP(c.ClientIP())) {
		utils.Error(c, 429, "发送太频繁，请稍后再试")
		return
	}

	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Repos.Contact.Create(msg); err != nil {
		log.Printf("保存留言失败: %v", err)
		utils.InternalServerError(c, "留言发送失败，请稍后再试")
		return
	}

	utils.SuccessWithMessage(c, "留言发送成功，我们会尽快回复", nil)
}

// ListContacts 后台查看最近留言
func (h *Handler) ListContacts(c *gin.Context) {
	msgs, err := h.Repos.Contact.ListRecent(100)
	if err != nil {
		log.Printf("查询留言失败: %v", err)
		utils.InternalServerError(c, "查询留言失败")
		return
	}
	if msgs == nil {
		msgs = []*model.ContactMessage{}
	}
	utils.Success(c, msgs)
}
