package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/user/filmfolio/internal/settings"
	"github.com/user/filmfolio/internal/utils"
)

// GetBanner 读取 banner 配置，文档缺失时返回默认值
func (h *Handler) GetBanner(c *gin.Context) {
	c.JSON(200, h.Settings.Banner())
}

// PostBanner 保存 banner 配置（合并写入）
func (h *Handler) PostBanner(c *gin.Context) {
	var req settings.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "banner 图片地址不能为空")
		return
	}

	doc, err := h.Settings.UpdateBanner(req)
	if err != nil {
		log.Printf("保存 banner 配置失败: %v", err)
		utils.InternalServerError(c, "保存 banner 配置失败")
		return
	}

	utils.SuccessWithMessage(c, "banner 已保存", doc)
}

// GetBio 读取个人简介配置
func (h *Handler) GetBio(c *gin.Context) {
	c.JSON(200, h.Settings.Bio())
}

// PostBio 保存个人简介配置（合并写入，简介正文允许显式清空）
func (h *Handler) PostBio(c *gin.Context) {
	var req settings.UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求体不是合法 JSON")
		return
	}

	doc, err := h.Settings.UpdateBio(req)
	if err != nil {
		log.Printf("保存简介配置失败: %v", err)
		utils.InternalServerError(c, "保存简介配置失败")
		return
	}

	utils.SuccessWithMessage(c, "简介已保存", doc)
}
