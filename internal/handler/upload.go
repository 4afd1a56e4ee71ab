package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/user/filmfolio/internal/service"
	"github.com/user/filmfolio/internal/utils"
)

// Upload 接收 multipart 上传并写入对象存储
// 表单字段：file 必填，type 可选（banner | thumbnail | video）
func (h *Handler) Upload(c *gin.Context) {
	if h.Uploader == nil {
		utils.InternalServerError(c, "对象存储未配置")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, service.ErrFileMissing.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("读取上传文件失败: %v", err)
		utils.InternalServerError(c, "文件上传失败")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	hint := c.PostForm("type")

	result, err := h.Uploader.Upload(c.Request.Context(), file,
		fileHeader.Filename, contentType, fileHeader.Size, hint)
	if err != nil {
		if errors.Is(err, service.ErrFileMissing) ||
			errors.Is(err, service.ErrFileTooLarge) ||
			errors.Is(err, service.ErrFileType) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("上传对象存储失败: %v", err)
		utils.InternalServerError(c, "文件上传失败")
		return
	}

	utils.Success(c, result)
}
