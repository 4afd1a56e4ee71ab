package handler

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/filmfolio/internal/config"
	"github.com/user/filmfolio/internal/repository"
	"github.com/user/filmfolio/internal/service"
	"github.com/user/filmfolio/internal/settings"
	"github.com/user/filmfolio/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Uploader *service.Uploader // 未配置对象存储时为 nil
	Settings *settings.Store

	// 管理密码只在启动时哈希一次，之后进程内不再保留明文
	adminHash []byte

	contactLimiter *utils.RateLimiter
	viewDedup      *utils.ViewDedup
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config, uploader *service.Uploader, store *settings.Store) (*Handler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("管理密码哈希失败: %w", err)
	}

	return &Handler{
		Repos:          repos,
		Config:         cfg,
		Uploader:       uploader,
		Settings:       store,
		adminHash:      hash,
		contactLimiter: utils.NewRateLimiter(5, time.Hour),
		viewDedup:      utils.NewViewDedup(4096, time.Hour),
	}, nil
}

// isDev 开发环境下错误响应才携带细节
func (h *Handler) isDev() bool {
	return h.Config.Env != "production"
}
