package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Health 健康检查
// 报告配置是否就位、客户端是否初始化、数据库与对象存储是否真正可达；
// 数据库和存储的探测并行执行
func (h *Handler) Health(c *gin.Context) {
	checks := gin.H{
		"databaseUrl": h.Config.DatabaseURL != "",
		"client":      h.Repos != nil && h.Repos.DB != nil,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var dbConnected, storeConnected bool
	var dbErr, storeErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if h.Repos == nil || h.Repos.DB == nil {
			return nil
		}
		if dbErr = h.Repos.DB.Ping(gctx); dbErr == nil {
			dbErr = h.Repos.DB.Gorm().WithContext(gctx).Exec("SELECT 1").Error
		}
		dbConnected = dbErr == nil
		return nil
	})
	g.Go(func() error {
		if h.Uploader == nil {
			return nil
		}
		storeErr = h.Uploader.Ping(gctx)
		storeConnected = storeErr == nil
		return nil
	})
	g.Wait()

	checks["databaseConnection"] = dbConnected
	checks["objectStore"] = storeConnected
	if dbErr != nil {
		checks["error"] = dbErr.Error()
	} else if storeErr != nil {
		checks["error"] = storeErr.Error()
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
