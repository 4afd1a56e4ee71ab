package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// statusTag 按状态码分级，便于日志检索
func statusTag(status int) string {
	switch {
	case status >= 500:
		return "ERROR"
	case status >= 400:
		return "WARN"
	default:
		return "INFO"
	}
}

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		// 处理请求
		c.Next()

		// 记录日志
		latency := time.Since(start)
		status := c.Writer.Status()

		log.Printf("[%s] %s %s %s %d %v",
			statusTag(status),
			c.Request.Method,
			path,
			c.ClientIP(),
			status,
			latency,
		)

		// 处理链挂到 gin 上的错误逐条展开
		for _, e := range c.Errors {
			log.Printf("[ERROR] %s %s: %v", c.Request.Method, path, e.Err)
		}
	}
}
