package config

import (
	"fmt"
	"os"
)

// Config 应用配置
type Config struct {
	Env           string
	AppSecret     string
	AdminPassword string
	DatabaseURL   string
	Port          string
	SiteName      string
	SiteUrl       string
	DataDir       string

	// 对象存储（Cloudflare R2，S3 兼容）
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string
}

// Load 加载配置
// 管理密码必须通过环境变量提供，缺失时启动失败，绝不使用内置默认值
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "filmfolio")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil, fmt.Errorf("必须设置 ADMIN_PASSWORD 环境变量")
	}

	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		AppSecret:     getEnv("APP_SECRET", "dev-secret-change-in-production"),
		AdminPassword: adminPassword,
		DatabaseURL:   dbURL,
		Port:          getEnv("PORT", "5008"),
		SiteName:      getEnv("SITE_NAME", "Filmfolio"),
		SiteUrl:       getEnv("SITE_URL", "http://localhost:5008"),
		DataDir:       getEnv("DATA_DIR", "./data"),

		StorageEndpoint:  endpointFromEnv(),
		StorageAccessKey: os.Getenv("R2_ACCESS_KEY_ID"),
		StorageSecretKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		StorageBucket:    os.Getenv("R2_BUCKET_NAME"),
		StoragePublicURL: os.Getenv("R2_PUBLIC_URL"),
	}

	if cfg.Env == "production" && cfg.AppSecret == "dev-secret-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认会话密钥！请立即设置 APP_SECRET 环境变量。")
	}

	// 对象存储配置要么完整，要么完全不配（允许本地开发时禁用上传）
	if cfg.StorageConfigured() {
		if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" ||
			cfg.StorageBucket == "" || cfg.StoragePublicURL == "" {
			return nil, fmt.Errorf("对象存储配置不完整: 需要 R2_ACCESS_KEY_ID/R2_SECRET_ACCESS_KEY/R2_BUCKET_NAME/R2_PUBLIC_URL")
		}
	}

	return cfg, nil
}

// StorageConfigured 是否配置了对象存储
func (c *Config) StorageConfigured() bool {
	return c.StorageEndpoint != ""
}

// endpointFromEnv 根据 R2 账号 ID 拼接 S3 兼容端点，也允许直接指定完整端点
func endpointFromEnv() string {
	if ep := os.Getenv("R2_ENDPOINT"); ep != "" {
		return ep
	}
	if accountID := os.Getenv("R2_ACCOUNT_ID"); accountID != "" {
		return fmt.Sprintf("%s.r2.cloudflarestorage.com", accountID)
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
