package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/filmfolio/internal/model"
)

// duplicatePreparedStatement PostgreSQL 的 duplicate_prepared_statement 错误码
// 经由连接池代理（pgbouncer 等）复用连接时，缓存的预编译语句可能失效并触发该错误
const duplicatePreparedStatement = "42P05"

// DB 数据库句柄
// 由启动流程显式构造并注入，不使用包级全局状态；重连时整体换掉底层 gorm 句柄
type DB struct {
	mu     sync.Mutex
	gdb    *gorm.DB
	reopen func() (*gorm.DB, error)
}

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*DB, error) {
	open := func() (*gorm.DB, error) {
		gdb, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("无法连接数据库: %w", err)
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("数据库 ping 失败: %w", err)
		}

		// 设置连接池
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)

		return gdb, nil
	}

	gdb, err := open()
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&model.Film{}, &model.ContactMessage{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return &DB{gdb: gdb, reopen: open}, nil
}

// NewDB 用现成的 gorm 句柄构造（测试用）
func NewDB(gdb *gorm.DB, reopen func() (*gorm.DB, error)) *DB {
	return &DB{gdb: gdb, reopen: reopen}
}

// Gorm 返回当前 gorm 句柄
func (d *DB) Gorm() *gorm.DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gdb
}

// WithRetry 执行一次数据库操作
// 命中预编译语句类瞬时错误时断开重连并重试恰好一次，其余错误原样透传；
// 上限一次是刻意的，避免掩盖持续性故障
func (d *DB) WithRetry(fn func(tx *gorm.DB) error) error {
	err := fn(d.Gorm())
	if err == nil || !IsTransient(err) {
		return err
	}
	// 没有重连函数的句柄（外部注入的现成连接）无法恢复，原样透传
	if d.reopen == nil {
		return err
	}

	if rerr := d.reconnect(); rerr != nil {
		return rerr
	}
	return fn(d.Gorm())
}

// reconnect 关闭底层连接并重新建立 gorm 句柄
func (d *DB) reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sqlDB, err := d.gdb.DB(); err == nil {
		sqlDB.Close()
	}

	gdb, err := d.reopen()
	if err != nil {
		return fmt.Errorf("数据库重连失败: %w", err)
	}
	d.gdb = gdb
	return nil
}

// Ping 测试连通性（健康检查用）
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.Gorm().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭底层连接
func (d *DB) Close() error {
	sqlDB, err := d.Gorm().DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsTransient 判断错误是否属于可通过重连恢复的瞬时类别
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == duplicatePreparedStatement {
		return true
	}
	return strings.Contains(err.Error(), "prepared statement")
}

// Repositories 仓库集合
type Repositories struct {
	DB      *DB
	Film    *FilmRepository
	Contact *ContactRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		DB:      db,
		Film:    NewFilmRepository(db),
		Contact: NewContactRepository(db),
	}
}
