package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockGorm 用 sqlmock 搭一个 gorm 句柄，重连路径不需要真实数据库
func newMockGorm(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"预编译语句消息", errors.New(`ERROR: prepared statement "stmt_1" already exists`), true},
		{"42P05 错误码", &pgconn.PgError{Code: "42P05"}, true},
		{"其它 pg 错误码", &pgconn.PgError{Code: "23505"}, false},
		{"普通错误", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestWithRetryRecoversAfterReconnect(t *testing.T) {
	reopened := 0
	db := NewDB(newMockGorm(t), func() (*gorm.DB, error) {
		reopened++
		return newMockGorm(t), nil
	})

	attempts := 0
	err := db.WithRetry(func(tx *gorm.DB) error {
		attempts++
		if attempts == 1 {
			return errors.New(`ERROR: prepared statement "stmt_7" already exists`)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "应当恰好重试一次")
	assert.Equal(t, 1, reopened, "应当恰好重连一次")
}

func TestWithRetryDoesNotRetryOtherErrors(t *testing.T) {
	reopened := 0
	db := NewDB(newMockGorm(t), func() (*gorm.DB, error) {
		reopened++
		return newMockGorm(t), nil
	})

	boom := errors.New("connection refused")
	attempts := 0
	err := db.WithRetry(func(tx *gorm.DB) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	assert.Zero(t, reopened, "非瞬时错误不应触发重连")
}

func TestWithRetryGivesUpAfterSecondFailure(t *testing.T) {
	db := NewDB(newMockGorm(t), func() (*gorm.DB, error) {
		return newMockGorm(t), nil
	})

	persistent := &pgconn.PgError{Code: "42P05", Message: "prepared statement already exists"}
	attempts := 0
	err := db.WithRetry(func(tx *gorm.DB) error {
		attempts++
		return persistent
	})

	// 第二次仍失败就原样透传，绝不无限重试
	assert.ErrorIs(t, err, persistent)
	assert.Equal(t, 2, attempts)
}

func TestWithRetryWithoutReopenPassesThrough(t *testing.T) {
	db := NewDB(newMockGorm(t), nil)

	transient := &pgconn.PgError{Code: "42P05"}
	attempts := 0
	err := db.WithRetry(func(tx *gorm.DB) error {
		attempts++
		return transient
	})

	// 无重连函数时瞬时错误也只执行一次，且不 panic
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 1, attempts)
}

func TestWithRetrySurfacesReconnectFailure(t *testing.T) {
	reopenErr := errors.New("database is down")
	db := NewDB(newMockGorm(t), func() (*gorm.DB, error) {
		return nil, reopenErr
	})

	err := db.WithRetry(func(tx *gorm.DB) error {
		return &pgconn.PgError{Code: "42P05"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, reopenErr)
}
