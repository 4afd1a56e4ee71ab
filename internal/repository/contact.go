package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/user/filmfolio/internal/model"
)

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create 保存联系留言
func (r *ContactRepository) Create(msg *model.ContactMessage) error {
	msg.CreatedAt = time.Now()
	return r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
}

// ListRecent 按时间倒序列出最近的留言
func (r *ContactRepository) ListRecent(limit int) ([]*model.ContactMessage, error) {
	var msgs []*model.ContactMessage
	err := r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Order("created_at DESC").Limit(limit).Find(&msgs).Error
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
