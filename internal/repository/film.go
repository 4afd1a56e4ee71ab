package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/user/filmfolio/internal/model"
)

// FilmQuery 影片列表过滤条件
type FilmQuery struct {
	Published *bool
	Category  string
}

type FilmRepository struct {
	db *DB
}

func NewFilmRepository(db *DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// List 按条件查询影片，排序交给上层的排序引擎统一处理
func (r *FilmRepository) List(q FilmQuery) ([]*model.Film, error) {
	var films []*model.Film
	err := r.db.WithRetry(func(tx *gorm.DB) error {
		stmt := tx.Model(&model.Film{})
		if q.Published != nil {
			stmt = stmt.Where("is_published = ?", *q.Published)
		}
		if q.Category != "" {
			stmt = stmt.Where("category = ?", q.Category)
		}
		return stmt.Find(&films).Error
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}

// FindByID 根据 ID 查找影片，未找到返回 nil
func (r *FilmRepository) FindByID(id string) (*model.Film, error) {
	var film model.Film
	err := r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&film).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// Create 创建影片
func (r *FilmRepository) Create(film *model.Film) error {
	if film.ID == "" {
		film.ID = uuid.NewString()
	}
	now := time.Now()
	film.CreatedAt = now
	film.UpdatedAt = now

	return r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Create(film).Error
	})
}

// Update 部分更新，只写入调用方提供的字段，返回更新后的记录
func (r *FilmRepository) Update(id string, fields map[string]interface{}) (*model.Film, error) {
	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		err := r.db.WithRetry(func(tx *gorm.DB) error {
			res := tx.Model(&model.Film{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

// Delete 硬删除
func (r *FilmRepository) Delete(id string) error {
	return r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&model.Film{}).Error
	})
}

// IncrementViews 原子累加播放量
// 用单条 UPDATE 表达式代替读-改-写，并发读取同一影片不会丢计数
func (r *FilmRepository) IncrementViews(id string) error {
	return r.db.WithRetry(func(tx *gorm.DB) error {
		return tx.Model(&model.Film{}).Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
}
