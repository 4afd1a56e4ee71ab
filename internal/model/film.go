package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 影片分类（封闭集合，未知值直接报错而不是静默吞掉）
var Categories = []string{"Ficção", "Drama", "Documentário", "Comercial"}

// 影片类型（可选字段，封闭集合）
var FilmTypes = []string{
	"Vídeo Clipe", "Curta Metragem", "Longa Metragem",
	"Propaganda", "Institucional", "Trailler", "Em Desenvolvimento",
}

// durationPattern 时长必须是固定宽度补零的 HH:MM:SS 文本
var durationPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// MinYear 年份下界，上界为下一个自然年
const MinYear = 1900

// ValidCategory 判断分类是否在封闭集合内
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidFilmType 判断影片类型是否在封闭集合内
func ValidFilmType(t string) bool {
	for _, v := range FilmTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidDuration 判断时长格式
func ValidDuration(d string) bool {
	return durationPattern.MatchString(d)
}

// ValidYear 判断年份是否落在 [1900, 次年] 闭区间
func ValidYear(y int) bool {
	return y >= MinYear && y <= time.Now().Year()+1
}

// CategoryError 生成与前端约定一致的分类错误信息
func CategoryError(c string) string {
	return fmt.Sprintf("无效分类: %q，可用分类: %s", c, strings.Join(Categories, ", "))
}

// CreateFilmRequest 创建影片请求
type CreateFilmRequest struct {
	Title         string `json:"title" binding:"required"`
	TitleEn       string `json:"titleEn"`
	TitleEs       string `json:"titleEs"`
	Description   string `json:"description"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionEs string `json:"descriptionEs"`
	Year          int    `json:"year" binding:"required,film_year"`
	Duration      string `json:"duration" binding:"required,film_duration"`
	Category      string `json:"category" binding:"required,film_category"`
	Type          string `json:"type" binding:"omitempty,film_type"`
	Thumbnail     string `json:"thumbnail" binding:"omitempty,url"`
	VideoURL      string `json:"videoUrl" binding:"required,url"`
	VideoSize     int64  `json:"videoSize" binding:"omitempty,gt=0"`
	VideoFormat   string `json:"videoFormat"`
	IsPublished   bool   `json:"isPublished"`
	DisplayOrder  int    `json:"displayOrder"`
}

// UpdateFilmRequest 部分更新请求
// 指针字段显式区分「未提供」(nil) 与「提供了空值」；Sanitize 沿用既有产品行为，
// 把空字符串当作未提供丢弃，因此无法通过更新把字段清空
type UpdateFilmRequest struct {
	Title         *string `json:"title" binding:"omitempty"`
	TitleEn       *string `json:"titleEn"`
	TitleEs       *string `json:"titleEs"`
	Description   *string `json:"description"`
	DescriptionEn *string `json:"descriptionEn"`
	DescriptionEs *string `json:"descriptionEs"`
	Year          *int    `json:"year" binding:"omitempty,film_year"`
	Duration      *string `json:"duration" binding:"omitempty,film_duration"`
	Category      *string `json:"category" binding:"omitempty,film_category"`
	Type          *string `json:"type" binding:"omitempty,film_type"`
	Thumbnail     *string `json:"thumbnail" binding:"omitempty,url"`
	VideoURL      *string `json:"videoUrl" binding:"omitempty,url"`
	VideoSize     *int64  `json:"videoSize" binding:"omitempty,gt=0"`
	VideoFormat   *string `json:"videoFormat"`
	IsPublished   *bool   `json:"isPublished"`
	DisplayOrder  *int    `json:"displayOrder"`
}

// Sanitize 丢弃空字符串与零值大小的指针字段，需在校验之前调用
func (r *UpdateFilmRequest) Sanitize() {
	clearEmpty(&r.Title)
	clearEmpty(&r.TitleEn)
	clearEmpty(&r.TitleEs)
	clearEmpty(&r.Description)
	clearEmpty(&r.DescriptionEn)
	clearEmpty(&r.DescriptionEs)
	clearEmpty(&r.Duration)
	clearEmpty(&r.Category)
	clearEmpty(&r.Type)
	clearEmpty(&r.Thumbnail)
	clearEmpty(&r.VideoURL)
	clearEmpty(&r.VideoFormat)
	if r.VideoSize != nil && *r.VideoSize == 0 {
		r.VideoSize = nil
	}
	if r.Year != nil && *r.Year == 0 {
		r.Year = nil
	}
}

// Fields 把非 nil 字段收集成 gorm 可用的更新集合
func (r *UpdateFilmRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	setIf(fields, "title", r.Title)
	setIf(fields, "title_en", r.TitleEn)
	setIf(fields, "title_es", r.TitleEs)
	setIf(fields, "description", r.Description)
	setIf(fields, "description_en", r.DescriptionEn)
	setIf(fields, "description_es", r.DescriptionEs)
	if r.Year != nil {
		fields["year"] = *r.Year
	}
	setIf(fields, "duration", r.Duration)
	setIf(fields, "category", r.Category)
	setIf(fields, "type", r.Type)
	setIf(fields, "thumbnail", r.Thumbnail)
	setIf(fields, "video_url", r.VideoURL)
	if r.VideoSize != nil {
		fields["video_size"] = *r.VideoSize
	}
	setIf(fields, "video_format", r.VideoFormat)
	if r.IsPublished != nil {
		fields["is_published"] = *r.IsPublished
	}
	if r.DisplayOrder != nil {
		fields["display_order"] = *r.DisplayOrder
	}
	return fields
}

func clearEmpty(p **string) {
	if *p != nil && **p == "" {
		*p = nil
	}
}

func setIf(fields map[string]interface{}, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=10,max=2000"`
}

// RegisterValidators 向 gin 的校验引擎注册业务校验规则
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("film_category", func(fl validator.FieldLevel) bool {
		return ValidCategory(fl.Field().String())
	})
	v.RegisterValidation("film_type", func(fl validator.FieldLevel) bool {
		return ValidFilmType(fl.Field().String())
	})
	v.RegisterValidation("film_duration", func(fl validator.FieldLevel) bool {
		return ValidDuration(fl.Field().String())
	})
	v.RegisterValidation("film_year", func(fl validator.FieldLevel) bool {
		return ValidYear(int(fl.Field().Int()))
	})
}
