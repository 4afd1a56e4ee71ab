package model

import (
	"time"
)

// Film 影片模型
type Film struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Title         string    `json:"title" gorm:"not null"`
	TitleEn       string    `json:"titleEn,omitempty"`
	TitleEs       string    `json:"titleEs,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionEn string    `json:"descriptionEn,omitempty"`
	DescriptionEs string    `json:"descriptionEs,omitempty"`
	Year          int       `json:"year"`
	Duration      string    `json:"duration"` // HH:MM:SS 固定格式文本
	Category      string    `json:"category" gorm:"index"`
	Type          string    `json:"type,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	VideoURL      string    `json:"videoUrl" gorm:"column:video_url;not null"`
	VideoSize     int64     `json:"videoSize,omitempty"`
	VideoFormat   string    `json:"videoFormat,omitempty"`
	Views         int64     `json:"views"`
	IsPublished   bool      `json:"isPublished" gorm:"index"`
	DisplayOrder  int       `json:"displayOrder"` // 允许重复，仅用于展示排序
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ContactMessage 联系表单留言
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings 站点设置文档（磁盘上唯一的 JSON 记录）
type Settings struct {
	BannerURL         string `json:"bannerUrl"`
	BannerPosition    string `json:"bannerPosition"` // 命名锚点或 "X% Y%"
	BannerOpacity     int    `json:"bannerOpacity"`  // 0-100，写入时钳制
	ProfileImage      string `json:"profileImage"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	Pronouns          string `json:"pronouns"`
	BioPt             string `json:"bioPt"`
	BioEn             string `json:"bioEn"`
	BioEs             string `json:"bioEs"`
	Email             string `json:"email"`
	InstagramPersonal string `json:"instagramPersonal"`
	InstagramLombada  string `json:"instagramLombada"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

// BannerSettings banner 子视图
type BannerSettings struct {
	BannerURL      string `json:"bannerUrl"`
	BannerPosition string `json:"bannerPosition"`
	BannerOpacity  int    `json:"bannerOpacity"`
}

// BioSettings 个人简介子视图
type BioSettings struct {
	ProfileImage      string `json:"profileImage"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	Pronouns          string `json:"pronouns"`
	BioPt             string `json:"bioPt"`
	BioEn             string `json:"bioEn"`
	BioEs             string `json:"bioEs"`
	Email             string `json:"email"`
	InstagramPersonal string `json:"instagramPersonal"`
	InstagramLombada  string `json:"instagramLombada"`
}
