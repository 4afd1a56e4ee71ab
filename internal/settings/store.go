// Package settings 维护磁盘上唯一的站点设置 JSON 文档。
// 整文件读-合并-写，进程内用互斥锁串行化写入（跨进程仍是 last-write-wins）。
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/filmfolio/internal/model"
)

// Defaults 首次读取前文档不存在时合成的默认值
func Defaults() model.Settings {
	return model.Settings{
		BannerURL:         "/cinematic-film-production-background.jpeg",
		BannerPosition:    "center",
		BannerOpacity:     90,
		ProfileImage:      "/images/alicestamato.jpeg",
		Name:              "Alice Stamato",
		Location:          "São Paulo, SP, Brasil",
		Pronouns:          "she/her",
		Email:             "alicestamato@gmail.com",
		InstagramPersonal: "alicestamato",
		InstagramLombada:  "lombadafilmes",
	}
}

// Store 设置文档存储
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore 创建存储，文档固定在 {dataDir}/settings.json
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "settings.json")}
}

// Load 读取当前文档，缺失或损坏时回落到默认值
func (s *Store) Load() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// read 调用方必须持有锁
func (s *Store) read() model.Settings {
	doc := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}

	var stored model.Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		return doc
	}

	// 透明度要区分「存了 0」和「根本没存」，后者回落默认 90
	var probe struct {
		BannerOpacity *int `json:"bannerOpacity"`
	}
	json.Unmarshal(data, &probe)

	// 存储值覆盖默认值，空字段保持默认
	mergeNonEmpty(&doc, &stored)
	if probe.BannerOpacity != nil {
		doc.BannerOpacity = clampOpacity(*probe.BannerOpacity)
	}
	doc.BioPt = stored.BioPt
	doc.BioEn = stored.BioEn
	doc.BioEs = stored.BioEs
	doc.UpdatedAt = stored.UpdatedAt
	return doc
}

// UpdateBannerRequest banner 子视图的部分更新
type UpdateBannerRequest struct {
	BannerURL      string  `json:"bannerUrl" binding:"required"`
	BannerPosition *string `json:"bannerPosition"`
	BannerOpacity  *int    `json:"bannerOpacity"`
}

// UpdateBanner 合并 banner 字段并整体落盘
func (s *Store) UpdateBanner(req UpdateBannerRequest) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc.BannerURL = req.BannerURL
	if req.BannerPosition != nil && *req.BannerPosition != "" {
		doc.BannerPosition = *req.BannerPosition
	}
	if req.BannerOpacity != nil {
		doc.BannerOpacity = clampOpacity(*req.BannerOpacity)
	}

	if err := s.write(&doc); err != nil {
		return model.Settings{}, err
	}
	return doc, nil
}

// UpdateBioRequest 简介子视图的部分更新
// 简介正文允许显式清空（nil = 不改，"" = 清空），其余字段空值保持原样
type UpdateBioRequest struct {
	ProfileImage      string  `json:"profileImage"`
	Name              string  `json:"name"`
	Location          string  `json:"location"`
	Pronouns          string  `json:"pronouns"`
	BioPt             *string `json:"bioPt"`
	BioEn             *string `json:"bioEn"`
	BioEs             *string `json:"bioEs"`
	Email             string  `json:"email"`
	InstagramPersonal string  `json:"instagramPersonal"`
	InstagramLombada  string  `json:"instagramLombada"`
}

// UpdateBio 合并简介字段并整体落盘
func (s *Store) UpdateBio(req UpdateBioRequest) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	setNonEmpty(&doc.ProfileImage, req.ProfileImage)
	setNonEmpty(&doc.Name, req.Name)
	setNonEmpty(&doc.Location, req.Location)
	setNonEmpty(&doc.Pronouns, req.Pronouns)
	setNonEmpty(&doc.Email, req.Email)
	setNonEmpty(&doc.InstagramPersonal, req.InstagramPersonal)
	setNonEmpty(&doc.InstagramLombada, req.InstagramLombada)
	if req.BioPt != nil {
		doc.BioPt = *req.BioPt
	}
	if req.BioEn != nil {
		doc.BioEn = *req.BioEn
	}
	if req.BioEs != nil {
		doc.BioEs = *req.BioEs
	}

	if err := s.write(&doc); err != nil {
		return model.Settings{}, err
	}
	return doc, nil
}

// write 调用方必须持有锁
func (s *Store) write(doc *model.Settings) error {
	doc.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Banner 返回 banner 子视图
func (s *Store) Banner() model.BannerSettings {
	doc := s.Load()
	return model.BannerSettings{
		BannerURL:      doc.BannerURL,
		BannerPosition: doc.BannerPosition,
		BannerOpacity:  doc.BannerOpacity,
	}
}

// Bio 返回简介子视图
func (s *Store) Bio() model.BioSettings {
	doc := s.Load()
	return model.BioSettings{
		ProfileImage:      doc.ProfileImage,
		Name:              doc.Name,
		Location:          doc.Location,
		Pronouns:          doc.Pronouns,
		BioPt:             doc.BioPt,
		BioEn:             doc.BioEn,
		BioEs:             doc.BioEs,
		Email:             doc.Email,
		InstagramPersonal: doc.InstagramPersonal,
		InstagramLombada:  doc.InstagramLombada,
	}
}

func clampOpacity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func setNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeNonEmpty(dst, src *model.Settings) {
	setNonEmpty(&dst.BannerURL, src.BannerURL)
	setNonEmpty(&dst.BannerPosition, src.BannerPosition)
	setNonEmpty(&dst.ProfileImage, src.ProfileImage)
	setNonEmpty(&dst.Name, src.Name)
	setNonEmpty(&dst.Location, src.Location)
	setNonEmpty(&dst.Pronouns, src.Pronouns)
	setNonEmpty(&dst.Email, src.Email)
	setNonEmpty(&dst.InstagramPersonal, src.InstagramPersonal)
	setNonEmpty(&dst.InstagramLombada, src.InstagramLombada)
}
