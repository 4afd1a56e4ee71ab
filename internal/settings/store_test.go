package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSynthesizesDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	doc := store.Load()
	assert.Equal(t, "center", doc.BannerPosition)
	assert.Equal(t, 90, doc.BannerOpacity)
	assert.Equal(t, "Alice Stamato", doc.Name)
	assert.Empty(t, doc.BioPt)

	// 纯读取不应创建文件
	_, err := os.Stat(filepath.Join(dir, "settings.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateBannerClampsOpacity(t *testing.T) {
	store := NewStore(t.TempDir())

	high := 150
	doc, err := store.UpdateBanner(UpdateBannerRequest{
		BannerURL:     "https://cdn.example.com/banners/a.jpg",
		BannerOpacity: &high,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, doc.BannerOpacity)

	low := -5
	doc, err = store.UpdateBanner(UpdateBannerRequest{
		BannerURL:     "https://cdn.example.com/banners/a.jpg",
		BannerOpacity: &low,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.BannerOpacity)
}

func TestUpdateBannerKeepsAbsentFields(t *testing.T) {
	store := NewStore(t.TempDir())

	pos := "top left"
	opacity := 42
	_, err := store.UpdateBanner(UpdateBannerRequest{
		BannerURL:      "https://cdn.example.com/banners/a.jpg",
		BannerPosition: &pos,
		BannerOpacity:  &opacity,
	})
	require.NoError(t, err)

	// 第二次只改 URL，位置与透明度沿用上次存储值
	doc, err := store.UpdateBanner(UpdateBannerRequest{
		BannerURL: "https://cdn.example.com/banners/b.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "top left", doc.BannerPosition)
	assert.Equal(t, 42, doc.BannerOpacity)
}

func TestBannerAndBioShareOneDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	name := "Nova Diretora"
	_, err := store.UpdateBio(UpdateBioRequest{Name: name})
	require.NoError(t, err)

	_, err = store.UpdateBanner(UpdateBannerRequest{
		BannerURL: "https://cdn.example.com/banners/c.jpg",
	})
	require.NoError(t, err)

	// banner 写入不得冲掉 bio 字段
	bio := store.Bio()
	assert.Equal(t, "Nova Diretora", bio.Name)

	// 且全程只有一个 settings.json
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())
}

func TestUpdateBioExplicitClearAndKeep(t *testing.T) {
	store := NewStore(t.TempDir())

	text := "Diretora e roteirista."
	_, err := store.UpdateBio(UpdateBioRequest{BioPt: &text})
	require.NoError(t, err)

	// nil 表示不动，空字符串表示显式清空
	empty := ""
	doc, err := store.UpdateBio(UpdateBioRequest{BioPt: &empty})
	require.NoError(t, err)
	assert.Empty(t, doc.BioPt)

	doc, err = store.UpdateBio(UpdateBioRequest{})
	require.NoError(t, err)
	assert.Empty(t, doc.BioPt)
	assert.Equal(t, "Alice Stamato", doc.Name)
}

func TestUpdateBioEmptyStringKeepsPrevious(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.UpdateBio(UpdateBioRequest{Location: "Rio de Janeiro, Brasil"})
	require.NoError(t, err)

	doc, err := store.UpdateBio(UpdateBioRequest{Location: ""})
	require.NoError(t, err)
	assert.Equal(t, "Rio de Janeiro, Brasil", doc.Location)
}

func TestSettingsPersistAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	opacity := 55
	_, err := NewStore(dir).UpdateBanner(UpdateBannerRequest{
		BannerURL:     "https://cdn.example.com/banners/persist.jpg",
		BannerOpacity: &opacity,
	})
	require.NoError(t, err)

	reopened := NewStore(dir)
	banner := reopened.Banner()
	assert.Equal(t, "https://cdn.example.com/banners/persist.jpg", banner.BannerURL)
	assert.Equal(t, 55, banner.BannerOpacity)
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{broken"), 0o644))

	doc := NewStore(dir).Load()
	assert.Equal(t, 90, doc.BannerOpacity)
	assert.Equal(t, "center", doc.BannerPosition)
}
