package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/filmfolio/internal/model"
)

// newTestRepos 内存 sqlite 足够覆盖 CRUD 语义，重连路径有专门的测试
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.Film{}, &model.ContactMessage{}))

	return NewRepositories(NewDB(gdb, nil))
}

func sampleFilm(title string) *model.Film {
	return &model.Film{
		Title:    title,
		Year:     2023,
		Duration: "00:12:30",
		Category: "Drama",
		VideoURL: "https://cdn.example.com/films/x.mp4",
	}
}

func TestFilmCreateAssignsID(t *testing.T) {
	repos := newTestRepos(t)

	film := sampleFilm("Maré")
	require.NoError(t, repos.Film.Create(film))

	assert.NotEmpty(t, film.ID)
	assert.False(t, film.CreatedAt.IsZero())

	found, err := repos.Film.FindByID(film.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Maré", found.Title)
}

func TestFilmFindByIDMissing(t *testing.T) {
	repos := newTestRepos(t)

	found, err := repos.Film.FindByID("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFilmListFilters(t *testing.T) {
	repos := newTestRepos(t)

	published := sampleFilm("Published")
	published.IsPublished = true
	published.Category = "Documentário"
	require.NoError(t, repos.Film.Create(published))

	draft := sampleFilm("Draft")
	require.NoError(t, repos.Film.Create(draft))

	yes := true
	films, err := repos.Film.List(FilmQuery{Published: &yes})
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "Published", films[0].Title)

	films, err = repos.Film.List(FilmQuery{Category: "Documentário"})
	require.NoError(t, err)
	require.Len(t, films, 1)

	films, err = repos.Film.List(FilmQuery{})
	require.NoError(t, err)
	assert.Len(t, films, 2)
}

func TestFilmUpdatePartialFields(t *testing.T) {
	repos := newTestRepos(t)

	film := sampleFilm("Original")
	film.Description = "antes"
	require.NoError(t, repos.Film.Create(film))

	updated, err := repos.Film.Update(film.ID, map[string]interface{}{
		"title": "Renomeado",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Renomeado", updated.Title)
	// 未提供的字段保持原值
	assert.Equal(t, "antes", updated.Description)
	assert.Equal(t, 2023, updated.Year)
}

func TestFilmUpdateMissingReturnsNil(t *testing.T) {
	repos := newTestRepos(t)

	updated, err := repos.Film.Update("ghost", map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestFilmUpdateEmptyFieldSetIsNoop(t *testing.T) {
	repos := newTestRepos(t)

	film := sampleFilm("Untouched")
	require.NoError(t, repos.Film.Create(film))

	updated, err := repos.Film.Update(film.ID, map[string]interface{}{})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Untouched", updated.Title)
}

func TestFilmDelete(t *testing.T) {
	repos := newTestRepos(t)

	film := sampleFilm("Gone")
	require.NoError(t, repos.Film.Create(film))
	require.NoError(t, repos.Film.Delete(film.ID))

	found, err := repos.Film.FindByID(film.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFilmIncrementViews(t *testing.T) {
	repos := newTestRepos(t)

	film := sampleFilm("Counted")
	require.NoError(t, repos.Film.Create(film))

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Film.IncrementViews(film.ID))
	}

	found, err := repos.Film.FindByID(film.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), found.Views)
}

func TestContactCreateAndList(t *testing.T) {
	repos := newTestRepos(t)

	require.NoError(t, repos.Contact.Create(&model.ContactMessage{
		Name: "Ana", Email: "ana@example.com", Subject: "Oi", Message: "Gostei muito do curta",
	}))
	require.NoError(t, repos.Contact.Create(&model.ContactMessage{
		Name: "Bruno", Email: "bruno@example.com", Subject: "Parceria", Message: "Vamos conversar sobre um projeto",
	}))

	msgs, err := repos.Contact.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
}
