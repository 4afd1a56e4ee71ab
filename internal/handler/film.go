package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/user/filmfolio/internal/model"
	"github.com/user/filmfolio/internal/repository"
	"github.com/user/filmfolio/internal/service"
	"github.com/user/filmfolio/internal/utils"
)

// ListFilms 影片列表
// 后端故障时降级为空列表而不是 5xx，公开页永远能渲染
func (h *Handler) ListFilms(c *gin.Context) {
	query := repository.FilmQuery{Category: c.Query("category")}
	if c.Query("published") == "true" {
		published := true
		query.Published = &published
	}

	// 列表必须实时反映后台编辑
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	films, err := h.Repos.Film.List(query)
	if err != nil {
		log.Printf("查询影片列表失败: %v", err)
		c.JSON(200, utils.Response{
			Success: true,
			Data:    []*model.Film{},
			Message: "查询影片失败，返回空列表",
		})
		return
	}
	if films == nil {
		films = []*model.Film{}
	}

	key := service.ParseSortKey(c.Query("sortBy"))
	desc := c.DefaultQuery("order", "desc") != "asc"
	service.SortFilms(films, key, desc)

	utils.Success(c, films)
}

// GetFilm 影片详情，读取的副作用是累加播放量
func (h *Handler) GetFilm(c *gin.Context) {
	id := c.Param("id")

	film, err := h.Repos.Film.FindByID(id)
	if err != nil {
		log.Printf("查询影片失败: %v", err)
		utils.InternalServerError(c, "查询影片失败")
		return
	}
	if film == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	// 同一 IP 窗口内重复访问不重复计数
	if h.viewDedup.ShouldCount(film.ID, utils.HashIP(c.ClientIP())) {
		if err := h.Repos.Film.IncrementViews(film.ID); err != nil {
			log.Printf("播放量累加失败: %v", err)
		}
	}

	utils.Success(c, film)
}

// CreateFilm 创建影片
func (h *Handler) CreateFilm(c *gin.Context) {
	// 先单独校验分类，给出比通用 schema 错误更明确的提示
	var raw map[string]interface{}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		utils.BadRequest(c, "请求体不是合法 JSON")
		return
	}
	if cat, ok := raw["category"].(string); ok && cat != "" && !model.ValidCategory(cat) {
		utils.BadRequest(c, model.CategoryError(cat))
		return
	}

	var req model.CreateFilmRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		utils.ValidationError(c, err)
		return
	}

	film := &model.Film{
		Title:         req.Title,
		TitleEn:       req.TitleEn,
		TitleEs:       req.TitleEs,
		Description:   req.Description,
		DescriptionEn: req.DescriptionEn,
		DescriptionEs: req.DescriptionEs,
		Year:          req.Year,
		Duration:      req.Duration,
		Category:      req.Category,
		Type:          req.Type,
		Thumbnail:     req.Thumbnail,
		VideoURL:      req.VideoURL,
		VideoSize:     req.VideoSize,
		VideoFormat:   req.VideoFormat,
		IsPublished:   req.IsPublished,
		DisplayOrder:  req.DisplayOrder,
	}

	if err := h.Repos.Film.Create(film); err != nil {
		log.Printf("创建影片失败: %v", err)
		msg := "创建影片失败"
		if h.isDev() {
			msg += ": " + err.Error()
		}
		utils.InternalServerError(c, msg)
		return
	}

	utils.Created(c, film)
}

// UpdateFilm 部分更新
// 空字符串字段在校验前被剥离，等同未提供（沿用既有产品行为）
func (h *Handler) UpdateFilm(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}
	req.Sanitize()

	film, err := h.Repos.Film.Update(id, req.Fields())
	if err != nil {
		log.Printf("更新影片失败: %v", err)
		msg := "更新影片失败"
		if h.isDev() {
			msg += ": " + err.Error()
		}
		utils.InternalServerError(c, msg)
		return
	}
	if film == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	utils.Success(c, film)
}

// DeleteFilm 硬删除
func (h *Handler) DeleteFilm(c *gin.Context) {
	if err := h.Repos.Film.Delete(c.Param("id")); err != nil {
		log.Printf("删除影片失败: %v", err)
		utils.InternalServerError(c, "删除影片失败")
		return
	}
	utils.SuccessWithMessage(c, "影片已删除", nil)
}
