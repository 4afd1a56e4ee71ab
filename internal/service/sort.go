package service

import (
	"sort"
	"strings"

	"github.com/user/filmfolio/internal/model"
)

// SortKey 影片排序字段
type SortKey string

const (
	SortByDisplayOrder SortKey = "displayOrder"
	SortByTitle        SortKey = "title"
	SortByYear         SortKey = "year"
	SortByCreatedAt    SortKey = "createdAt"
	SortByCategory     SortKey = "category"
)

// ParseSortKey 解析排序字段，未知值回落到默认的 displayOrder 策略
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByTitle, SortByYear, SortByCreatedAt, SortByCategory:
		return SortKey(s)
	default:
		return SortByDisplayOrder
	}
}

// SortFilms 对影片做确定性排序（原地，稳定）
//
// displayOrder 是产品策略而不是普通排序：数字越大越靠前，完全无视调用方的
// 升降序开关；displayOrder 相同时按创建时间新者在前。其余字段按请求方向
// 比较（文本先折叠大小写），相等即视为相等，依赖稳定排序保持相对顺序。
func SortFilms(films []*model.Film, key SortKey, desc bool) {
	sort.SliceStable(films, func(i, j int) bool {
		a, b := films[i], films[j]

		if key == SortByDisplayOrder {
			if a.DisplayOrder != b.DisplayOrder {
				return a.DisplayOrder > b.DisplayOrder
			}
			return a.CreatedAt.After(b.CreatedAt)
		}

		var less, equal bool
		switch key {
		case SortByTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			less, equal = at < bt, at == bt
		case SortByYear:
			less, equal = a.Year < b.Year, a.Year == b.Year
		case SortByCreatedAt:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		case SortByCategory:
			ac, bc := strings.ToLower(a.Category), strings.ToLower(b.Category)
			less, equal = ac < bc, ac == bc
		}

		if equal {
			return false
		}
		if desc {
			return !less
		}
		return less
	})
}
