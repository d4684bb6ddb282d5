// Package pagination задаёт единый конверт постраничных ответов.
// Признак наличия следующей страницы вычисляется только на сервере
// из общего количества записей.
package pagination

import (
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params номер страницы (с 1) и размер страницы.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// New нормализует параметры пагинации.
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Parse разбирает строковые значения page и per_page из query.
func Parse(page, perPage string) Params {
	p, _ := strconv.Atoi(page)
	pp, _ := strconv.Atoi(perPage)
	return New(p, pp)
}

// Limit размер выборки для SQL.
func (p Params) Limit() int {
	return p.PerPage
}

// Offset смещение для SQL.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page конверт ответа списочных эндпоинтов.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Count      int  `json:"count"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewPage собирает страницу из выборки и общего количества записей.
func NewPage[T any](items []T, params Params, count int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if count > 0 {
		totalPages = (count + params.PerPage - 1) / params.PerPage
	}
	return Page[T]{
		Items:      items,
		Page:       params.Page,
		PerPage:    params.PerPage,
		Count:      count,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
	}
}

// NextPage возвращает номер следующей страницы, если сервер сообщил о её наличии.
func (p Page[T]) NextPage() (int, bool) {
	if !p.HasMore {
		return 0, false
	}
	return p.Page + 1, true
}
