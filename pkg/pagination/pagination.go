// Package pagination 分页查询参数与响应外壳。
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params 分页参数，page 从 1 开始
type Params struct {
	Page  int
	Limit int
}

// FromQuery 解析 page / limit 查询参数，缺省 1 / 10
func FromQuery(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return Params{Page: page, Limit: limit}
}

// Offset 偏移量
func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// Page 分页响应
type Page struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Items      any   `json:"items"`
}

// NewPage 组装分页响应
func NewPage(total int64, p Params, items any) Page {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return Page{
		Total:      total,
		Page:       p.Page,
		TotalPages: totalPages,
		Items:      items,
	}
}
