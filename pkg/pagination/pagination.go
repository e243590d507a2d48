// Package pagination 列表接口的分页参数
package pagination

const (
	// DefaultSize 未指定或超出上限时的每页条数
	DefaultSize = 20
	// MaxSize 每页最多条数
	MaxSize = 100
)

// Pagination 分页信息，Page 从 1 开始
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// New 规范化分页参数：page 小于 1 按 1 处理，size 非法时使用 DefaultSize
func New(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}
	return Pagination{Page: page, Size: size}
}

// Offset 数据库查询偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit 数据库查询条数
func (p Pagination) Limit() int {
	return p.Size
}

// Pages 总页数
func (p Pagination) Pages(total int64) int64 {
	return (total + int64(p.Size) - 1) / int64(p.Size)
}
