package types

// Pagination 分页参数
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// GetOffset 获取查询偏移量
func (p *Pagination) GetOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// PaginationConfig 分页配置
type PaginationConfig struct {
	MaxPage            int    // 最大页码
	PageQueryParam     string // 页码的查询参数名
	MaxPageSize        int    // 每页最大条数
	PageSizeQueryParam string // 每页条数的查询参数名
}
