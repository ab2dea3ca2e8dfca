package controllers

import (
	"github.com/codelieche/todobackend/pkg/utils/types"
)

var pageConfig *types.PaginationConfig

// SetPaginationConfig 设置分页配置
func SetPaginationConfig(config *types.PaginationConfig) {
	pageConfig = config
}

func init() {
	SetPaginationConfig(&types.PaginationConfig{
		MaxPage:            1000,
		PageQueryParam:     "page",
		MaxPageSize:        300,
		PageSizeQueryParam: "page_size",
	})
}
