package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/utils/types"
	"github.com/gin-gonic/gin"
)

// BaseController Web控制器基础结构体
// 提供统一的HTTP响应处理、错误处理和分页解析
// 具体的控制器嵌入此结构体即可
type BaseController struct {
}

// HandleOK 处理成功响应（200 OK）
func (controller *BaseController) HandleOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.Response{
		Code:    0,
		Data:    data,
		Message: "ok",
	})
}

// HandleCreated 处理创建成功响应（201 Created）
func (controller *BaseController) HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, types.Response{
		Code:    0,
		Data:    data,
		Message: "ok",
	})
}

// HandleNoContent 处理无内容响应（204 No Content）
func (controller *BaseController) HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError 返回指定状态码的错误
func (controller *BaseController) HandleError(c *gin.Context, err error, code int) {
	c.JSON(code, types.Response{
		Code:    code,
		Message: err.Error(),
	})
}

// HandleError400 处理400错误响应（请求参数错误）
func (controller *BaseController) HandleError400(c *gin.Context, err error) {
	if errors.Is(err, core.ErrNotFound) {
		controller.Handle404(c, err)
		return
	}
	controller.HandleError(c, err, http.StatusBadRequest)
}

// Handle404 处理404错误响应（资源不存在）
func (controller *BaseController) Handle404(c *gin.Context, err error) {
	controller.HandleError(c, err, http.StatusNotFound)
}

// HandleError500 处理500错误响应（内部服务器错误）
func (controller *BaseController) HandleError500(c *gin.Context, err error) {
	controller.HandleError(c, err, http.StatusInternalServerError)
}

// HandleServiceError 根据服务层返回的错误选择状态码
func (controller *BaseController) HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		controller.Handle404(c, err)
	case errors.Is(err, core.ErrBadRequest):
		controller.HandleError400(c, err)
	case errors.Is(err, core.ErrConflict):
		controller.HandleError(c, err, http.StatusConflict)
	default:
		controller.HandleError500(c, err)
	}
}

// ParsePagination 解析分页参数
// 页码默认为1，每页大小默认为10，超出上限时截断
func (controller *BaseController) ParsePagination(c *gin.Context) *types.Pagination {
	page, err := strconv.Atoi(c.DefaultQuery(pageConfig.PageQueryParam, "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if pageConfig.MaxPage > 0 && page > pageConfig.MaxPage {
		page = pageConfig.MaxPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery(pageConfig.PageSizeQueryParam, "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageConfig.MaxPageSize > 0 && pageSize > pageConfig.MaxPageSize {
		pageSize = pageConfig.MaxPageSize
	}

	return &types.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}
