package controllers

import (
	"fmt"
	"strconv"

	"github.com/codelieche/todobackend/pkg/controllers/forms"
	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/utils/controllers"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/codelieche/todobackend/pkg/utils/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TodoController 待办事项控制器
type TodoController struct {
	controllers.BaseController
	service core.TodoService
}

// NewTodoController 创建待办事项控制器
func NewTodoController(service core.TodoService) *TodoController {
	return &TodoController{
		service: service,
	}
}

// Register 把待办事项的增删改查接口挂载到 router 的 basePath 下
func (ctrl *TodoController) Register(router gin.IRouter, basePath string) {
	routes := router.Group(basePath)
	{
		routes.POST("", ctrl.Create)       // 创建待办事项
		routes.GET("", ctrl.List)          // 获取待办事项列表
		routes.GET("/:id", ctrl.Find)      // 根据ID获取待办事项
		routes.PUT("/:id", ctrl.Update)    // 更新待办事项
		routes.PATCH("/:id", ctrl.Patch)   // 部分更新待办事项
		routes.DELETE("/:id", ctrl.Delete) // 删除待办事项
	}
}

// Create 创建待办事项
// @Summary 创建待办事项
// @Description 创建新的待办事项，支持JSON和表单两种请求体
// @Tags Todo
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param todo body forms.TodoCreateForm true "待办事项创建表单"
// @Success 201 {object} types.Response{data=core.Todo} "创建成功"
// @Failure 400 {object} types.Response "参数错误"
// @Failure 409 {object} types.Response "ID已存在"
// @Failure 500 {object} types.Response "内部错误"
// @Router /todos [post]
func (ctrl *TodoController) Create(c *gin.Context) {
	var form forms.TodoCreateForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("bind form error", zap.Error(err))
		ctrl.HandleError400(c, err)
		return
	}

	todo := &core.Todo{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	}

	result, err := ctrl.service.Create(c.Request.Context(), todo)
	if err != nil {
		ctrl.HandleServiceError(c, err)
		return
	}

	ctrl.HandleCreated(c, result)
}

// List 获取待办事项列表
// @Summary 获取待办事项列表
// @Description 按创建时间倒序分页返回，支持完成状态过滤和标题搜索
// @Tags Todo
// @Produce json
// @Param completed query boolean false "完成状态过滤"
// @Param search query string false "标题搜索关键词"
// @Param page query int false "页码" minimum(1) default(1)
// @Param page_size query int false "每页大小" minimum(1) maximum(300) default(10)
// @Success 200 {object} types.Response{data=types.ResponseList{results=[]core.Todo}} "获取成功"
// @Failure 400 {object} types.Response "参数错误"
// @Failure 500 {object} types.Response "内部错误"
// @Router /todos [get]
func (ctrl *TodoController) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := &core.TodoFilter{Search: c.Query("search")}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			ctrl.HandleError400(c, fmt.Errorf("%w: invalid completed value %q", core.ErrBadRequest, completedStr))
			return
		}
		filter.Completed = &completed
	}

	pagination := ctrl.ParsePagination(c)

	count, err := ctrl.service.Count(ctx, filter)
	if err != nil {
		logger.Error("count todos error", zap.Error(err))
		ctrl.HandleServiceError(c, err)
		return
	}

	todos, err := ctrl.service.List(ctx, filter, pagination.GetOffset(), pagination.PageSize)
	if err != nil {
		logger.Error("list todos error", zap.Error(err))
		ctrl.HandleServiceError(c, err)
		return
	}

	ctrl.HandleOK(c, &types.ResponseList{
		Count:    count,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Results:  todos,
	})
}

// Find 根据ID获取待办事项
// @Summary 获取待办事项详情
// @Tags Todo
// @Produce json
// @Param id path string true "待办事项ID"
// @Success 200 {object} types.Response{data=core.Todo} "获取成功"
// @Failure 404 {object} types.Response "不存在"
// @Router /todos/{id} [get]
func (ctrl *TodoController) Find(c *gin.Context) {
	todo, err := ctrl.service.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.HandleServiceError(c, err)
		return
	}
	ctrl.HandleOK(c, todo)
}

// Update 更新待办事项
// @Summary 更新待办事项
// @Description 整体替换标题、描述和完成状态
// @Tags Todo
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "待办事项ID"
// @Param todo body forms.TodoUpdateForm true "待办事项更新表单"
// @Success 200 {object} types.Response{data=core.Todo} "更新成功"
// @Failure 400 {object} types.Response "参数错误"
// @Failure 404 {object} types.Response "不存在"
// @Router /todos/{id} [put]
func (ctrl *TodoController) Update(c *gin.Context) {
	var form forms.TodoUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("bind form error", zap.Error(err))
		ctrl.HandleError400(c, err)
		return
	}

	result, err := ctrl.service.Update(c.Request.Context(), &core.Todo{
		ID:          c.Param("id"),
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	})
	if err != nil {
		ctrl.HandleServiceError(c, err)
		return
	}
	ctrl.HandleOK(c, result)
}

// Patch 部分更新待办事项
// @Summary 部分更新待办事项
// @Description 只修改请求体中出现的字段
// @Tags Todo
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "待办事项ID"
// @Param todo body forms.TodoPatchForm true "需要修改的字段"
// @Success 200 {object} types.Response{data=core.Todo} "更新成功"
// @Failure 400 {object} types.Response "参数错误"
// @Failure 404 {object} types.Response "不存在"
// @Router /todos/{id} [patch]
func (ctrl *TodoController) Patch(c *gin.Context) {
	var form forms.TodoPatchForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("bind form error", zap.Error(err))
		ctrl.HandleError400(c, err)
		return
	}

	result, err := ctrl.service.Patch(c.Request.Context(), c.Param("id"), &core.TodoPatch{
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	})
	if err != nil {
		ctrl.HandleServiceError(c, err)
		return
	}
	ctrl.HandleOK(c, result)
}

// Delete 删除待办事项
// @Summary 删除待办事项
// @Tags Todo
// @Param id path string true "待办事项ID"
// @Success 204 "删除成功"
// @Failure 404 {object} types.Response "不存在"
// @Router /todos/{id} [delete]
func (ctrl *TodoController) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctrl.HandleServiceError(c, err)
		return
	}
	ctrl.HandleNoContent(c)
}
