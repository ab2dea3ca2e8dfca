// Package services 服务层
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTodoService 创建 TodoService 实例
func NewTodoService(store core.TodoStore) core.TodoService {
	return &TodoService{
		store: store,
		now:   time.Now,
	}
}

// TodoService 待办事项服务实现
type TodoService struct {
	store core.TodoStore
	now   func() time.Time
}

// FindByID 根据ID获取待办事项
func (s *TodoService) FindByID(ctx context.Context, id string) (*core.Todo, error) {
	if id == "" {
		return nil, core.ErrBadRequest
	}
	return s.store.FindByID(ctx, id)
}

// Create 创建待办事项
func (s *TodoService) Create(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	todo.Title = strings.TrimSpace(todo.Title)
	if todo.Title == "" {
		return nil, core.ErrTitleRequired
	}

	// 生成UUID
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	} else {
		// 如果指定了id，还需要判断id是否已经存在
		_, err := s.store.FindByID(ctx, todo.ID)
		if err == nil {
			logger.Error("todo id already exists", zap.String("id", todo.ID))
			return nil, core.ErrConflict
		} else if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
	}

	now := s.now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	completed := todo.Completed
	todo.Completed = false
	todo.SetCompleted(completed, now)

	result, err := s.store.Create(ctx, todo)
	if err != nil {
		logger.Error("create todo error", zap.Error(err))
	}
	return result, err
}

// Update 整体更新待办事项
func (s *TodoService) Update(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	if todo.ID == "" {
		return nil, core.ErrBadRequest
	}
	title := strings.TrimSpace(todo.Title)
	if title == "" {
		return nil, core.ErrTitleRequired
	}

	existing, err := s.store.FindByID(ctx, todo.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	existing.Title = title
	existing.Description = todo.Description
	existing.SetCompleted(todo.Completed, now)
	existing.UpdatedAt = now

	result, err := s.store.Update(ctx, existing)
	if err != nil {
		logger.Error("update todo error", zap.Error(err), zap.String("id", todo.ID))
	}
	return result, err
}

// Patch 部分更新待办事项，只修改传入的字段
func (s *TodoService) Patch(ctx context.Context, id string, patch *core.TodoPatch) (*core.Todo, error) {
	if id == "" || patch == nil {
		return nil, core.ErrBadRequest
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	now := s.now()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, core.ErrTitleRequired
		}
		existing.Title = title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Completed != nil {
		existing.SetCompleted(*patch.Completed, now)
	}
	existing.UpdatedAt = now

	result, err := s.store.Update(ctx, existing)
	if err != nil {
		logger.Error("patch todo error", zap.Error(err), zap.String("id", id))
	}
	return result, err
}

// Delete 删除待办事项
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return core.ErrBadRequest
	}

	err := s.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		logger.Error("delete todo error", zap.Error(err), zap.String("id", id))
	}
	return err
}

// List 获取待办事项列表
func (s *TodoService) List(ctx context.Context, filter *core.TodoFilter, offset int, limit int) ([]*core.Todo, error) {
	return s.store.List(ctx, filter, offset, limit)
}

// Count 统计待办事项数量
func (s *TodoService) Count(ctx context.Context, filter *core.TodoFilter) (int64, error) {
	return s.store.Count(ctx, filter)
}
