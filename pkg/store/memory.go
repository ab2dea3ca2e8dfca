package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/codelieche/todobackend/pkg/core"
)

// MemoryTodoStore 基于内存的TodoStore，测试时替代MongoDB
type MemoryTodoStore struct {
	mu    sync.RWMutex
	todos map[string]core.Todo
}

// NewMemoryTodoStore 创建内存存储
func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{todos: make(map[string]core.Todo)}
}

// FindByID 根据ID获取待办事项
func (s *MemoryTodoStore) FindByID(ctx context.Context, id string) (*core.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &todo, nil
}

// Create 创建待办事项
func (s *MemoryTodoStore) Create(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todo.ID]; ok {
		return nil, core.ErrConflict
	}
	s.todos[todo.ID] = *todo
	return todo, nil
}

// Update 更新待办事项
func (s *MemoryTodoStore) Update(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.todos[todo.ID]
	if !ok {
		return nil, core.ErrNotFound
	}
	todo.CreatedAt = existing.CreatedAt
	s.todos[todo.ID] = *todo
	return todo, nil
}

// Delete 删除待办事项
func (s *MemoryTodoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

// List 获取待办事项列表，按创建时间倒序
func (s *MemoryTodoStore) List(ctx context.Context, filter *core.TodoFilter, offset int, limit int) ([]*core.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*core.Todo, 0)
	for _, todo := range s.todos {
		if matchFilter(&todo, filter) {
			item := todo
			todos = append(todos, &item)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID < todos[j].ID
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})

	if offset >= len(todos) {
		return []*core.Todo{}, nil
	}
	todos = todos[offset:]
	if limit > 0 && limit < len(todos) {
		todos = todos[:limit]
	}
	return todos, nil
}

// Count 统计待办事项数量
func (s *MemoryTodoStore) Count(ctx context.Context, filter *core.TodoFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, todo := range s.todos {
		if matchFilter(&todo, filter) {
			count++
		}
	}
	return count, nil
}

func matchFilter(todo *core.Todo, filter *core.TodoFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Completed != nil && todo.Completed != *filter.Completed {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(todo.Title), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}
