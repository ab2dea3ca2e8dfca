// Package core 核心数据模型和接口定义
//
// 包含待办事项的实体定义，以及存储层、服务层的接口
package core

import (
	"context"
	"time"
)

// TodoCollection 待办事项集合名称
const TodoCollection = "todos"

// Todo 待办事项实体
type Todo struct {
	ID          string     `bson:"_id" json:"id"`                                        // 唯一标识（UUID）
	Title       string     `bson:"title" json:"title"`                                   // 标题
	Description string     `bson:"description" json:"description"`                       // 描述
	Completed   bool       `bson:"completed" json:"completed"`                           // 是否已完成
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"` // 完成时间
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`                         // 创建时间
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`                         // 更新时间
}

// SetCompleted 设置完成状态，同时维护完成时间
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	if completed && !t.Completed {
		t.CompletedAt = &now
	} else if !completed {
		t.CompletedAt = nil
	}
	t.Completed = completed
}

// TodoFilter 列表查询的过滤条件
type TodoFilter struct {
	Completed *bool  // 按完成状态过滤，nil表示不过滤
	Search    string // 标题模糊搜索
}

// TodoPatch 部分更新的字段，nil表示不修改
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty 是否没有任何需要修改的字段
func (p *TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// TodoStore 待办事项存储接口
type TodoStore interface {
	// FindByID 根据ID获取待办事项
	FindByID(ctx context.Context, id string) (*Todo, error)

	// Create 创建待办事项
	Create(ctx context.Context, todo *Todo) (*Todo, error)

	// Update 整体更新标题、描述、完成状态
	Update(ctx context.Context, todo *Todo) (*Todo, error)

	// Delete 删除待办事项
	Delete(ctx context.Context, id string) error

	// List 获取待办事项列表，按创建时间倒序
	List(ctx context.Context, filter *TodoFilter, offset int, limit int) ([]*Todo, error)

	// Count 统计符合条件的待办事项数量
	Count(ctx context.Context, filter *TodoFilter) (int64, error)
}

// TodoService 待办事项服务接口
type TodoService interface {
	FindByID(ctx context.Context, id string) (*Todo, error)
	Create(ctx context.Context, todo *Todo) (*Todo, error)
	Update(ctx context.Context, todo *Todo) (*Todo, error)
	Patch(ctx context.Context, id string, patch *TodoPatch) (*Todo, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *TodoFilter, offset int, limit int) ([]*Todo, error)
	Count(ctx context.Context, filter *TodoFilter) (int64, error)
}
