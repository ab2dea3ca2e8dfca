// Package store 存储层
//
// 待办事项保存在MongoDB的todos集合中
package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/monitoring"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTodoStore 创建 TodoStore 实例
func NewTodoStore(coll Collection) core.TodoStore {
	return &TodoStore{
		coll: coll,
	}
}

// TodoStore 待办事项存储实现
type TodoStore struct {
	coll Collection
}

// observe 记录数据库操作指标
func (s *TodoStore) observe(operation string, err error) {
	monitoring.ObserveQuery(operation, s.coll.Name(), err)
}

// FindByID 根据ID获取待办事项
func (s *TodoStore) FindByID(ctx context.Context, id string) (*core.Todo, error) {
	todo := &core.Todo{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(todo)
	s.observe("find_one", ignoreNoDocuments(err))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

// Create 创建待办事项
func (s *TodoStore) Create(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	_, err := s.coll.InsertOne(ctx, todo)
	s.observe("insert_one", err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.ErrConflict
		}
		return nil, err
	}
	return todo, nil
}

// Update 更新待办事项的标题、描述和完成状态
func (s *TodoStore) Update(ctx context.Context, todo *core.Todo) (*core.Todo, error) {
	set := bson.M{
		"title":       todo.Title,
		"description": todo.Description,
		"completed":   todo.Completed,
		"updated_at":  todo.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if todo.CompletedAt != nil {
		set["completed_at"] = todo.CompletedAt
	} else {
		update["$unset"] = bson.M{"completed_at": ""}
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": todo.ID}, update)
	s.observe("update_one", err)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, core.ErrNotFound
	}
	return todo, nil
}

// Delete 删除待办事项
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	s.observe("delete_one", err)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

// List 获取待办事项列表
func (s *TodoStore) List(ctx context.Context, filter *core.TodoFilter, offset int, limit int) ([]*core.Todo, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset))
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, buildFilter(filter), findOptions)
	s.observe("find", err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := make([]*core.Todo, 0)
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Count 统计待办事项数量
func (s *TodoStore) Count(ctx context.Context, filter *core.TodoFilter) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, buildFilter(filter))
	s.observe("count", err)
	return count, err
}

// buildFilter 把过滤条件转换成MongoDB查询
func buildFilter(filter *core.TodoFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	if filter.Search != "" {
		query["title"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.Search),
			"$options": "i",
		}
	}
	return query
}

// ignoreNoDocuments 查询不到数据不算数据库错误
func ignoreNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

// EnsureIndexes 创建列表查询用到的索引
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "completed", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
