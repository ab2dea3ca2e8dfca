package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Cursor 查询游标，方便测试时替换
type Cursor interface {
	All(ctx context.Context, results interface{}) error
	Close(ctx context.Context) error
}

// SingleResult 单条查询结果
type SingleResult interface {
	Decode(v interface{}) error
}

// Collection 存储层用到的集合操作
type Collection interface {
	Name() string
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// mongoCollection 把 *mongo.Collection 适配成 Collection
type mongoCollection struct {
	*mongo.Collection
}

// WrapCollection 包装mongo集合
func WrapCollection(coll *mongo.Collection) Collection {
	return &mongoCollection{Collection: coll}
}

func (m *mongoCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) SingleResult {
	return m.Collection.FindOne(ctx, filter, opts...)
}

func (m *mongoCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error) {
	cursor, err := m.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return cursor, nil
}
