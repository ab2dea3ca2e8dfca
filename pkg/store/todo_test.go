package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeResult struct {
	todo *core.Todo
	err  error
}

func (r *fakeResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	data, err := bson.Marshal(r.todo)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, v)
}

type fakeCursor struct {
	todos  []*core.Todo
	closed bool
}

func (c *fakeCursor) All(ctx context.Context, results interface{}) error {
	out := results.(*[]*core.Todo)
	*out = append(*out, c.todos...)
	return nil
}

func (c *fakeCursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

// fakeCollection 记录最近一次调用的参数
type fakeCollection struct {
	docs map[string]*core.Todo

	lastFilter  interface{}
	lastUpdate  interface{}
	lastFindOpt *options.FindOptions
	cursor      *fakeCursor
	insertErr   error
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]*core.Todo{}}
}

func (f *fakeCollection) Name() string { return core.TodoCollection }

func (f *fakeCollection) idOf(filter interface{}) string {
	id, _ := filter.(bson.M)["_id"].(string)
	return id
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) SingleResult {
	f.lastFilter = filter
	if todo, ok := f.docs[f.idOf(filter)]; ok {
		return &fakeResult{todo: todo}
	}
	return &fakeResult{err: mongo.ErrNoDocuments}
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error) {
	f.lastFilter = filter
	if len(opts) > 0 {
		f.lastFindOpt = opts[0]
	}
	f.cursor = &fakeCursor{}
	for _, todo := range f.docs {
		f.cursor.todos = append(f.cursor.todos, todo)
	}
	return f.cursor, nil
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	todo := document.(*core.Todo)
	if _, ok := f.docs[todo.ID]; ok {
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	}
	f.docs[todo.ID] = todo
	return &mongo.InsertOneResult{InsertedID: todo.ID}, nil
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.lastFilter = filter
	f.lastUpdate = update
	if _, ok := f.docs[f.idOf(filter)]; !ok {
		return &mongo.UpdateResult{}, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	id := f.idOf(filter)
	if _, ok := f.docs[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (f *fakeCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	f.lastFilter = filter
	return int64(len(f.docs)), nil
}

func newTodo(id, title string) *core.Todo {
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	return &core.Todo{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
}

func TestTodoStore_CreateAndFind(t *testing.T) {
	coll := newFakeCollection()
	s := NewTodoStore(coll)
	ctx := context.Background()

	created, err := s.Create(ctx, newTodo("a1", "buy milk"))
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)

	found, err := s.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", found.Title)
	assert.Equal(t, bson.M{"_id": "a1"}, coll.lastFilter)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTodoStore_CreateDuplicate(t *testing.T) {
	s := NewTodoStore(newFakeCollection())
	ctx := context.Background()

	_, err := s.Create(ctx, newTodo("a1", "buy milk"))
	require.NoError(t, err)

	_, err = s.Create(ctx, newTodo("a1", "buy bread"))
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestTodoStore_CreateError(t *testing.T) {
	coll := newFakeCollection()
	coll.insertErr = errors.New("server selection error")
	s := NewTodoStore(coll)

	_, err := s.Create(context.Background(), newTodo("a1", "buy milk"))
	assert.EqualError(t, err, "server selection error")
}

func TestTodoStore_Update(t *testing.T) {
	coll := newFakeCollection()
	s := NewTodoStore(coll)
	ctx := context.Background()
	_, _ = s.Create(ctx, newTodo("a1", "buy milk"))

	todo := newTodo("a1", "buy oat milk")
	_, err := s.Update(ctx, todo)
	require.NoError(t, err)

	update := coll.lastUpdate.(bson.M)
	assert.Equal(t, "buy oat milk", update["$set"].(bson.M)["title"])
	assert.Equal(t, bson.M{"completed_at": ""}, update["$unset"])

	now := time.Now()
	todo.SetCompleted(true, now)
	_, err = s.Update(ctx, todo)
	require.NoError(t, err)
	update = coll.lastUpdate.(bson.M)
	assert.NotContains(t, update, "$unset")
	assert.Equal(t, &now, update["$set"].(bson.M)["completed_at"])

	_, err = s.Update(ctx, newTodo("missing", "x"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTodoStore_Delete(t *testing.T) {
	s := NewTodoStore(newFakeCollection())
	ctx := context.Background()
	_, _ = s.Create(ctx, newTodo("a1", "buy milk"))

	assert.NoError(t, s.Delete(ctx, "a1"))
	assert.ErrorIs(t, s.Delete(ctx, "a1"), core.ErrNotFound)
}

func TestTodoStore_ListAndCount(t *testing.T) {
	coll := newFakeCollection()
	s := NewTodoStore(coll)
	ctx := context.Background()
	_, _ = s.Create(ctx, newTodo("a1", "buy milk"))
	_, _ = s.Create(ctx, newTodo("a2", "walk dog"))

	completed := false
	todos, err := s.List(ctx, &core.TodoFilter{Completed: &completed, Search: "milk (2%)"}, 10, 5)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
	assert.True(t, coll.cursor.closed)

	filter := coll.lastFilter.(bson.M)
	assert.Equal(t, false, filter["completed"])
	assert.Equal(t, bson.M{"$regex": `milk \(2%\)`, "$options": "i"}, filter["title"])
	assert.Equal(t, int64(10), *coll.lastFindOpt.Skip)
	assert.Equal(t, int64(5), *coll.lastFindOpt.Limit)

	count, err := s.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, bson.M{}, coll.lastFilter)
}
