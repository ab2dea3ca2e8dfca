package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/middleware"
	"github.com/codelieche/todobackend/pkg/services"
	"github.com/codelieche/todobackend/pkg/store"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())
}

type todoResponse struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    core.Todo `json:"data"`
}

type listResponse struct {
	Code int `json:"code"`
	Data struct {
		Count    int64       `json:"count"`
		Page     int         `json:"page"`
		PageSize int         `json:"page_size"`
		Results  []core.Todo `json:"results"`
	} `json:"data"`
}

func newTodoRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.URLEncodedBodyMiddleware(), middleware.JSONBodyMiddleware())
	ctrl := NewTodoController(services.NewTodoService(store.NewMemoryTodoStore()))
	ctrl.Register(r.Group("/api"), "/todos")
	return r
}

func send(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTodo(t *testing.T, r http.Handler, body string) core.Todo {
	t.Helper()
	w := send(r, http.MethodPost, "/api/todos", "application/json", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp todoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestTodoController_CreateJSONAndForm(t *testing.T) {
	r := newTodoRouter()

	todo := createTodo(t, r, `{"title":"buy milk","description":"2 litres"}`)
	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "buy milk", todo.Title)
	assert.Equal(t, "2 litres", todo.Description)
	assert.False(t, todo.Completed)

	w := send(r, http.MethodPost, "/api/todos", "application/x-www-form-urlencoded", "title=walk+dog&completed=true")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp todoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "walk dog", resp.Data.Title)
	assert.True(t, resp.Data.Completed)
	assert.NotNil(t, resp.Data.CompletedAt)
}

func TestTodoController_CreateErrors(t *testing.T) {
	r := newTodoRouter()

	w := send(r, http.MethodPost, "/api/todos", "application/json", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/todos", "application/json", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	createTodo(t, r, `{"id":"fixed","title":"one"}`)
	w = send(r, http.MethodPost, "/api/todos", "application/json", `{"id":"fixed","title":"two"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTodoController_FindUpdatePatchDelete(t *testing.T) {
	r := newTodoRouter()
	todo := createTodo(t, r, `{"title":"buy milk"}`)
	path := "/api/todos/" + todo.ID

	w := send(r, http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodPut, path, "application/json", `{"title":"buy oat milk","completed":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp todoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "buy oat milk", resp.Data.Title)
	assert.True(t, resp.Data.Completed)

	w = send(r, http.MethodPatch, path, "application/json", `{"completed":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = todoResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "buy oat milk", resp.Data.Title)
	assert.False(t, resp.Data.Completed)
	assert.Nil(t, resp.Data.CompletedAt)

	w = send(r, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(r, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodPut, path, "application/json", `{"title":"gone"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoController_List(t *testing.T) {
	r := newTodoRouter()
	createTodo(t, r, `{"title":"buy milk"}`)
	createTodo(t, r, `{"title":"buy bread","completed":true}`)
	createTodo(t, r, `{"title":"walk dog"}`)

	w := send(r, http.MethodGet, "/api/todos?search=BUY&completed=false", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Count)
	if assert.Len(t, resp.Data.Results, 1) {
		assert.Equal(t, "buy milk", resp.Data.Results[0].Title)
	}

	w = send(r, http.MethodGet, "/api/todos?page=2&page_size=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = listResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.Count)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Len(t, resp.Data.Results, 1)

	w = send(r, http.MethodGet, "/api/todos?completed=maybe", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoController_RejectsBodyBeforeBinding(t *testing.T) {
	r := newTodoRouter()

	// 第一个JSON值可以绑定，但整个请求体不合法，不能创建
	w := send(r, http.MethodPost, "/api/todos", "application/json", `{"title":"buy milk"} garbage`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/todos", "application/json", `"buy milk"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodGet, "/api/todos", "", "")
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Data.Count)
}
