package core

import (
	"errors"
	"fmt"
)

// ErrNotFound 资源不存在
var ErrNotFound = errors.New("not found")

// ErrBadRequest 请求参数错误
var ErrBadRequest = errors.New("bad request")

// ErrConflict 资源已存在
var ErrConflict = errors.New("conflict")

// ErrTitleRequired 待办事项标题为空
var ErrTitleRequired = fmt.Errorf("%w: title is required", ErrBadRequest)
