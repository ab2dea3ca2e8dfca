package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/codelieche/todobackend/pkg/utils/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// BodyKey 解析后的请求体在gin.Context中的key
const BodyKey = "parsed_body"

var (
	errMalformedJSON = errors.New("malformed JSON body")
	errJSONTopLevel  = errors.New("JSON body must be an object or an array")
)

// Body 获取中间件解析好的请求体
// JSON请求体为对象或数组，表单请求体为 map[string]interface{}
// 其它Content-Type的请求没有解析结果
// 原始请求体会被放回，handler仍然可以用ShouldBind绑定表单
func Body(c *gin.Context) (interface{}, bool) {
	return c.Get(BodyKey)
}

// readBody 读取请求体并放回，后面的handler还可以再次读取
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	return data, err
}

// abortBadBody 请求体无法读取或解析时返回400
func abortBadBody(c *gin.Context, err error) {
	logger.Warn("parse request body error",
		zap.String("path", c.Request.URL.Path),
		zap.String("content_type", c.ContentType()),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, types.Response{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// URLEncodedBodyMiddleware 解析 application/x-www-form-urlencoded 请求体
// 同名字段只有一个值时为string，多个值时为[]string
// 方括号字段展开成嵌套结构：todo[title]=x 为 {"todo": {"title": "x"}}，tags[]=a 为 {"tags": ["a"]}
func URLEncodedBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, parsed := c.Get(BodyKey); parsed || c.ContentType() != binding.MIMEPOSTForm {
			c.Next()
			return
		}

		data, err := readBody(c)
		if err != nil {
			abortBadBody(c, err)
			return
		}

		// 与常见的表单解析一样宽松，非法的转义只丢弃对应字段
		values, _ := url.ParseQuery(string(data))
		c.Set(BodyKey, nestFormValues(values))
		c.Next()
	}
}

func formValue(items []string) interface{} {
	if len(items) == 1 {
		return items[0]
	}
	return items
}

// nestFormValues 展开方括号字段，无法展开的字段保留原始的key
func nestFormValues(values url.Values) map[string]interface{} {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	body := make(map[string]interface{}, len(values))
	for _, key := range keys {
		items := values[key]
		path := splitFormKey(key)
		if path == nil || !setFormPath(body, path, items) {
			body[key] = formValue(items)
		}
	}
	return body
}

// splitFormKey 把 todo[title][x] 拆成 [todo title x]，不是方括号格式时返回nil
func splitFormKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return nil
	}

	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return nil
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

// setFormPath 按路径写入值，路径和已有字段冲突时返回false
// 空的方括号只能出现在末尾，表示数组
func setFormPath(body map[string]interface{}, path []string, items []string) bool {
	var value interface{} = formValue(items)
	if path[len(path)-1] == "" {
		path = path[:len(path)-1]
		value = append([]string(nil), items...)
	}
	for _, part := range path {
		if part == "" {
			return false
		}
	}

	node := body
	for _, part := range path[:len(path)-1] {
		switch child := node[part].(type) {
		case nil:
			next := make(map[string]interface{})
			node[part] = next
			node = next
		case map[string]interface{}:
			node = child
		default:
			return false
		}
	}

	leaf := path[len(path)-1]
	if _, exists := node[leaf]; exists {
		return false
	}
	node[leaf] = value
	return true
}

// JSONBodyMiddleware 解析 application/json 请求体
// 空请求体解析为空对象，格式错误、末尾有多余内容或顶层不是对象/数组时返回400
func JSONBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, parsed := c.Get(BodyKey); parsed || c.ContentType() != binding.MIMEJSON {
			c.Next()
			return
		}

		data, err := readBody(c)
		if err != nil {
			abortBadBody(c, err)
			return
		}

		var body interface{} = map[string]interface{}{}
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 {
			// 整个请求体必须是一个完整的JSON值
			if !json.Valid(trimmed) {
				abortBadBody(c, errMalformedJSON)
				return
			}
			if trimmed[0] != '{' && trimmed[0] != '[' {
				abortBadBody(c, errJSONTopLevel)
				return
			}

			var decoded interface{}
			if err := binding.JSON.BindBody(trimmed, &decoded); err != nil {
				abortBadBody(c, err)
				return
			}
			body = decoded
		}
		c.Set(BodyKey, body)
		c.Next()
	}
}
