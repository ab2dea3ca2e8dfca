package types

// Response 统一的接口响应结构
type Response struct {
	Code    int         `json:"code"`           // 0表示成功，其它为http状态码
	Data    interface{} `json:"data,omitempty"` // 响应数据
	Message string      `json:"message"`        // 提示信息
}

// ResponseList 分页列表的响应数据
type ResponseList struct {
	Count    int64       `json:"count"`     // 总条数
	Page     int         `json:"page"`      // 当前页码
	PageSize int         `json:"page_size"` // 每页大小
	Results  interface{} `json:"results"`   // 当前页数据
}
