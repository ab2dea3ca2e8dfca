package forms

// TodoCreateForm 创建待办事项表单
// 同时支持JSON和x-www-form-urlencoded
type TodoCreateForm struct {
	ID          string `json:"id" form:"id"`                          // 可选，不传时自动生成UUID
	Title       string `json:"title" form:"title" binding:"required"` // 标题
	Description string `json:"description" form:"description"`        // 描述
	Completed   bool   `json:"completed" form:"completed"`            // 是否已完成
}

// TodoUpdateForm 整体更新待办事项表单
type TodoUpdateForm struct {
	Title       string `json:"title" form:"title" binding:"required"` // 标题
	Description string `json:"description" form:"description"`        // 描述
	Completed   bool   `json:"completed" form:"completed"`            // 是否已完成
}

// TodoPatchForm 部分更新待办事项表单，未传的字段保持不变
type TodoPatchForm struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Completed   *bool   `json:"completed" form:"completed"`
}
