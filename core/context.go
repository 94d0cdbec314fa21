package core

// RunContext 承载一次流水线执行的场景信息，贯穿整个 Pipeline 透传。
type RunContext struct {
	Source string // 候选源名称（"top_artist" / "similar_artist"）

	// Users 是请求的外部用户 ID 列表。
	// 为空表示处理候选集中的全部用户；非空时无法解析的 ID 被丢弃。
	Users []int64

	// Params 请求级上下文参数，供自定义 Node / CEL 过滤表达式使用
	Params map[string]any
}

// WantsAllUsers 报告本次执行是否覆盖候选集中的全部用户。
func (rctx *RunContext) WantsAllUsers() bool {
	return len(rctx.Users) == 0
}
