package core

import "context"

// CandidateSet 是候选集数据的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（candidate/store）实现
//   - 候选集由上游候选生成器产出，本包只读
//
// 实现：
//   - candidate.MemorySet 实现此接口（切片，测试/原型）
//   - candidate.StoreSet 实现此接口（基于 core.Store，生产）
type CandidateSet interface {
	// Name 返回候选源名称（如 "top_artist", "similar_artist"），用于日志/报告
	Name() string

	// Rows 返回候选集全部行。行数可能达到百万级，
	// 实现可在内部分区读取，但对调用方呈现为一次完整物化。
	Rows(ctx context.Context) ([]CandidateRow, error)
}
