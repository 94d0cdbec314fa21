package pipeline

import (
	"context"

	"github.com/rushteam/cfrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindCandidate Kind = "candidate" // 物化阶段：从候选集产出 (user, recording) 对
	KindScore     Kind = "score"     // 打分阶段：调用模型批量预测
	KindScale     Kind = "scale"     // 归一化阶段：原始预测值缩放到有界区间
	KindRank      Kind = "rank"      // 排名阶段：按用户分区 dense rank 并截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 entries -> 输出 entries”的形态：
// Candidate 生成、Score 填充评分、Scale 改写评分、Rank 截断排名。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RunContext,
		entries []core.Entry,
	) ([]core.Entry, error)
}
