package rank

import (
	"context"
	"math"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pipeline"
	"github.com/rushteam/cfrec/pkg/parallel"
)

// 归一化分数的钳位边界。强正预测在 ScaleUpperBound 饱和，
// 强负预测（rating ≤ -3.0）在 ScaleLowerBound 饱和。
const (
	ScaleLowerBound = -1.0
	ScaleUpperBound = 1.0
)

// ScaleRating 把原始预测值缩放到 [-1.0, 1.0] 并保留三位小数。
//
// 纯函数，对所有有限实数有定义：scaled = rating/2 + 0.5，随后钳位、取整。
// 下游按此值跨用户/跨源比较，取整是契约的一部分，不可省略。
//
// 参考值（与历史产出逐位一致）：
//
//	ScaleRating(1.6)     = 1.0
//	ScaleRating(-1.6)    = -0.3
//	ScaleRating(0.65579) = 0.828
//	ScaleRating(-0.9999) = 0.0
func ScaleRating(rating float64) float64 {
	scaled := rating/2.0 + 0.5
	if scaled > ScaleUpperBound {
		scaled = ScaleUpperBound
	}
	if scaled < ScaleLowerBound {
		scaled = ScaleLowerBound
	}
	return math.Round(scaled*1000) / 1000
}

// ScaleNode 是归一化 Node：对每个 Entry 的 Rating 原地应用 ScaleRating。
// 大批量时按 chunk 并行，结果顺序与输入一致。
type ScaleNode struct {
	// Workers 并行度，<= 0 时使用 parallel.DefaultWorkers
	Workers int
}

func (n *ScaleNode) Name() string        { return "scale.rating" }
func (n *ScaleNode) Kind() pipeline.Kind { return pipeline.KindScale }

func (n *ScaleNode) Process(
	ctx context.Context,
	_ *core.RunContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	return parallel.MapChunks(ctx, entries, n.Workers,
		func(_ context.Context, chunk []core.Entry) ([]core.Entry, error) {
			out := make([]core.Entry, len(chunk))
			for i, e := range chunk {
				e.Rating = ScaleRating(e.Rating)
				out[i] = e
			}
			return out, nil
		})
}
