package rank

import (
	"context"
	"fmt"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pipeline"
)

// ScoreNode 是模型打分 Node：把候选对交给模型批量预测。
//
// 约束：每次 Process 恰好调用一次 BatchScore，全量候选一次进模型
// （不逐条流式调用，批量是模型侧并行执行的前提）。
type ScoreNode struct {
	Model core.Model
}

func (n *ScoreNode) Name() string        { return "score.model" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *ScoreNode) Process(
	ctx context.Context,
	rctx *core.RunContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	scored, err := n.Model.BatchScore(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("%s: batch score: %w", rctx.Source, err)
	}

	// 非空输入零产出：与“没有候选”区分开，单独报错
	if len(scored) == 0 {
		return nil, fmt.Errorf("%s: %w", rctx.Source, core.ErrNoRecommendations)
	}
	return scored, nil
}
