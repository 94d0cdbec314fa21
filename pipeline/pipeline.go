package pipeline

import (
	"context"

	"github.com/rushteam/cfrec/core"
)

// Pipeline 是 cfrec 的核心抽象：把推荐生成逻辑拆成可组合的 Node 链。
// 任一 Node 返回错误则整条链终止，错误原样向上传播（不做内部重试）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RunContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	cur := entries
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
