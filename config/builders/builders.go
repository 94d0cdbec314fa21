package builders

import (
	"github.com/rushteam/cfrec/config"
	"github.com/rushteam/cfrec/pipeline"
	"github.com/rushteam/cfrec/pkg/conv"
	"github.com/rushteam/cfrec/rank"
	"github.com/rushteam/cfrec/rerank"
)

func init() {
	config.Register("scale.rating", BuildScaleNode)
	config.Register("rank.usertopn", BuildUserTopNNode)
	// candidate.set 需 core.CandidateSet，score.model 需 core.Model，
	// 由 run 编排方注入闭包注册，无法从纯配置构建
}

func BuildScaleNode(cfg map[string]any) (pipeline.Node, error) {
	return &rank.ScaleNode{
		Workers: conv.ConfigGetInt(cfg, "workers", 0),
	}, nil
}

func BuildUserTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.UserTopNNode{
		Limit:   conv.ConfigGetInt(cfg, "limit", 0),
		Workers: conv.ConfigGetInt(cfg, "workers", 0),
	}, nil
}
