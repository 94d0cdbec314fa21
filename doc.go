// Package cfrec 是一个协同过滤推荐生成工具包（CF Recommendation Generator Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐生成逻辑通过 Node 串联（Candidate → Score → Scale → Rank）
// - 双候选源独立流水线（top_artist / similar_artist），仅在报告阶段合并
// - 模型不透明化: 模型只暴露批量打分能力（core.Model），训练过程不进入本包
// - 评分归一化: 缩放到对称有界区间并保留三位小数，供下游直接比较
package cfrec

import "github.com/rushteam/cfrec/pipeline"

// 轻量 facade：便于用户直接 import "cfrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindCandidate = pipeline.KindCandidate
	KindScore     = pipeline.KindScore
	KindScale     = pipeline.KindScale
	KindRank      = pipeline.KindRank
)
