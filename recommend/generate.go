// Package recommend 编排推荐生成 run：对两个候选源各跑一条
// Candidate → Score → Scale → Rank 流水线，解析回外部标识，
// 并组装投递给 sink 的报告记录。
package recommend

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cfrec/candidate"
	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pipeline"
	"github.com/rushteam/cfrec/rank"
	"github.com/rushteam/cfrec/rerank"
)

// Generator 执行一次完整的推荐生成 run。
type Generator struct {
	Params core.RecommendationParams

	// Filter 是可选的候选行 CEL 过滤器，两个候选源共用
	Filter *candidate.RowFilter

	// Workers 各并行阶段的并行度，<= 0 时使用默认值
	Workers int
}

// Result 是一次 run 的产出：两个源各自的推荐行 + 汇总计数。
type Result struct {
	TopArtist     []core.Recommendation
	SimilarArtist []core.Recommendation

	ActiveUserCount        int // 任一源中出现过的去重用户数
	TopArtistUserCount     int // 至少有一条 top_artist 推荐的用户数
	SimilarArtistUserCount int // 至少有一条 similar_artist 推荐的用户数

	Elapsed time.Duration // run 全程耗时
}

// GenerateAll 对两个候选源独立生成推荐。
//
// 两条流水线不共享中间状态，在同一个 errgroup 下并发执行；
// 任一源失败则整个 run 失败（显式设计：残缺的推荐集比清晰的失败更糟），
// 错误原样向上传播，本层不重试、不捕获。
func (g *Generator) GenerateAll(ctx context.Context, users []int64) (*Result, error) {
	start := time.Now()

	var topEntries, similarEntries []core.Entry
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		entries, err := g.generateForSource(egCtx, g.Params.TopArtistSet, g.Params.TopArtistLimit, users)
		if err != nil {
			return err
		}
		topEntries = entries
		return nil
	})
	eg.Go(func() error {
		entries, err := g.generateForSource(egCtx, g.Params.SimilarArtistSet, g.Params.SimilarArtistLimit, users)
		if err != nil {
			return err
		}
		similarEntries = entries
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	userIndex, err := g.mergedUserIndex(ctx, users)
	if err != nil {
		return nil, err
	}

	top, err := g.resolve(ctx, topEntries, userIndex)
	if err != nil {
		return nil, err
	}
	similar, err := g.resolve(ctx, similarEntries, userIndex)
	if err != nil {
		return nil, err
	}

	return &Result{
		TopArtist:              top,
		SimilarArtist:          similar,
		ActiveUserCount:        countDistinctUsersUnion(topEntries, similarEntries),
		TopArtistUserCount:     CountDistinctUsers(topEntries),
		SimilarArtistUserCount: CountDistinctUsers(similarEntries),
		Elapsed:                time.Since(start),
	}, nil
}

// generateForSource 对单个候选源执行四阶段流水线。
func (g *Generator) generateForSource(
	ctx context.Context,
	set core.CandidateSet,
	limit int,
	users []int64,
) ([]core.Entry, error) {
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&candidate.SetNode{Set: set, Filter: g.Filter},
			&rank.ScoreNode{Model: g.Params.Model},
			&rank.ScaleNode{Workers: g.Workers},
			&rerank.UserTopNNode{Limit: limit, Workers: g.Workers},
		},
	}
	rctx := &core.RunContext{Source: set.Name(), Users: users}
	return p.Run(ctx, rctx, nil)
}

// mergedUserIndex 合并两个候选源的用户映射。
// 报告阶段对用户做集合并集，只读一个源会漏掉仅在另一个源出现的用户。
func (g *Generator) mergedUserIndex(ctx context.Context, users []int64) (map[int64]int64, error) {
	index, err := candidate.UserIndex(ctx, g.Params.TopArtistSet, users)
	if err != nil {
		return nil, err
	}
	similarIndex, err := candidate.UserIndex(ctx, g.Params.SimilarArtistSet, users)
	if err != nil {
		return nil, err
	}
	for internal, external := range similarIndex {
		index[internal] = external
	}
	return index, nil
}

// resolve 把排名后的内部条目解析为外部标识。
// 目录或用户映射中缺失的条目被丢弃（不产出半空记录），相对顺序保持不变。
func (g *Generator) resolve(
	ctx context.Context,
	entries []core.Entry,
	userIndex map[int64]int64,
) ([]core.Recommendation, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(entries))
	recordingIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.RecordingID]; ok {
			continue
		}
		seen[e.RecordingID] = struct{}{}
		recordingIDs = append(recordingIDs, e.RecordingID)
	}
	sort.Slice(recordingIDs, func(i, j int) bool { return recordingIDs[i] < recordingIDs[j] })

	mbids, err := g.Params.Catalog.BatchMBID(ctx, recordingIDs)
	if err != nil {
		return nil, err
	}

	out := make([]core.Recommendation, 0, len(entries))
	for _, e := range entries {
		externalUser, ok := userIndex[e.InternalUserID]
		if !ok {
			continue
		}
		mbid, ok := mbids[e.RecordingID]
		if !ok {
			continue
		}
		out = append(out, core.Recommendation{
			UserID:         externalUser,
			InternalUserID: e.InternalUserID,
			RecordingMBID:  mbid,
			RecordingID:    e.RecordingID,
			Rating:         e.Rating,
			Rank:           e.Rank,
		})
	}
	return out, nil
}

// CountDistinctUsers 返回条目中去重后的内部用户数。
func CountDistinctUsers(entries []core.Entry) int {
	users := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		users[e.InternalUserID] = struct{}{}
	}
	return len(users)
}

// countDistinctUsersUnion 统计两个源的用户并集大小（活跃用户数）。
func countDistinctUsersUnion(a, b []core.Entry) int {
	users := make(map[int64]struct{}, len(a)+len(b))
	for _, e := range a {
		users[e.InternalUserID] = struct{}{}
	}
	for _, e := range b {
		users[e.InternalUserID] = struct{}{}
	}
	return len(users)
}
