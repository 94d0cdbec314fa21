package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pipeline"
	"github.com/rushteam/cfrec/pkg/parallel"
)

// UserTopNNode 是按用户分区的 Top-N 排名节点，在归一化之后使用。
//
// 行为：
//   - 按 InternalUserID 分区
//   - 分区内按归一化分数降序；分数相同时按 RecordingID 升序，
//     保证相同输入在多次 run 之间产出完全一致
//   - 从 1 开始赋 dense rank（无空洞），截断到前 Limit 个
//   - 零条目的用户不产出任何行，不算错误
type UserTopNNode struct {
	// Limit 每用户保留的条目数量
	// 如果 Limit <= 0，则保留全部条目（只排名不截断）
	Limit int

	// Workers 分区并行度，<= 0 时使用 parallel.DefaultWorkers
	Workers int
}

func (n *UserTopNNode) Name() string        { return "rank.usertopn" }
func (n *UserTopNNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *UserTopNNode) Process(
	ctx context.Context,
	_ *core.RunContext,
	entries []core.Entry,
) ([]core.Entry, error) {
	return RankAndLimit(ctx, entries, n.Limit, n.Workers)
}

// RankAndLimit 对 entries 按用户分区做降序 dense rank 并截断。
// 输出按用户编号升序、分区内按名次升序，整体确定。
func RankAndLimit(ctx context.Context, entries []core.Entry, limit, workers int) ([]core.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	partitions := make(map[int64][]core.Entry)
	for _, e := range entries {
		partitions[e.InternalUserID] = append(partitions[e.InternalUserID], e)
	}

	userIDs := make([]int64, 0, len(partitions))
	for uid := range partitions {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	return parallel.MapChunks(ctx, userIDs, workers,
		func(_ context.Context, uids []int64) ([]core.Entry, error) {
			out := make([]core.Entry, 0, len(uids))
			for _, uid := range uids {
				out = append(out, rankPartition(partitions[uid], limit)...)
			}
			return out, nil
		})
}

func rankPartition(part []core.Entry, limit int) []core.Entry {
	sort.Slice(part, func(i, j int) bool {
		if part[i].Rating != part[j].Rating {
			return part[i].Rating > part[j].Rating
		}
		return part[i].RecordingID < part[j].RecordingID
	})

	if limit > 0 && len(part) > limit {
		part = part[:limit]
	}

	for i := range part {
		part[i].Rank = i + 1
	}
	return part
}
