package candidate

import (
	"context"
	"fmt"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pipeline"
)

// Materialize 物化候选集为可打分的 (user, recording) 对。
//
// 语义：
//   - users 为空：候选集中全部行都进入结果
//   - users 非空：先按外部 user_id 列解析为内部用户编号，解析不到的 ID 被丢弃，
//     再用解析出的内部编号集合过滤行
//   - 过滤后为零行：返回 ErrEmptyCandidateSet（空候选集、全部无法解析、
//     用户不在该候选源中，三种情况同一错误）
//
// 不去重：候选集中重复的 (user, recording) 对各自产出一个打分机会，
// 由模型幂等处理。输出顺序无业务含义。
func Materialize(ctx context.Context, set core.CandidateSet, users []int64) ([]core.Entry, error) {
	rows, err := set.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return materializeRows(set.Name(), rows, users)
}

func materializeRows(source string, rows []core.CandidateRow, users []int64) ([]core.Entry, error) {
	if len(users) > 0 {
		rows = restrictToUsers(rows, users)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, core.ErrEmptyCandidateSet)
	}

	entries := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, core.Entry{
			InternalUserID: row.InternalUserID,
			RecordingID:    row.RecordingID,
		})
	}
	return entries, nil
}

// restrictToUsers 把外部用户 ID 解析为内部编号后过滤候选行。
// 两段式：不存在“部分匹配”，解析不到的外部 ID 直接丢弃。
func restrictToUsers(rows []core.CandidateRow, users []int64) []core.CandidateRow {
	requested := make(map[int64]struct{}, len(users))
	for _, u := range users {
		requested[u] = struct{}{}
	}

	internal := make(map[int64]struct{}, len(users))
	for _, row := range rows {
		if _, ok := requested[row.UserID]; ok {
			internal[row.InternalUserID] = struct{}{}
		}
	}

	out := make([]core.CandidateRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := internal[row.InternalUserID]; ok {
			out = append(out, row)
		}
	}
	return out
}

// UserIndex 构建内部用户编号 → 外部用户 ID 的映射，供报告阶段回解。
// users 的过滤语义与 Materialize 一致；结果为空时返回 ErrEmptyCandidateSet。
func UserIndex(ctx context.Context, set core.CandidateSet, users []int64) (map[int64]int64, error) {
	rows, err := set.Rows(ctx)
	if err != nil {
		return nil, err
	}

	requested := make(map[int64]struct{}, len(users))
	for _, u := range users {
		requested[u] = struct{}{}
	}

	index := make(map[int64]int64)
	for _, row := range rows {
		if len(users) > 0 {
			if _, ok := requested[row.UserID]; !ok {
				continue
			}
		}
		index[row.InternalUserID] = row.UserID
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("%s: user index: %w", set.Name(), core.ErrEmptyCandidateSet)
	}
	return index, nil
}

// SetNode 是候选集物化 Node，作为每条流水线的第一个阶段。
// 输入 entries 被忽略（本阶段是生成器），Filter 可选。
type SetNode struct {
	Set core.CandidateSet

	// Filter 是可选的行级 CEL 过滤器，在用户过滤之前应用
	Filter *RowFilter
}

func (n *SetNode) Name() string        { return "candidate.set" }
func (n *SetNode) Kind() pipeline.Kind { return pipeline.KindCandidate }

func (n *SetNode) Process(
	ctx context.Context,
	rctx *core.RunContext,
	_ []core.Entry,
) ([]core.Entry, error) {
	rows, err := n.Set.Rows(ctx)
	if err != nil {
		return nil, err
	}

	if n.Filter != nil {
		rows, err = n.Filter.Apply(rows, rctx)
		if err != nil {
			return nil, err
		}
	}

	return materializeRows(n.Set.Name(), rows, rctx.Users)
}
