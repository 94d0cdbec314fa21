package model

import (
	"context"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/pkg/parallel"
)

// MF 是矩阵分解（Matrix Factorization）模型的打分实现。
//
// 核心思想：离线训练（ALS 等）把用户-物品交互矩阵分解为隐向量，
// 在线打分只做查表 + 点积：预测分数 = 用户隐向量 · 物品隐向量。
// 训练过程不进入本包，隐向量由训练侧落库后经 Registry 加载。
//
// BatchScore 语义：
//   - 一次调用处理全部候选对，内部按 chunk 并行
//   - 缺少任一侧隐向量的候选对被丢弃（模型无法打分 ≠ 错误）
//   - 输出 Rating 为无界实数，符号与量级无约束
type MF struct {
	UserFactors map[int64][]float64 `json:"user_factors"`
	ItemFactors map[int64][]float64 `json:"item_factors"`

	// Workers 打分并行度，<= 0 时使用 parallel.DefaultWorkers
	Workers int `json:"-"`
}

func (m *MF) BatchScore(ctx context.Context, entries []core.Entry) ([]core.Entry, error) {
	return parallel.MapChunks(ctx, entries, m.Workers,
		func(_ context.Context, chunk []core.Entry) ([]core.Entry, error) {
			out := make([]core.Entry, 0, len(chunk))
			for _, e := range chunk {
				uv, ok := m.UserFactors[e.InternalUserID]
				if !ok {
					continue
				}
				iv, ok := m.ItemFactors[e.RecordingID]
				if !ok {
					continue
				}
				e.Rating = dotProduct(uv, iv)
				out = append(out, e)
			}
			return out, nil
		})
}

// dotProduct 计算两个向量的点积
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
