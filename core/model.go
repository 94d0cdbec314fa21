package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Model 是打分模型的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（model）实现
//   - 模型算法（矩阵分解等）对本包不可见，只暴露批量打分能力
//   - 批量调用：一次 BatchScore 处理全部候选对，便于底层并行执行
//
// 实现：
//   - model.MF 实现此接口（用户/物品隐向量点积）
//   - 远程模型服务（TF Serving 等）也可以实现此接口
type Model interface {
	// BatchScore 对候选对批量打分，返回带 Rating 的 Entry。
	// 输出行数可以少于输入（模型无法打分的对被丢弃），顺序不保证。
	BatchScore(ctx context.Context, entries []Entry) ([]Entry, error)
}

// ModelMetadata 是一次训练产出的模型元数据。
type ModelMetadata struct {
	ModelID   uuid.UUID `json:"model_id"`   // 模型标识
	CreatedAt time.Time `json:"created_at"` // 训练完成时间
	Rank      int       `json:"rank"`       // 隐向量维度（可选，仅记录）
}

// ModelRegistry 是模型元数据访问的领域接口。
//
// "最近一次训练的模型"由显式的 Latest 调用解析，
// 不读取任何全局状态，便于测试与多环境部署。
type ModelRegistry interface {
	// Latest 返回创建时间最新的模型标识；无任何元数据时返回 ErrModelNotFound
	Latest(ctx context.Context) (uuid.UUID, error)

	// Load 按标识加载模型
	Load(ctx context.Context, id uuid.UUID) (Model, error)
}
