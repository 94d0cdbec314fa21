package core

import "context"

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 候选集行存储（candidate.StoreSet）
//   - 曲目目录（catalog.StoreCatalog，Hash）
//   - 模型二进制与元数据（model.Registry，KV + SortedSet）
//
// 实现：
//   - store.MemoryStore 实现此接口
//   - store.RedisStore 实现此接口
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// ZAdd 向有序集合添加成员（模型元数据按训练时间排序）
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRevRange 按分数降序获取有序集合成员（用于取最新模型）
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// HSet 写入 Hash 字段（曲目目录）
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HGetAll 读取整个 Hash（批量解析曲目目录）
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// Close 关闭连接/释放资源
	Close() error
}
