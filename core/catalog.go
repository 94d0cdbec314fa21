package core

import "context"

// Catalog 是曲目目录的领域接口：内部编号与外部 MBID 的双向查找。
//
// 实现：
//   - catalog.Memory 实现此接口（测试/原型）
//   - catalog.StoreCatalog 实现此接口（基于 core.Store 的 Hash，生产）
type Catalog interface {
	// MBID 按内部编号查外部标识
	MBID(ctx context.Context, recordingID int64) (string, error)

	// RecordingID 按外部标识查内部编号
	RecordingID(ctx context.Context, mbid string) (int64, error)

	// BatchMBID 批量查找（推荐链路常用，减少往返）。
	// 返回 map[recordingID]mbid，查不到的编号不出现在结果中。
	BatchMBID(ctx context.Context, recordingIDs []int64) (map[int64]string, error)
}
