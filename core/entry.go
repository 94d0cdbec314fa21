package core

// Entry 是推荐生成链路中的统一承载结构，贯穿四个阶段：
//
//	Candidate 阶段产出 (InternalUserID, RecordingID) 对，Rating/Rank 为零值；
//	Score 阶段由模型填充 Rating（原始预测值，无符号/量级约束）；
//	Scale 阶段将 Rating 原地替换为有界归一化分数（三位小数）；
//	Rank 阶段填充 Rank（按用户分区内的 dense rank，从 1 开始）。
type Entry struct {
	InternalUserID int64   // 模型内部用户编号
	RecordingID    int64   // 曲目内部编号
	Rating         float64 // 原始预测值 / 归一化后分数
	Rank           int     // 用户分区内名次，未排名时为 0
}

// CandidateRow 是候选集表的一行：上游候选生成器落库的原始结构。
// 同一 (InternalUserID, RecordingID) 允许重复出现，物化阶段不去重。
type CandidateRow struct {
	UserID         int64  `json:"user_id"`          // 外部用户 ID
	InternalUserID int64  `json:"internal_user_id"` // 模型内部用户编号
	RecordingMBID  string `json:"recording_mbid"`   // 外部曲目标识（MBID）
	RecordingID    int64  `json:"recording_id"`     // 曲目内部编号
}

// Recommendation 是已解析回外部标识的最终推荐行，供报告阶段消费。
type Recommendation struct {
	UserID         int64   // 外部用户 ID
	InternalUserID int64   // 模型内部用户编号（保留用于排查）
	RecordingMBID  string  // 外部曲目标识
	RecordingID    int64   // 曲目内部编号（保留用于排查）
	Rating         float64 // 归一化分数
	Rank           int     // 用户分区内名次
}
