package core

// Message 是报告阶段产出的一条记录，由外部 sink 负责投递。
// 本包只生成序列，不关心传输方式（消息队列、文件等）。
type Message interface {
	// MessageType 返回类型判别字段（如 "cf_recommendations_recording_recommendations"）
	MessageType() string

	// JSON 返回记录的 JSON 编码，供 sink 直接投递
	JSON() ([]byte, error)
}
