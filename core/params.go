package core

// RecommendationParams 是一次推荐生成 run 的不可变配置。
// 由 run 编排方创建一次，之后只读。
type RecommendationParams struct {
	Catalog Catalog // 曲目目录（内部编号 ↔ MBID）
	Model   Model   // 不透明打分模型

	TopArtistSet     CandidateSet // top_artist 候选源
	SimilarArtistSet CandidateSet // similar_artist 候选源

	TopArtistLimit     int // 每用户 top_artist 推荐上限
	SimilarArtistLimit int // 每用户 similar_artist 推荐上限
}
