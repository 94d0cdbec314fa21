package recommend

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/rushteam/cfrec/core"
	"github.com/rushteam/cfrec/rank"
)

// 报告记录的类型判别字段。
const (
	TypeRecommendations = "cf_recommendations_recording_recommendations"
	TypeMail            = "cf_recommendations_recording_mail"
)

// ScoreEntry 是单条推荐：外部曲目标识 + 归一化分数。
type ScoreEntry struct {
	RecordingMBID string  `json:"recording_mbid"`
	Score         float64 `json:"score"`
}

// Recommendations 是一个用户的两个源推荐列表，均按名次升序，可为空。
type Recommendations struct {
	TopArtist     []ScoreEntry `json:"top_artist"`
	SimilarArtist []ScoreEntry `json:"similar_artist"`
}

// RecommendationMessage 是按用户维度的报告记录。
// 仅为在至少一个源中有推荐的用户生成，每个用户恰好一条。
type RecommendationMessage struct {
	UserID          int64           `json:"user_id"`
	Type            string          `json:"type"`
	Recommendations Recommendations `json:"recommendations"`
}

func (m *RecommendationMessage) MessageType() string { return m.Type }
func (m *RecommendationMessage) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// MailMessage 是 run 的汇总记录，跟在全部用户记录之后，恰好一条。
type MailMessage struct {
	Type                   string `json:"type"`
	ActiveUserCount        int    `json:"active_user_count"`
	TopArtistUserCount     int    `json:"top_artist_user_count"`
	SimilarArtistUserCount int    `json:"similar_artist_user_count"`
	TotalTime              string `json:"total_time"` // 小时，固定两位小数的文本
}

func (m *MailMessage) MessageType() string { return m.Type }
func (m *MailMessage) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Messages 组装报告记录序列：对出现在任一源中的用户（并集）各产出一条
// RecommendationMessage，最后产出一条 MailMessage。
//
// 序列是惰性的、有限的，可重复 range（每次重新组装）。
// 用户顺序取首次出现顺序（先 top 后 similar），同一输入下稳定。
func Messages(
	top, similar []core.Recommendation,
	activeUserCount, topUserCount, similarUserCount int,
	elapsed time.Duration,
) iter.Seq[core.Message] {
	return func(yield func(core.Message) bool) {
		userIDs, topByUser, similarByUser := groupByUser(top, similar)

		for _, uid := range userIDs {
			msg := &RecommendationMessage{
				UserID: uid,
				Type:   TypeRecommendations,
				Recommendations: Recommendations{
					TopArtist:     scoreEntries(topByUser[uid]),
					SimilarArtist: scoreEntries(similarByUser[uid]),
				},
			}
			if !yield(msg) {
				return
			}
		}

		yield(&MailMessage{
			Type:                   TypeMail,
			ActiveUserCount:        activeUserCount,
			TopArtistUserCount:     topUserCount,
			SimilarArtistUserCount: similarUserCount,
			TotalTime:              fmt.Sprintf("%.2f", elapsed.Hours()),
		})
	}
}

func groupByUser(top, similar []core.Recommendation) ([]int64, map[int64][]core.Recommendation, map[int64][]core.Recommendation) {
	var userIDs []int64
	seen := make(map[int64]struct{})
	topByUser := make(map[int64][]core.Recommendation)
	similarByUser := make(map[int64][]core.Recommendation)

	for _, r := range top {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
		topByUser[r.UserID] = append(topByUser[r.UserID], r)
	}
	for _, r := range similar {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
		similarByUser[r.UserID] = append(similarByUser[r.UserID], r)
	}
	return userIDs, topByUser, similarByUser
}

// scoreEntries 按名次升序转为报告条目；无推荐时返回空切片（非 nil，JSON 中为 []）。
func scoreEntries(recs []core.Recommendation) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(recs))
	sorted := make([]core.Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	for _, r := range sorted {
		out = append(out, ScoreEntry{RecordingMBID: r.RecordingMBID, Score: r.Rating})
	}
	return out
}

// CheckRatingsBeyondRange 报告两个源中是否存在低于下界 / 高于上界的分数。
// 纯诊断用途：不修改数据、不返回错误，由调用方决定是否告警。
func CheckRatingsBeyondRange(top, similar []core.Recommendation, lower, upper float64) (beyondLower, beyondUpper bool) {
	for _, recs := range [][]core.Recommendation{top, similar} {
		for _, r := range recs {
			if r.Rating < lower {
				beyondLower = true
			}
			if r.Rating > upper {
				beyondUpper = true
			}
		}
	}
	return beyondLower, beyondUpper
}

// DefaultRatingBounds 返回归一化分数的默认合法区间。
func DefaultRatingBounds() (lower, upper float64) {
	return rank.ScaleLowerBound, rank.ScaleUpperBound
}
