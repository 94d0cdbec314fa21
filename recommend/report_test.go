package recommend

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rushteam/cfrec/core"
)

func reportFixtures() (top, similar []core.Recommendation) {
	top = []core.Recommendation{
		{UserID: 3, InternalUserID: 6, RecordingID: 5, RecordingMBID: "2acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: 1.8, Rank: 1},
		{UserID: 3, InternalUserID: 6, RecordingID: 6, RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: -0.8, Rank: 2},
		{UserID: 1, InternalUserID: 7, RecordingID: 6, RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: 0.99, Rank: 1},
	}
	similar = []core.Recommendation{
		{UserID: 4, InternalUserID: 8, RecordingID: 5, RecordingMBID: "2acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: 0.8, Rank: 1},
		{UserID: 4, InternalUserID: 8, RecordingID: 6, RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: -2.8, Rank: 2},
		{UserID: 1, InternalUserID: 7, RecordingID: 11, RecordingMBID: "7acb406f-c716-45f8-a8bd-96ca3939c2e5", Rating: 0.19, Rank: 1},
	}
	return top, similar
}

func collect(t *testing.T, top, similar []core.Recommendation) []core.Message {
	t.Helper()
	var out []core.Message
	for msg := range Messages(top, similar, 10, 5, 4, 3600*time.Second) {
		out = append(out, msg)
	}
	return out
}

func TestMessages(t *testing.T) {
	top, similar := reportFixtures()
	msgs := collect(t, top, similar)

	// 3 个用户记录 + 1 条汇总
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}

	wantUsers := []struct {
		userID  int64
		top     []ScoreEntry
		similar []ScoreEntry
	}{
		{
			userID: 3,
			top: []ScoreEntry{
				{RecordingMBID: "2acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: 1.8},
				{RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: -0.8},
			},
			similar: []ScoreEntry{},
		},
		{
			userID:  1,
			top:     []ScoreEntry{{RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: 0.99}},
			similar: []ScoreEntry{{RecordingMBID: "7acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: 0.19}},
		},
		{
			userID: 4,
			top:    []ScoreEntry{},
			similar: []ScoreEntry{
				{RecordingMBID: "2acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: 0.8},
				{RecordingMBID: "8acb406f-c716-45f8-a8bd-96ca3939c2e5", Score: -2.8},
			},
		},
	}

	for i, want := range wantUsers {
		msg, ok := msgs[i].(*RecommendationMessage)
		if !ok {
			t.Fatalf("message %d: %T, want *RecommendationMessage", i, msgs[i])
		}
		if msg.Type != TypeRecommendations {
			t.Errorf("message %d: type %q", i, msg.Type)
		}
		if msg.UserID != want.userID {
			t.Errorf("message %d: user %d, want %d", i, msg.UserID, want.userID)
		}
		if !reflect.DeepEqual(msg.Recommendations.TopArtist, want.top) {
			t.Errorf("user %d top: %+v, want %+v", want.userID, msg.Recommendations.TopArtist, want.top)
		}
		if !reflect.DeepEqual(msg.Recommendations.SimilarArtist, want.similar) {
			t.Errorf("user %d similar: %+v, want %+v", want.userID, msg.Recommendations.SimilarArtist, want.similar)
		}
	}

	mail, ok := msgs[3].(*MailMessage)
	if !ok {
		t.Fatalf("last message: %T, want *MailMessage", msgs[3])
	}
	want := &MailMessage{
		Type:                   TypeMail,
		ActiveUserCount:        10,
		TopArtistUserCount:     5,
		SimilarArtistUserCount: 4,
		TotalTime:              "1.00",
	}
	if !reflect.DeepEqual(mail, want) {
		t.Errorf("mail = %+v, want %+v", mail, want)
	}
}

func TestMessagesRestartable(t *testing.T) {
	top, similar := reportFixtures()
	seq := Messages(top, similar, 10, 5, 4, 3600*time.Second)

	var first, second []string
	for msg := range seq {
		first = append(first, msg.MessageType())
	}
	for msg := range seq {
		second = append(second, msg.MessageType())
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-ranging produced different sequence: %v vs %v", first, second)
	}
}

func TestMessagesJSONShape(t *testing.T) {
	top, _ := reportFixtures()
	msgs := collect(t, top, nil)

	data, err := msgs[0].JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	body := string(data)

	// 无推荐的源序列化为 []，不能是 null
	if !strings.Contains(body, `"similar_artist":[]`) {
		t.Errorf("empty source not encoded as []: %s", body)
	}
	if !strings.Contains(body, `"type":"cf_recommendations_recording_recommendations"`) {
		t.Errorf("missing type discriminator: %s", body)
	}
	if !strings.Contains(body, `"user_id":3`) {
		t.Errorf("missing user_id: %s", body)
	}
}

func TestMessagesTotalTimeFormat(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{3600 * time.Second, "1.00"},
		{1800 * time.Second, "0.50"},
		{0, "0.00"},
		{9000 * time.Second, "2.50"},
	}
	for _, tt := range tests {
		var mail *MailMessage
		for msg := range Messages(nil, nil, 0, 0, 0, tt.elapsed) {
			if m, ok := msg.(*MailMessage); ok {
				mail = m
			}
		}
		if mail == nil {
			t.Fatal("no mail message emitted")
		}
		if mail.TotalTime != tt.want {
			t.Errorf("elapsed %v: total_time %q, want %q", tt.elapsed, mail.TotalTime, tt.want)
		}
	}
}

func TestCheckRatingsBeyondRange(t *testing.T) {
	top, similar := reportFixtures()

	tests := []struct {
		name        string
		top         []core.Recommendation
		similar     []core.Recommendation
		wantBeyondL bool
		wantBeyondU bool
	}{
		{name: "both sides exceeded", top: top, similar: similar, wantBeyondL: true, wantBeyondU: true},
		{name: "within bounds", top: []core.Recommendation{{Rating: 0.5}}, similar: []core.Recommendation{{Rating: -0.5}}},
		{name: "only upper", top: []core.Recommendation{{Rating: 1.8}}, wantBeyondU: true},
		{name: "only lower", similar: []core.Recommendation{{Rating: -2.8}}, wantBeyondL: true},
		{name: "empty sets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotL, gotU := CheckRatingsBeyondRange(tt.top, tt.similar, -1.0, 1.0)
			if gotL != tt.wantBeyondL || gotU != tt.wantBeyondU {
				t.Errorf("got (%v, %v), want (%v, %v)", gotL, gotU, tt.wantBeyondL, tt.wantBeyondU)
			}
		})
	}
}

func TestCountDistinctUsers(t *testing.T) {
	entries := []core.Entry{
		{InternalUserID: 3},
		{InternalUserID: 3},
		{InternalUserID: 2},
	}
	if got := CountDistinctUsers(entries); got != 2 {
		t.Errorf("CountDistinctUsers = %d, want 2", got)
	}
	if got := CountDistinctUsers(nil); got != 0 {
		t.Errorf("CountDistinctUsers(nil) = %d, want 0", got)
	}
}
