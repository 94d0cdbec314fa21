package rank

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/cfrec/core"
)

type stubModel struct {
	out   []core.Entry
	err   error
	calls int
}

func (m *stubModel) BatchScore(_ context.Context, _ []core.Entry) ([]core.Entry, error) {
	m.calls++
	return m.out, m.err
}

func TestScoreNodeProcess(t *testing.T) {
	candidates := []core.Entry{
		{InternalUserID: 1, RecordingID: 1},
		{InternalUserID: 2, RecordingID: 2},
	}

	t.Run("pulls ratings through unmodified", func(t *testing.T) {
		scored := []core.Entry{
			{InternalUserID: 1, RecordingID: 1, Rating: 6.994590001},
			{InternalUserID: 2, RecordingID: 2, Rating: -2.4587},
		}
		m := &stubModel{out: scored}
		node := &ScoreNode{Model: m}

		out, err := node.Process(context.Background(), &core.RunContext{Source: "top_artist"}, candidates)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if m.calls != 1 {
			t.Errorf("BatchScore called %d times, want exactly 1", m.calls)
		}
		if len(out) != len(scored) {
			t.Fatalf("got %d entries, want %d", len(out), len(scored))
		}
		for i, e := range out {
			if e != scored[i] {
				t.Errorf("entry %d = %+v, want %+v", i, e, scored[i])
			}
		}
	})

	t.Run("empty model output for non-empty input", func(t *testing.T) {
		m := &stubModel{out: nil}
		node := &ScoreNode{Model: m}

		_, err := node.Process(context.Background(), &core.RunContext{Source: "top_artist"}, candidates)
		if !errors.Is(err, core.ErrNoRecommendations) {
			t.Fatalf("err = %v, want ErrNoRecommendations", err)
		}
		if !core.IsEmptyResult(err) {
			t.Errorf("IsEmptyResult(err) = false, want true")
		}
	})

	t.Run("model error propagates", func(t *testing.T) {
		wantErr := errors.New("engine failure")
		m := &stubModel{err: wantErr}
		node := &ScoreNode{Model: m}

		_, err := node.Process(context.Background(), &core.RunContext{Source: "top_artist"}, candidates)
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want wrapped %v", err, wantErr)
		}
	})

	t.Run("empty input skips model", func(t *testing.T) {
		m := &stubModel{}
		node := &ScoreNode{Model: m}

		out, err := node.Process(context.Background(), &core.RunContext{Source: "top_artist"}, nil)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("got %d entries, want 0", len(out))
		}
		if m.calls != 0 {
			t.Errorf("BatchScore called %d times, want 0", m.calls)
		}
	})
}
