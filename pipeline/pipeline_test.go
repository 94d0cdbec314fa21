package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/cfrec/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func([]core.Entry) ([]core.Entry, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, _ *core.RunContext, entries []core.Entry) ([]core.Entry, error) {
	return n.fn(entries)
}

func TestPipelineRunChainsNodes(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "emit", kind: KindCandidate, fn: func(_ []core.Entry) ([]core.Entry, error) {
			return []core.Entry{{InternalUserID: 1}, {InternalUserID: 2}}, nil
		}},
		&stubNode{name: "score", kind: KindScore, fn: func(entries []core.Entry) ([]core.Entry, error) {
			for i := range entries {
				entries[i].Rating = float64(entries[i].InternalUserID)
			}
			return entries, nil
		}},
	}}

	out, err := p.Run(context.Background(), &core.RunContext{Source: "top_artist"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 || out[1].Rating != 2.0 {
		t.Errorf("out = %+v", out)
	}
}

func TestPipelineRunStopsOnError(t *testing.T) {
	wantErr := errors.New("node failure")
	called := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "fail", kind: KindScore, fn: func(_ []core.Entry) ([]core.Entry, error) {
			return nil, wantErr
		}},
		&stubNode{name: "after", kind: KindRank, fn: func(entries []core.Entry) ([]core.Entry, error) {
			called = true
			return entries, nil
		}},
	}}

	_, err := p.Run(context.Background(), &core.RunContext{}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if called {
		t.Error("downstream node ran after failure")
	}
}

func TestConfigBuildPipeline(t *testing.T) {
	raw := `
pipeline:
  name: recording_recommend
  nodes:
    - type: scale.rating
      config:
        workers: 2
    - type: rank.usertopn
      config:
        limit: 100
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if cfg.Pipeline.Name != "recording_recommend" || len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("cfg = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Nodes[1].Config["limit"] != 100 {
		t.Errorf("limit = %v, want 100", cfg.Pipeline.Nodes[1].Config["limit"])
	}

	factory := NewNodeFactory()
	factory.Register("scale.rating", func(_ map[string]any) (Node, error) {
		return &stubNode{name: "scale", kind: KindScale, fn: func(e []core.Entry) ([]core.Entry, error) { return e, nil }}, nil
	})
	factory.Register("rank.usertopn", func(_ map[string]any) (Node, error) {
		return &stubNode{name: "rank", kind: KindRank, fn: func(e []core.Entry) ([]core.Entry, error) { return e, nil }}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(p.Nodes))
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "unknown"})
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Error("expected error for unknown node type")
	}
}
