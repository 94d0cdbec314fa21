package candidate

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/cfrec/core"
)

// MemorySet 是切片实现的候选集，用于测试/开发/原型。
type MemorySet struct {
	SourceName string
	Data       []core.CandidateRow
}

func NewMemorySet(name string, rows []core.CandidateRow) *MemorySet {
	return &MemorySet{SourceName: name, Data: rows}
}

func (s *MemorySet) Name() string { return s.SourceName }

func (s *MemorySet) Rows(_ context.Context) ([]core.CandidateRow, error) {
	return s.Data, nil
}

// StoreSet 是基于 core.Store 的候选集：整个候选源以 JSON 行数组存于单个 key。
// 上游候选生成器写入，本包只读。行数较大时由 Store 后端负责传输，
// 解码用 goccy/go-json（encoding/json 的高性能替代）。
type StoreSet struct {
	SourceName string
	Store      core.Store
	Key        string // 如 "candidate:top_artist"
}

func NewStoreSet(name string, store core.Store, key string) *StoreSet {
	return &StoreSet{SourceName: name, Store: store, Key: key}
}

func (s *StoreSet) Name() string { return s.SourceName }

func (s *StoreSet) Rows(ctx context.Context) ([]core.CandidateRow, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			// key 不存在视为空候选集，由物化阶段统一报 EMPTY_RESULT
			return nil, nil
		}
		return nil, err
	}

	var rows []core.CandidateRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("candidate set %s: decode: %w", s.SourceName, err)
	}
	return rows, nil
}

// SaveRows 把候选行写回 Store（供上游生成器与测试使用）。
func SaveRows(ctx context.Context, store core.Store, key string, rows []core.CandidateRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("candidate set: encode: %w", err)
	}
	return store.Set(ctx, key, data)
}
