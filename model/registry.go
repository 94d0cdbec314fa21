package model

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rushteam/cfrec/core"
)

// Store key 约定：
//   - model:index            有序集合，member=模型 ID，score=训练完成时间（unix 秒）
//   - model:meta:<id>        模型元数据 JSON
//   - model:factors:<id>     隐向量 JSON（MF 结构）
const (
	indexKey      = "model:index"
	metaKeyPrefix = "model:meta:"
	blobKeyPrefix = "model:factors:"
)

// Registry 是基于 core.Store 的模型元数据注册表，实现 core.ModelRegistry。
//
// “最近一次训练的模型”通过显式 Latest 调用解析（按训练完成时间取最大），
// 不依赖全局状态，不同环境可以指向不同 Store。
type Registry struct {
	Store core.Store

	// Workers 传递给加载出的 MF 模型作为打分并行度
	Workers int
}

func NewRegistry(store core.Store) *Registry {
	return &Registry{Store: store}
}

// Latest 返回训练完成时间最新的模型 ID。
// 没有任何元数据时返回 ErrModelNotFound，调用方应在任何打分发生前失败。
func (r *Registry) Latest(ctx context.Context) (uuid.UUID, error) {
	members, err := r.Store.ZRevRange(ctx, indexKey, 0, 0)
	if err != nil {
		return uuid.Nil, fmt.Errorf("model index: %w", err)
	}
	if len(members) == 0 {
		return uuid.Nil, core.ErrModelNotFound
	}

	id, err := uuid.Parse(members[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("model index: bad model id %q: %w", members[0], err)
	}
	return id, nil
}

// Load 按 ID 加载模型隐向量。
func (r *Registry) Load(ctx context.Context, id uuid.UUID) (core.Model, error) {
	data, err := r.Store.Get(ctx, blobKeyPrefix+id.String())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, fmt.Errorf("model %s: %w", id, core.ErrModelNotFound)
		}
		return nil, err
	}

	var mf MF
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("model %s: decode: %w", id, err)
	}
	mf.Workers = r.Workers
	return &mf, nil
}

// LoadLatest 是 Latest + Load 的组合，供 run 编排方一步取到可用模型。
func (r *Registry) LoadLatest(ctx context.Context) (core.Model, error) {
	id, err := r.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, id)
}

// Metadata 按 ID 读取模型元数据。
func (r *Registry) Metadata(ctx context.Context, id uuid.UUID) (*core.ModelMetadata, error) {
	data, err := r.Store.Get(ctx, metaKeyPrefix+id.String())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, fmt.Errorf("model %s: metadata: %w", id, core.ErrModelNotFound)
		}
		return nil, err
	}

	var meta core.ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("model %s: metadata decode: %w", id, err)
	}
	return &meta, nil
}

// Save 落库一次训练产出：隐向量、元数据、时间索引。
// 由训练侧/测试调用，生成链路本身只读。
func (r *Registry) Save(ctx context.Context, meta core.ModelMetadata, mf *MF) error {
	blob, err := json.Marshal(mf)
	if err != nil {
		return fmt.Errorf("model %s: encode: %w", meta.ModelID, err)
	}
	if err := r.Store.Set(ctx, blobKeyPrefix+meta.ModelID.String(), blob); err != nil {
		return err
	}

	metaData, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("model %s: metadata encode: %w", meta.ModelID, err)
	}
	if err := r.Store.Set(ctx, metaKeyPrefix+meta.ModelID.String(), metaData); err != nil {
		return err
	}

	return r.Store.ZAdd(ctx, indexKey, float64(meta.CreatedAt.Unix()), meta.ModelID.String())
}
