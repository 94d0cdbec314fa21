// Package catalog 只包含实现，接口定义在 core 包（core.Catalog）。
// 曲目目录提供内部编号与 MBID 的双向查找，写入时校验 MBID 为合法 UUID。
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/rushteam/cfrec/core"
)

var errNotFound = core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "catalog: recording not found")

// Memory 是内存实现的曲目目录，用于测试/开发/原型。
type Memory struct {
	mu     sync.RWMutex
	byID   map[int64]string
	byMBID map[string]int64
}

func NewMemory() *Memory {
	return &Memory{
		byID:   make(map[int64]string),
		byMBID: make(map[string]int64),
	}
}

// Add 登记一条映射。MBID 必须是合法 UUID（MusicBrainz 标识约定）。
func (c *Memory) Add(recordingID int64, mbid string) error {
	if _, err := uuid.Parse(mbid); err != nil {
		return fmt.Errorf("catalog: bad mbid %q: %w", mbid, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[recordingID] = mbid
	c.byMBID[mbid] = recordingID
	return nil
}

func (c *Memory) MBID(_ context.Context, recordingID int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mbid, ok := c.byID[recordingID]
	if !ok {
		return "", errNotFound
	}
	return mbid, nil
}

func (c *Memory) RecordingID(_ context.Context, mbid string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byMBID[mbid]
	if !ok {
		return 0, errNotFound
	}
	return id, nil
}

func (c *Memory) BatchMBID(_ context.Context, recordingIDs []int64) (map[int64]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[int64]string, len(recordingIDs))
	for _, id := range recordingIDs {
		if mbid, ok := c.byID[id]; ok {
			result[id] = mbid
		}
	}
	return result, nil
}

// Store key 约定：
//   - catalog:recordings   Hash，field=内部编号，value=MBID
//   - catalog:mbids        Hash，field=MBID，value=内部编号
const (
	recordingsKey = "catalog:recordings"
	mbidsKey      = "catalog:mbids"
)

// StoreCatalog 是基于 core.Store 的曲目目录（Hash 双向索引），生产环境使用。
type StoreCatalog struct {
	Store core.Store
}

func NewStoreCatalog(store core.Store) *StoreCatalog {
	return &StoreCatalog{Store: store}
}

// Add 登记一条映射，双向写入。
func (c *StoreCatalog) Add(ctx context.Context, recordingID int64, mbid string) error {
	if _, err := uuid.Parse(mbid); err != nil {
		return fmt.Errorf("catalog: bad mbid %q: %w", mbid, err)
	}

	field := strconv.FormatInt(recordingID, 10)
	if err := c.Store.HSet(ctx, recordingsKey, field, []byte(mbid)); err != nil {
		return err
	}
	return c.Store.HSet(ctx, mbidsKey, mbid, []byte(field))
}

func (c *StoreCatalog) MBID(ctx context.Context, recordingID int64) (string, error) {
	v, err := c.Store.HGet(ctx, recordingsKey, strconv.FormatInt(recordingID, 10))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return "", errNotFound
		}
		return "", err
	}
	return string(v), nil
}

func (c *StoreCatalog) RecordingID(ctx context.Context, mbid string) (int64, error) {
	v, err := c.Store.HGet(ctx, mbidsKey, mbid)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return 0, errNotFound
		}
		return 0, err
	}

	id, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("catalog: bad recording id for %q: %w", mbid, err)
	}
	return id, nil
}

// BatchMBID 一次 HGetAll 后在内存中挑选，避免逐条往返。
func (c *StoreCatalog) BatchMBID(ctx context.Context, recordingIDs []int64) (map[int64]string, error) {
	all, err := c.Store.HGetAll(ctx, recordingsKey)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]string, len(recordingIDs))
	for _, id := range recordingIDs {
		if v, ok := all[strconv.FormatInt(id, 10)]; ok {
			result[id] = string(v)
		}
	}
	return result, nil
}
