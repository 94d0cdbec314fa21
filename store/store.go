// Package store 只包含实现，接口定义在 core 包（core.Store）。
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	s, err := store.NewRedisStore("127.0.0.1:6379", 0)
package store

import "github.com/rushteam/cfrec/core"

// errNotFound 是各实现共用的 key 不存在错误。
var errNotFound = core.ErrStoreNotFound
