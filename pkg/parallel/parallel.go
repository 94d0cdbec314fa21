// Package parallel 提供分片并行执行工具：把大切片按 chunk 切分后
// 交给 errgroup 并发处理，对调用方呈现为一次同步屏障。
// 引擎调度（goroutine 数量、chunk 大小）集中在此处，业务代码不做显式并发管理。
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers 是未指定并发度时的默认 worker 数。
const DefaultWorkers = 8

// MapChunks 将 in 切分为 workers 个左右的 chunk，并发执行 fn 后按 chunk 顺序拼接结果。
// 任一 chunk 返回错误则整体失败（terminal failure，不产出部分结果）。
// 结果顺序与输入 chunk 顺序一致，便于上层做确定性断言。
func MapChunks[T, U any](ctx context.Context, in []T, workers int, fn func(ctx context.Context, chunk []T) ([]U, error)) ([]U, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(in) {
		workers = len(in)
	}

	chunkSize := (len(in) + workers - 1) / workers
	chunks := make([][]T, 0, workers)
	for start := 0; start < len(in); start += chunkSize {
		end := start + chunkSize
		if end > len(in) {
			end = len(in)
		}
		chunks = append(chunks, in[start:end])
	}

	results := make([][]U, len(chunks))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		eg.Go(func() error {
			out, err := fn(egCtx, chunk)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]U, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// Map 对每个元素并发执行 fn，结果按输入顺序返回。
func Map[T, U any](ctx context.Context, in []T, workers int, fn func(ctx context.Context, v T) (U, error)) ([]U, error) {
	return MapChunks(ctx, in, workers, func(ctx context.Context, chunk []T) ([]U, error) {
		out := make([]U, 0, len(chunk))
		for _, v := range chunk {
			u, err := fn(ctx, v)
			if err != nil {
				return nil, err
			}
			out = append(out, u)
		}
		return out, nil
	})
}
