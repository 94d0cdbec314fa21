package candidate

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/cfrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = cel.NewEnv(
			cel.Variable("row", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, err
}

// RowFilter 是候选行的 CEL (Common Expression Language) 过滤器。
// 表达式编译一次后缓存，可在多个 goroutine 中复用。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：row.recording_id > 100 / row.internal_user_id != 0
//   - 字符串：row.recording_mbid.startsWith("2acb")
//   - 逻辑：row.user_id in [1, 3] && row.recording_id < 1000
//   - 上下文：rctx.source == "top_artist"
type RowFilter struct {
	expr string
	prg  cel.Program
}

// NewRowFilter 编译 CEL 表达式并返回过滤器。
// 空表达式返回 nil 过滤器（表示不过滤）。
func NewRowFilter(expr string) (*RowFilter, error) {
	if expr == "" {
		return nil, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	return &RowFilter{expr: expr, prg: prg}, nil
}

// Expr 返回过滤器的原始表达式（用于日志/排查）。
func (f *RowFilter) Expr() string { return f.expr }

// Match 对单行求值，表达式必须返回布尔。
func (f *RowFilter) Match(row core.CandidateRow, rctx *core.RunContext) (bool, error) {
	input := map[string]any{
		"row": map[string]any{
			"user_id":          row.UserID,
			"internal_user_id": row.InternalUserID,
			"recording_id":     row.RecordingID,
			"recording_mbid":   row.RecordingMBID,
		},
		"rctx": runContextInput(rctx),
	}

	out, _, err := f.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Apply 过滤整个行集，保留表达式为 true 的行。
func (f *RowFilter) Apply(rows []core.CandidateRow, rctx *core.RunContext) ([]core.CandidateRow, error) {
	out := make([]core.CandidateRow, 0, len(rows))
	for _, row := range rows {
		ok, err := f.Match(row, rctx)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func runContextInput(rctx *core.RunContext) map[string]any {
	if rctx == nil {
		return map[string]any{}
	}
	return map[string]any{
		"source": rctx.Source,
		"users":  rctx.Users,
		"params": rctx.Params,
	}
}
