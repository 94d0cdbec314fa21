package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Candidate 错误：EMPTY_RESULT（候选集物化后为空）
//   - Rank 错误：EMPTY_RESULT（模型未产出任何推荐）
//   - Model 错误：NOT_FOUND（元数据中无可用模型）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "EMPTY_RESULT", "NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "candidate", "rank", "model"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（支持 %w 包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeEmptyResult   = "EMPTY_RESULT"   // 预期至少一行，结果为空
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部/引擎错误
)

// 模块名称常量
const (
	ModuleCandidate = "candidate" // 候选集模块
	ModuleRank      = "rank"      // 打分/归一化模块
	ModuleModel     = "model"     // 模型访问模块
	ModuleCatalog   = "catalog"   // 曲目目录模块
	ModuleStore     = "store"     // 存储模块
)

// 预定义错误。
// 两类 EMPTY_RESULT 语义不同：候选集为空 vs 模型对非空输入产出为空，
// 调用方据此决定是终止整个 run 还是跳过该候选源。
var (
	// ErrEmptyCandidateSet 表示候选集过滤后没有任何 (user, recording) 对
	ErrEmptyCandidateSet = NewDomainError(ModuleCandidate, ErrorCodeEmptyResult, "candidate: empty candidate set")

	// ErrNoRecommendations 表示模型对非空候选集没有产出任何打分行
	ErrNoRecommendations = NewDomainError(ModuleRank, ErrorCodeEmptyResult, "rank: no recommendations generated")

	// ErrModelNotFound 表示元数据中没有可供选择的模型
	ErrModelNotFound = NewDomainError(ModuleModel, ErrorCodeNotFound, "model: no trained model found")

	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// 通用错误检查函数

// IsEmptyResult 检查错误是否为 EMPTY_RESULT
func IsEmptyResult(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyResult
	}
	return false
}

// IsModelNotFound 检查错误是否为模型缺失
func IsModelNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleModel && domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsStoreNotFound 检查错误是否为 key 不存在
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
	}
	return false
}
