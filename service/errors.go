package service

import "errors"

// ErrNotFound 记录、附件或设置键不存在
var ErrNotFound = errors.New("not found")

// ValidationError 请求数据校验失败，映射为 HTTP 400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError 构造校验错误
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// UpstreamError 外部扫描端点不可达或返回异常，映射为 HTTP 502
// Raw 保留上游原始返回，便于排查
type UpstreamError struct {
	Message string
	Raw     string
}

func (e *UpstreamError) Error() string { return e.Message }

// ExtractionError 模型回复无法提取出可用的支出数据
// Suggested 非空表示字段已归一化但缺少日期或正金额，映射为 HTTP 422；
// 为空表示回复中根本没有 JSON 对象，映射为 HTTP 502
type ExtractionError struct {
	Message   string
	Raw       string
	Suggested map[string]interface{}
}

func (e *ExtractionError) Error() string { return e.Message }
