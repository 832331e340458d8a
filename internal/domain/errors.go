package domain

import (
	"errors"
	"fmt"
)

// FormatError 表示某个位置的 8 字节前瞻不匹配任何已知签名，
// 或某个扫描器的格式头校验失败（坏的 JPEG/PNG magic）。
// 整个文件的解析随之失败，不做重试或跳过。
type FormatError struct {
	Path   string
	Offset int64
	Detail string
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("格式不可识别：%q 偏移 %d：%s", e.Path, e.Offset, e.Detail)
	}
	return fmt.Sprintf("格式不可识别：偏移 %d：%s", e.Offset, e.Detail)
}

// IsFormat 判断 err 是否为 FormatError。
func IsFormat(err error) bool {
	var e *FormatError
	return errors.As(err, &e)
}

// TruncatedInputError 表示定长读取没有读满（扫描或提取过程中遇到文件提前结束）。
// 对当前操作不可恢复，不做重试。
type TruncatedInputError struct {
	Path   string
	Offset int64
	Detail string
	Err    error
}

func (e *TruncatedInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("输入被截断：%q 偏移 %d：%s", e.Path, e.Offset, e.Detail)
	}
	return fmt.Sprintf("输入被截断：偏移 %d：%s", e.Offset, e.Detail)
}

func (e *TruncatedInputError) Unwrap() error { return e.Err }

// IsTruncated 判断 err 是否为 TruncatedInputError。
func IsTruncated(err error) bool {
	var e *TruncatedInputError
	return errors.As(err, &e)
}

// ElementNotFoundError 表示一个已成功解析的容器里没有请求的元素类型。
// 与 FormatError 不同：文件本身是合法容器。
type ElementNotFoundError struct {
	Kind Kind
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("容器中不存在类型为 %s 的元素", e.Kind)
}

// IsElementNotFound 判断 err 是否为 ElementNotFoundError。
func IsElementNotFound(err error) bool {
	var e *ElementNotFoundError
	return errors.As(err, &e)
}

// SourceMissingError 表示容器背后的源文件已不存在（例如在解析与提取之间被删除）。
type SourceMissingError struct {
	Path string
	Err  error
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("源文件不存在：%q", e.Path)
}

func (e *SourceMissingError) Unwrap() error { return e.Err }

// IsSourceMissing 判断 err 是否为 SourceMissingError。
func IsSourceMissing(err error) bool {
	var e *SourceMissingError
	return errors.As(err, &e)
}

// ErrCode 从 err 中提取稳定的 error_code；未知错误返回空串（由上层决定兜底码）。
func ErrCode(err error) string {
	switch {
	case IsFormat(err):
		return ErrCodeFormatInvalid
	case IsTruncated(err):
		return ErrCodeTruncated
	case IsElementNotFound(err):
		return ErrCodeElementNotFound
	case IsSourceMissing(err):
		return ErrCodeSourceMissing
	default:
		return ""
	}
}
