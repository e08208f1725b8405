package constant

import (
	"errors"
	"fmt"
)

// Error 错误接口
type Error interface {
	error
	Code() int
	Message() string
	WithData(data interface{}) Error
}

// CustomError 自定义错误实现
type CustomError struct {
	code    int
	message string
	data    interface{}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

func (e *CustomError) WithData(data interface{}) Error {
	e.data = data
	return e
}

// NewError 创建错误
func NewError(code int) Error {
	if info, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: info.CN}
	}
	return &CustomError{code: code, message: "未知错误"}
}

// NewErrorf 创建带自定义描述的错误
func NewErrorf(code int, format string, args ...interface{}) Error {
	return &CustomError{code: code, message: fmt.Sprintf(format, args...)}
}

// CodeOf 提取业务错误码；非业务错误统一归为系统错误
func CodeOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return CodeSystemError
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code int) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
