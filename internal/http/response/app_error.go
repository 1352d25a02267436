package response

import "errors"

// AppError 携带业务码的错误，HTTP 边界据此生成响应
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误；err 本身已是 AppError 时沿用其业务码与提示
func WrapError(code int, message string, err error) *AppError {
	if existing, ok := AsAppError(err); ok {
		return existing
	}
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err == nil || !errors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}
