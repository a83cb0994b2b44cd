package response

// AppError 统一错误包装
type AppError struct {
	Code    int
	Message string
	Details interface{}
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

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails 附加返回给客户端的明细
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}
