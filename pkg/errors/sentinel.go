package errors

import (
	"errors"
	"fmt"
)

// token 包使用的哨兵错误。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator is not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrNotRefreshToken              = errors.New("token is not a refresh token")
)

// sms 包使用的哨兵错误。
var (
	ErrSignNameRequired     = errors.New("sms sign name is required")
	ErrTemplateCodeRequired = errors.New("sms template code is required")
	ErrPhonesListEmpty      = errors.New("phones list is empty")
)

// SkipMessageError 表示消息应当跳过（ack 不重试），比如幂等检查命中。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessage 判断错误是否为 SkipMessageError。
func IsSkipMessage(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}

// NonRetryableError 表示配置类错误，重试也不会成功（如短信模板配置错误）。
type NonRetryableError struct {
	Code    string
	Message string
	Hint    string
}

func (e *NonRetryableError) Error() string {
	return fmt.Sprintf("non-retryable: %s - %s (%s)", e.Code, e.Message, e.Hint)
}

// NewNonRetryableError 构造 NonRetryableError。
func NewNonRetryableError(code, message, hint string) *NonRetryableError {
	return &NonRetryableError{Code: code, Message: message, Hint: hint}
}
