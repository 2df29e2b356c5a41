package roster

import (
	"errors"
	"fmt"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// 共通エラーコード（必要に応じて追加）
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeDuplicateKey    = "DUPLICATE_KEY"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnavailable     = "UNAVAILABLE"
	ErrCodeInternal        = "INTERNAL"
)

func NewInvalidArgumentError(msg string) error {
	return &DomainError{Code: ErrCodeInvalidArgument, Message: msg}
}

func NewDuplicateKeyError(msg string) error {
	return &DomainError{Code: ErrCodeDuplicateKey, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &DomainError{Code: ErrCodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &DomainError{Code: ErrCodeConflict, Message: msg}
}

func NewUnavailableError(msg string) error {
	return &DomainError{Code: ErrCodeUnavailable, Message: msg}
}

func NewInternalError(msg string) error {
	return &DomainError{Code: ErrCodeInternal, Message: msg}
}

func codeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

func toHTTPStatus(err error) int {
	switch codeOf(err) {
	case ErrCodeInvalidArgument:
		return 400
	case ErrCodeNotFound:
		return 404
	case ErrCodeDuplicateKey, ErrCodeConflict:
		return 409
	case ErrCodeUnavailable:
		return 503
	default:
		return 500
	}
}

// トランスポート起因のエラーを UNAVAILABLE に包む。ドメインエラーは素通し。
func wrapUnavailable(op string, err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return err
	}
	return NewUnavailableError(fmt.Sprintf("%s: %v", op, err))
}
