package usecase

import (
	"errors"
	"fmt"
)

// ErrKind mengelompokkan kegagalan domain supaya handler bisa map ke
// HTTP status yang tepat tanpa string matching.
type ErrKind string

const (
	ErrKindValidation ErrKind = "validation"
	ErrKindForbidden  ErrKind = "forbidden"
	ErrKindImmutable  ErrKind = "immutable"
	ErrKindConflict   ErrKind = "conflict"
	ErrKindNotFound   ErrKind = "not_found"
)

// DomainError adalah hasil gagal yang expected (bukan crash). Semua
// kegagalan negosiasi keluar lewat tipe ini.
type DomainError struct {
	Kind    ErrKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newDomainError(kind ErrKind, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func newValidationError(format string, args ...any) *DomainError {
	return newDomainError(ErrKindValidation, format, args...)
}

func newForbiddenError(format string, args ...any) *DomainError {
	return newDomainError(ErrKindForbidden, format, args...)
}

func newImmutableError(format string, args ...any) *DomainError {
	return newDomainError(ErrKindImmutable, format, args...)
}

func newConflictError(format string, args ...any) *DomainError {
	return newDomainError(ErrKindConflict, format, args...)
}

func newNotFoundError(format string, args ...any) *DomainError {
	return newDomainError(ErrKindNotFound, format, args...)
}

// KindOf returns the domain error kind, or "" for unexpected errors.
func KindOf(err error) ErrKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}
