package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_ERROR", message, http.StatusBadRequest, details)
}

func NewMissingCredentials() error {
	return NewDomainError("MISSING_CREDENTIALS", "Email and password are required", http.StatusBadRequest, nil)
}

func NewInvalidEmail() error {
	return NewDomainError("INVALID_EMAIL", "Invalid email format", http.StatusBadRequest, nil)
}

// NewInvalidCredentials covers both unknown email and wrong password so a caller
// cannot probe which accounts exist.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized, nil)
}

func NewAccountDeactivated() error {
	return NewDomainError("ACCOUNT_DEACTIVATED", "Account is deactivated, please contact admin", http.StatusForbidden, nil)
}

func NewAuthRequired() error {
	return NewDomainError("AUTH_REQUIRED", "Authentication required", http.StatusUnauthorized, nil)
}

func NewTokenInvalid() error {
	return NewDomainError("TOKEN_INVALID", "Invalid or expired token", http.StatusUnauthorized, nil)
}

func NewInsufficientPermissions(requiredRole, userRole string) error {
	return NewDomainError("INSUFFICIENT_PERMISSIONS", "Admin access required", http.StatusForbidden, map[string]any{
		"requiredRole": requiredRole,
		"userRole":     userRole,
	})
}

func NewRoleNotAuthorized(requiredRoles []string, userRole string) error {
	return NewDomainError("ROLE_NOT_AUTHORIZED",
		fmt.Sprintf("Access denied. Required roles: %v", requiredRoles),
		http.StatusForbidden, map[string]any{
			"requiredRoles": requiredRoles,
			"userRole":      userRole,
		})
}

func NewDuplicateAccount() error {
	return NewDomainError("DUPLICATE_ACCOUNT", "An account with this email already exists", http.StatusConflict, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
