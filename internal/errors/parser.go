package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a store error translated into a code and display message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw store error into a user-facing code and message.
// Sensitive detail stays out of the message; the caller logs the raw error.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected server error occurred.",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Unique constraint violations (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "username") {
			return ErrorInfo{Code: AuthUsernameExists, Message: "Username already exists."}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists."}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The data store is unavailable. Please try again later.",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An unexpected server error occurred.",
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "item":
		return "No item found."
	case "user":
		return "No user found or wrong password."
	case "transaction":
		return "No transactions found."
	default:
		return "Requested record was not found."
	}
}
