package errors

import "net/http"

func define(httpCode int, errorCode, message string) *BaseError {
	return NewBaseError(httpCode, errorCode, message, "")
}

// Upload
var (
	ErrNoFileUploaded = define(http.StatusBadRequest, "NO_FILE_UPLOADED", "No file uploaded")
	ErrFileTooLarge   = define(http.StatusBadRequest, "FILE_TOO_LARGE", "File too large")
	ErrInvalidUpload  = define(http.StatusBadRequest, "INVALID_UPLOAD", "Invalid multipart upload")
)

// Classification
var (
	ErrClassificationFailed = define(http.StatusInternalServerError, "CLASSIFICATION_FAILED", "Classification failed")
)

// Session tokens
var (
	ErrTokenInvalid = define(http.StatusUnauthorized, "TOKEN_INVALID", "Invalid or expired token")
	ErrUnauthorized = define(http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is missing")
)

// Google sign-in. Error codes are lowercased into the failure redirect.
var (
	ErrOAuthFailed       = define(http.StatusUnauthorized, "OAUTH_FAILED", "Google sign-in failed")
	ErrOAuthStateInvalid = define(http.StatusBadRequest, "OAUTH_STATE_INVALID", "Invalid or expired sign-in state")
	ErrOAuthCodeMissing  = define(http.StatusBadRequest, "OAUTH_CODE_MISSING", "Authorization code is required")
)

var (
	ErrUserNotFound  = define(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrInternalError = define(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
)
