package errors

import "net/http"

// ErrorCode identifies a specific failure category.  Codes are grouped by
// module prefix so that logs and metrics can be sliced per subsystem.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeDatabaseError      ErrorCode = "COMMON_007"
	ErrCodeCacheError         ErrorCode = "COMMON_008"
	ErrCodeExternalService    ErrorCode = "COMMON_009"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_010"
	ErrCodeNotImplemented     ErrorCode = "COMMON_011"
	CodeUnknown               ErrorCode = "COMMON_000"
	CodeOK                    ErrorCode = "OK"
)

// Case corpus error codes.
const (
	ErrCodeCaseNotFound      ErrorCode = "CASE_001"
	ErrCodeCorpusEmpty       ErrorCode = "CASE_002"
	ErrCodeCorpusLoadFailed  ErrorCode = "CASE_003"
	ErrCodeCaseParseFailed   ErrorCode = "CASE_004"
	ErrCodeCaseAlreadyExists ErrorCode = "CASE_005"
)

// Retrieval error codes.
const (
	ErrCodeVectorSearchFailed ErrorCode = "RETR_001"
	ErrCodeEmbeddingFailed    ErrorCode = "RETR_002"
	ErrCodeIndexNotReady      ErrorCode = "RETR_003"
	ErrCodeTopKInvalid        ErrorCode = "RETR_004"
	ErrCodeQueryTooShort      ErrorCode = "RETR_005"
)

// Ethics / audit error codes.
const (
	ErrCodeAuditPublishFailed ErrorCode = "ETH_001"
)

// Ingestion error codes.
const (
	ErrCodeSourceUnreadable ErrorCode = "ING_001"
	ErrCodeSourceMalformed  ErrorCode = "ING_002"
	ErrCodeObjectStoreError ErrorCode = "ING_003"
)

// Aliases used by generic layers.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
)

// HTTPStatusForCode maps an ErrorCode to the HTTP status the API layer should
// respond with.  Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeTopKInvalid, ErrCodeQueryTooShort, ErrCodeSourceMalformed, ErrCodeCaseParseFailed:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeCaseNotFound:
		return http.StatusNotFound
	case ErrCodeCaseAlreadyExists:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceUnavailable, ErrCodeIndexNotReady:
		return http.StatusServiceUnavailable
	case ErrCodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code maps to a 4xx status.
func IsClientError(code ErrorCode) bool {
	s := HTTPStatusForCode(code)
	return s >= 400 && s < 500
}
