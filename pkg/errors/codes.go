package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.  Codes are
// grouped by module prefix: COMMON_ (cross-cutting), FC_ (forecast engine),
// PRJ_ (projects and tracking), RPT_ (reporting), NOTIF_ (notification).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Forecast engine error codes.
const (
	ErrCodeForecastInvalidMethod ErrorCode = "FC_001"
	ErrCodeForecastInvalidPeriod ErrorCode = "FC_002"
	ErrCodeBudgetNotFound        ErrorCode = "FC_003"
)

// Project and tracking error codes.
const (
	ErrCodeProjectNotFound ErrorCode = "PRJ_001"
	ErrCodePermitNotFound  ErrorCode = "PRJ_002"
	ErrCodeBuyoutNotFound  ErrorCode = "PRJ_003"
	ErrCodeUnknownRole     ErrorCode = "PRJ_004"
)

// Reporting error codes.
const (
	ErrCodeReportNotFound     ErrorCode = "RPT_001"
	ErrCodeReportBuildFailed  ErrorCode = "RPT_002"
	ErrCodeReportExportFailed ErrorCode = "RPT_003"
)

// Notification error codes.
const (
	ErrCodeMailDeliveryFailed ErrorCode = "NOTIF_001"
	ErrCodeMailNoRecipients   ErrorCode = "NOTIF_002"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusServiceUnavailable,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeForecastInvalidMethod: http.StatusBadRequest,
	ErrCodeForecastInvalidPeriod: http.StatusBadRequest,
	ErrCodeBudgetNotFound:        http.StatusNotFound,

	ErrCodeProjectNotFound: http.StatusNotFound,
	ErrCodePermitNotFound:  http.StatusNotFound,
	ErrCodeBuyoutNotFound:  http.StatusNotFound,
	ErrCodeUnknownRole:     http.StatusBadRequest,

	ErrCodeReportNotFound:     http.StatusNotFound,
	ErrCodeReportBuildFailed:  http.StatusInternalServerError,
	ErrCodeReportExportFailed: http.StatusInternalServerError,

	ErrCodeMailDeliveryFailed: http.StatusBadGateway,
	ErrCodeMailNoRecipients:   http.StatusBadRequest,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
// Unknown codes map to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the code corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
