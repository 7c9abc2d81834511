package errors

import "strconv"

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED       ErrorCode = 0
	ErrorCode_HTTP_OK           ErrorCode = 200
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002

	// Interview
	ErrorCode_BOT_NOT_FOUND             ErrorCode = 3001
	ErrorCode_SESSION_NOT_FOUND         ErrorCode = 3002
	ErrorCode_SESSION_EXPIRED           ErrorCode = 3003
	ErrorCode_SESSION_ALREADY_COMPLETED ErrorCode = 3004
	ErrorCode_SESSION_FULL              ErrorCode = 3005
	ErrorCode_PARTICIPANT_NOT_FOUND     ErrorCode = 3006
	ErrorCode_PARTICIPANT_COMPLETED     ErrorCode = 3007
	ErrorCode_INVALID_CONFIG            ErrorCode = 3008
	ErrorCode_SEQUENCE_MISMATCH         ErrorCode = 3009
	ErrorCode_ANALYSIS_UNAVAILABLE      ErrorCode = 3010

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:               "UNSPECIFIED",
	ErrorCode_HTTP_OK:                   "HTTP_OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_BOT_NOT_FOUND:             "BOT_NOT_FOUND",
	ErrorCode_SESSION_NOT_FOUND:         "SESSION_NOT_FOUND",
	ErrorCode_SESSION_EXPIRED:           "SESSION_EXPIRED",
	ErrorCode_SESSION_ALREADY_COMPLETED: "SESSION_ALREADY_COMPLETED",
	ErrorCode_SESSION_FULL:              "SESSION_FULL",
	ErrorCode_PARTICIPANT_NOT_FOUND:     "PARTICIPANT_NOT_FOUND",
	ErrorCode_PARTICIPANT_COMPLETED:     "PARTICIPANT_COMPLETED",
	ErrorCode_INVALID_CONFIG:            "INVALID_CONFIG",
	ErrorCode_SEQUENCE_MISMATCH:         "SEQUENCE_MISMATCH",
	ErrorCode_ANALYSIS_UNAVAILABLE:      "ANALYSIS_UNAVAILABLE",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
