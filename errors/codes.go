package errors

// ErrorCode identifies an application error class in responses and logs.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	ErrorCode_SLACK_SIGNATURE_INVALID ErrorCode = 2000
	ErrorCode_UNSUPPORTED_ACTION      ErrorCode = 2001
	ErrorCode_UNKNOWN_INTENT          ErrorCode = 2002

	ErrorCode_INTEGRATION_SLACK_FAILED    ErrorCode = 3000
	ErrorCode_INTEGRATION_WEATHER_FAILED  ErrorCode = 3001
	ErrorCode_INTEGRATION_NLP_FAILED      ErrorCode = 3002
	ErrorCode_INTEGRATION_CALENDAR_FAILED ErrorCode = 3003
	ErrorCode_OAUTH_FAILED                ErrorCode = 3004

	ErrorCode_DB_QUERY_FAILED ErrorCode = 4000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                     "OK",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                   "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:             "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:             "INVALID_PAYLOAD",
	ErrorCode_SLACK_SIGNATURE_INVALID:     "SLACK_SIGNATURE_INVALID",
	ErrorCode_UNSUPPORTED_ACTION:          "UNSUPPORTED_ACTION",
	ErrorCode_UNKNOWN_INTENT:              "UNKNOWN_INTENT",
	ErrorCode_INTEGRATION_SLACK_FAILED:    "INTEGRATION_SLACK_FAILED",
	ErrorCode_INTEGRATION_WEATHER_FAILED:  "INTEGRATION_WEATHER_FAILED",
	ErrorCode_INTEGRATION_NLP_FAILED:      "INTEGRATION_NLP_FAILED",
	ErrorCode_INTEGRATION_CALENDAR_FAILED: "INTEGRATION_CALENDAR_FAILED",
	ErrorCode_OAUTH_FAILED:                "OAUTH_FAILED",
	ErrorCode_DB_QUERY_FAILED:             "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
