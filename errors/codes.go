package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1003
	ErrorCode_DEADLINE_EXCEEDED ErrorCode = 1004

	// Pipeline
	ErrorCode_SCRIPT_GENERATION_FAILED ErrorCode = 2000
	ErrorCode_VIDEO_ASSEMBLY_FAILED    ErrorCode = 2001
	ErrorCode_NO_USABLE_SEGMENTS       ErrorCode = 2002
	ErrorCode_RUN_NOT_FOUND            ErrorCode = 2003
	ErrorCode_AUTOPILOT_FAILED         ErrorCode = 2004
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_DEADLINE_EXCEEDED:        "DEADLINE_EXCEEDED",
	ErrorCode_SCRIPT_GENERATION_FAILED: "SCRIPT_GENERATION_FAILED",
	ErrorCode_VIDEO_ASSEMBLY_FAILED:    "VIDEO_ASSEMBLY_FAILED",
	ErrorCode_NO_USABLE_SEGMENTS:       "NO_USABLE_SEGMENTS",
	ErrorCode_RUN_NOT_FOUND:            "RUN_NOT_FOUND",
	ErrorCode_AUTOPILOT_FAILED:         "AUTOPILOT_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
