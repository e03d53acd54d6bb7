package common

import (
	"fmt"

	"github.com/devlights/gomy/output"
)

// LogLevel is a bitmask so a single call site can be gated by more than one
// category at once (e.g. DEBUGGING|RDB_OP_FUNC_CALL).
type LogLevel int32

const (
	DEBUG_INFO_DETAIL LogLevel = 1 << iota
	DEBUG_INFO
	RDB_OP_FUNC_CALL
	DEBUGGING
	INFO
	WARN
	ERROR
	FATAL
)

// LogLevelSetting is the bitmask of levels currently enabled. Zero value
// disables all logging, which is the right default for a library.
var LogLevelSetting LogLevel = 0

// GlPrintf prints fmtStr formatted with a if logLevel intersects the
// currently enabled LogLevelSetting bitmask, otherwise it is a no-op.
func GlPrintf(logLevel LogLevel, fmtStr string, a ...interface{}) {
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStr, a...)
	}
}

// GlPrintln labels and prints v unconditionally through gomy's formatted
// stdout writer, regardless of LogLevelSetting. The lock manager does not
// call it: denied requests and detected cycles are not logged.
func GlPrintln(label string, v ...interface{}) {
	output.Stdoutl(label, v...)
}
