package system

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the CLI's diagnostic logger. It writes to w (stderr in
// practice) so log lines never interleave with rendered command output.
// Only warnings and errors are emitted unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// RequestFields returns key/value pairs describing an outbound API request,
// suitable for SugaredLogger.Debugw and friends.
func RequestFields(method, url, requestID string, attempt int) []interface{} {
	return []interface{}{"method", method, "url", url, "requestID", requestID, "attempt", attempt}
}
