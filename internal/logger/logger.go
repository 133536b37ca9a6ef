package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldReportID is the structured log field key for a stored report.
	FieldReportID = "report_id"
	// FieldFile is the structured log field key for an uploaded file name.
	FieldFile = "file"
)

// New builds the process logger. json selects the JSON encoder instead of the
// console one; debug lowers the level to Debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	return build(json, debug, "stdout")
}

// NewStderr is New with log lines sent to stderr, leaving stdout for command
// output.
func NewStderr(json bool, debug bool) (*zap.Logger, error) {
	return build(json, debug, "stderr")
}

func build(json, debug bool, output string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// maxRoleLength caps the logged target role, which is free-form user input.
const maxRoleLength = 64

// RequestFields returns the fields describing one scoring request. Blank
// values are omitted.
func RequestFields(file, targetRole string, hasJD bool) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if v := strings.TrimSpace(file); v != "" {
		fields = append(fields, zap.String(FieldFile, v))
	}
	if v := Truncate(targetRole, maxRoleLength); v != "" {
		fields = append(fields, zap.String("target_role", v))
	}
	if hasJD {
		fields = append(fields, zap.Bool("has_jd", true))
	}
	return fields
}

// Truncate shortens s to limit runes, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
