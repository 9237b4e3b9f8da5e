package diag

import (
	"fmt"
	"go/token"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects how diagnostics are encoded.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat validates a -diag-format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown diagnostic format: %s", s)
	}
}

// Reporter collects diagnostics and writes them as they arrive. The text
// format prints "level: file:line:col: message" lines, the json format one
// object per line with the position in a "pos" field.
type Reporter struct {
	log      *zap.Logger
	format   Format
	fset     *token.FileSet
	errCount int
}

// NewReporter builds a reporter writing to w in the given format.
func NewReporter(w io.Writer, format Format) *Reporter {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		ConsoleSeparator: ": ",
	}
	var enc zapcore.Encoder
	if format == JSON {
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		format = Text
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	return &Reporter{log: zap.New(core), format: format}
}

// SetFileSet enables position rendering for Error and Warn.
func (r *Reporter) SetFileSet(fset *token.FileSet) {
	r.fset = fset
}

// Errorf records an error.
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.errCount++
	r.log.Error(fmt.Sprintf(format, args...))
}

// Error records an error attached to a source position.
func (r *Reporter) Error(pos token.Pos, msg string) {
	r.errCount++
	msg, fields := r.locate(pos, msg)
	r.log.Error(msg, fields...)
}

// Warnf records a warning. Warnings never fail a run.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	r.log.Warn(fmt.Sprintf(format, args...))
}

// Warn records a warning attached to a source position.
func (r *Reporter) Warn(pos token.Pos, msg string) {
	msg, fields := r.locate(pos, msg)
	r.log.Warn(msg, fields...)
}

// Infof records an informational note.
func (r *Reporter) Infof(format string, args ...interface{}) {
	r.log.Info(fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error was recorded.
func (r *Reporter) HasErrors() bool {
	return r.errCount > 0
}

// ErrorCount returns the number of recorded errors.
func (r *Reporter) ErrorCount() int {
	return r.errCount
}

// Sync flushes buffered output.
func (r *Reporter) Sync() error {
	return r.log.Sync()
}

func (r *Reporter) locate(pos token.Pos, msg string) (string, []zap.Field) {
	if r.fset == nil || !pos.IsValid() {
		return msg, nil
	}
	where := r.fset.Position(pos).String()
	if r.format == JSON {
		return msg, []zap.Field{zap.String("pos", where)}
	}
	return where + ": " + msg, nil
}
