package logger

import (
	"errors"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Trace log defaults
const (
	DefaultTracePath   = "logs/http_trace.jsonl"
	DefaultTraceSource = "FakeStoreAPI"
	unknownProxyError  = "Unknown proxy error"
)

// TraceLogConfig configures the upstream trace log
type TraceLogConfig struct {
	Path   string
	Source string
}

// TraceLog appends one JSON line per upstream aggregation to a file.
// Success lines carry ts, method, source, status and duration_ms; failure
// lines carry ts and error.
type TraceLog struct {
	logger *zap.Logger
	source string
	file   *os.File
	once   sync.Once
}

// NewTraceLog opens (or creates) the trace file. An empty path disables
// the trace log.
func NewTraceLog(cfg TraceLogConfig, opts ...zap.Option) (*TraceLog, error) {
	if cfg.Path == "" {
		return &TraceLog{logger: zap.NewNop(), source: sourceOrDefault(cfg.Source)}, nil
	}
	file, err := openAppend(cfg.Path)
	if err != nil {
		return nil, err
	}
	t := NewTraceLogWithWriter(zapcore.AddSync(file), cfg.Source, opts...)
	t.file = file
	return t, nil
}

// NewTraceLogWithWriter builds a trace log on top of an arbitrary writer
func NewTraceLogWithWriter(w zapcore.WriteSyncer, source string, opts ...zap.Option) *TraceLog {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       zapcore.OmitKey,
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     utcMillisTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	})
	core := zapcore.NewCore(encoder, w, zapcore.DebugLevel)
	return &TraceLog{
		logger: zap.New(core, opts...),
		source: sourceOrDefault(source),
	}
}

// RecordSuccess appends a success line for a completed upstream exchange
func (t *TraceLog) RecordSuccess(method string, status int, duration time.Duration) {
	t.logger.Info("",
		zap.String("method", method),
		zap.String("source", t.source),
		zap.Int("status", status),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)
}

// RecordFailure appends a failure line with the error message
func (t *TraceLog) RecordFailure(err error) {
	msg := unknownProxyError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	t.logger.Info("", zap.String("error", msg))
}

// Close flushes and closes the underlying file
func (t *TraceLog) Close() error {
	var err error
	t.once.Do(func() {
		syncErr := t.logger.Sync()
		if t.file == nil {
			return
		}
		err = errors.Join(syncErr, t.file.Close())
	})
	return err
}

func sourceOrDefault(source string) string {
	if source == "" {
		return DefaultTraceSource
	}
	return source
}

func utcMillisTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}
