package ctxutil

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(Default(ctx), traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// Logger returns log annotated with the request and trace ids carried by ctx.
func Logger(ctx context.Context, log *logger.Logger) *logger.Logger {
	td := GetTraceData(ctx)
	if td == nil || log == nil {
		return log
	}
	kv := make([]interface{}, 0, 4)
	if td.TraceID != "" {
		kv = append(kv, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		kv = append(kv, "request_id", td.RequestID)
	}
	if len(kv) == 0 {
		return log
	}
	return log.With(kv...)
}
