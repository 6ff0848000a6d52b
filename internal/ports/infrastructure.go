package ports

import "context"

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context, backend string)
	RecordCacheMiss(ctx context.Context, backend string)
	RecordFetch(ctx context.Context, endpoint string, success bool)
	RecordRetry(ctx context.Context, endpoint string)
	RecordEvaluation(ctx context.Context, location string, meetsCriteria bool)
	RecordNotification(ctx context.Context, sent bool)
}
