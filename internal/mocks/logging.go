package mocks

import "github.com/stretchr/testify/mock"

// maxLogFields covers the widest field list logged anywhere in the app.
const maxLogFields = 8

// AllowLogging registers optional expectations for every log level and field count,
// for tests that don't assert on log output.
func AllowLogging(l *Logger) *Logger {
	for n := 0; n <= maxLogFields; n++ {
		fields := make([]interface{}, n)
		for i := range fields {
			fields[i] = mock.Anything
		}
		l.EXPECT().Debug(mock.Anything, fields...).Maybe()
		l.EXPECT().Info(mock.Anything, fields...).Maybe()
		l.EXPECT().Warn(mock.Anything, fields...).Maybe()
		l.EXPECT().Error(mock.Anything, fields...).Maybe()
	}
	return l
}

// AllowMetrics registers optional expectations for every collector method.
func AllowMetrics(m *MetricsCollector) *MetricsCollector {
	m.EXPECT().RecordCacheHit(mock.Anything, mock.Anything).Maybe()
	m.EXPECT().RecordCacheMiss(mock.Anything, mock.Anything).Maybe()
	m.EXPECT().RecordFetch(mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.EXPECT().RecordRetry(mock.Anything, mock.Anything).Maybe()
	m.EXPECT().RecordEvaluation(mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.EXPECT().RecordNotification(mock.Anything, mock.Anything).Maybe()
	return m
}
