package kdgo

import (
	"log/slog"

	"github.com/hupe1980/kdgo/distance"
)

type options struct {
	bucketSize int
	metric     distance.Metric
	logger     *Logger
}

// Option configures KDTree construction behavior.
type Option func(*options)

// WithBucketSize configures the bucket-size threshold at which a leaf is
// split. A good starting point is 32, or roughly twice the K of a typical
// KNN query; higher-dimensional data benefits from larger buckets.
func WithBucketSize(size int) Option {
	return func(o *options) {
		o.bucketSize = size
	}
}

// WithMetric configures the distance metric used to order queries.
// The default is distance.MetricSquaredL2.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithLogger configures structured logging for split maintenance.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		bucketSize: DefaultBucketSize,
		metric:     distance.MetricSquaredL2,
		logger:     NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
