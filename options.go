package quadgo

import (
	"log/slog"

	"github.com/hupe1980/quadgo/codec"
	"github.com/hupe1980/quadgo/ids"
)

type options struct {
	codec         codec.Codec
	idGen         ids.Generator
	logger        *Logger
	metrics       MetricsCollector
	defaultRadius float64
	maxDepth      int
}

// Option configures Open behavior.
type Option func(*options)

// WithCodec configures the codec used for node records.
//
// A store written with one codec must be reopened with the same codec.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithIDGenerator configures the node id generator.
// The default generates random UUIDs.
func WithIDGenerator(gen ids.Generator) Option {
	return func(o *options) {
		o.idGen = gen
	}
}

// WithDefaultRadius configures the radius used by Nearest.
// The default is DefaultRadius (100).
func WithDefaultRadius(radius float64) Option {
	return func(o *options) {
		o.defaultRadius = radius
	}
}

// WithMaxDepth bounds recursive descent as a stack-safety guard against
// pathological point clustering. The default is quadtree.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &quadgo.BasicMetricsCollector{}
//	qt, _ := quadgo.Open(ctx, store, boundary, 4, quadgo.WithMetricsCollector(metrics))
//	// ... use qt ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := quadgo.NewJSONLogger(slog.LevelInfo)
//	qt, _ := quadgo.Open(ctx, store, boundary, 4, quadgo.WithLogger(logger))
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
		metrics:       NoopMetricsCollector{},
		logger:        NoopLogger(),
		defaultRadius: DefaultRadius,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
