package envconfig

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Redblueflame/env-config/internal/infra/confloader"
	"github.com/Redblueflame/env-config/internal/telemetry/logger"
	"github.com/Redblueflame/env-config/internal/telemetry/metric"
	"github.com/Redblueflame/env-config/pkg/schema"
)

// Decoder turns raw source content into a partial record keyed by field
// name. It matches the decoding half of koanf.Parser, so any koanf parser
// can be used.
type Decoder interface {
	Unmarshal([]byte) (map[string]any, error)
}

// DecoderProvider lets a configuration type choose its own decoder.
// WithDecoder takes precedence over it.
type DecoderProvider interface {
	ConfigDecoder() Decoder
}

// LookupFunc looks up one environment variable.
type LookupFunc func(key string) (string, bool)

// Option configures an assembly run.
type Option func(*options)

type options struct {
	envPrefix   string
	lookup      LookupFunc
	decoder     Decoder
	logger      *slog.Logger
	registerer  prometheus.Registerer
	constraints bool
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:      slog.Default(),
		constraints: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEnvPrefix sets the prefix of derived environment keys. A field named
// "port" is looked up as PREFIX + "PORT". Fields with an explicit env key
// are not prefixed.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithLookup replaces the process environment with a lookup function.
// It is called once per field before validation starts.
func WithLookup(fn LookupFunc) Option {
	return func(o *options) {
		o.lookup = fn
	}
}

// WithEnvironment replaces the process environment with a fixed map.
func WithEnvironment(env map[string]string) Option {
	snapshot := make(map[string]string, len(env))
	for k, v := range env {
		snapshot[k] = v
	}
	return WithLookup(func(key string) (string, bool) {
		v, ok := snapshot[key]
		return v, ok
	})
}

// WithDecoder sets the decoder, overriding the one implied by the file
// extension.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logger.Discard()
		}
		o.logger = l
	}
}

// WithRegisterer records assembly metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithoutConstraints skips `validate` struct tag checks in Load.
func WithoutConstraints() Option {
	return func(o *options) {
		o.constraints = false
	}
}

// decoderFor returns the configured decoder or the one matching path.
func (o *options) decoderFor(path string) Decoder {
	if o.decoder != nil {
		return o.decoder
	}
	return confloader.ParserFor(path)
}

func (o *options) envKey(f schema.Field) string {
	return EnvKey(f, o.envPrefix)
}

// EnvKey returns the environment variable a field is read from: its
// explicit key when set, otherwise prefix followed by the upper snake
// case name.
func EnvKey(f schema.Field, prefix string) string {
	if f.Env != "" {
		return f.Env
	}
	return schema.EnvKey(prefix, f.Name)
}

// recorder builds the metrics recorder, or returns nil when metrics are
// off or cannot be registered.
func (o *options) recorder() *metric.Recorder {
	if o.registerer == nil {
		return nil
	}
	r, err := metric.NewRecorder(o.registerer)
	if err != nil {
		o.logger.Warn("configuration metrics disabled", "error", err)
		return nil
	}
	return r
}
