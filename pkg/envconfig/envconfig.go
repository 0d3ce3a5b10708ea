package envconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Redblueflame/env-config/internal/infra/confloader"
	"github.com/Redblueflame/env-config/internal/telemetry/logger"
	"github.com/Redblueflame/env-config/internal/telemetry/metric"
	"github.com/Redblueflame/env-config/pkg/schema"
)

// Load assembles a *T from the file at path and the environment.
// An empty path means there is no file and only the environment is used.
func Load[T any](path string, opts ...Option) (*T, error) {
	return load[T](source{path: path}, opts)
}

// LoadBytes is like Load but decodes data instead of reading a file.
func LoadBytes[T any](data []byte, opts ...Option) (*T, error) {
	return load[T](source{data: data, inline: true}, opts)
}

// Assemble assembles a Record for desc from the file at path and the
// environment. An empty path means there is no file.
func Assemble(desc *schema.Descriptor, path string, opts ...Option) (*Record, error) {
	return assemble(desc, source{path: path}, newOptions(opts))
}

// AssembleBytes is like Assemble but decodes data instead of reading a file.
func AssembleBytes(desc *schema.Descriptor, data []byte, opts ...Option) (*Record, error) {
	return assemble(desc, source{data: data, inline: true}, newOptions(opts))
}

// source is either a file path or inline content.
type source struct {
	path   string
	data   []byte
	inline bool
}

func load[T any](src source, opts []Option) (*T, error) {
	o := newOptions(opts)

	desc, err := schema.Describe[T]()
	if err != nil {
		o.recorder().ObserveLoad(metric.OutcomeSchemaError, 0)
		return nil, err
	}

	if o.decoder == nil {
		if p, ok := any(new(T)).(DecoderProvider); ok {
			o.decoder = p.ConfigDecoder()
		}
	}

	r := newRun(desc, o)
	rec, err := r.assemble(src)
	if err != nil {
		r.finish(err)
		return nil, err
	}

	out := bind[T](rec)
	if o.constraints {
		if err := r.checkConstraints(out); err != nil {
			r.finish(err)
			return nil, err
		}
	}

	r.finish(nil)
	return out, nil
}

func assemble(desc *schema.Descriptor, src source, o *options) (*Record, error) {
	if desc == nil {
		return nil, &schema.DefinitionError{Err: schema.ErrEmptySchema}
	}
	r := newRun(desc, o)
	rec, err := r.assemble(src)
	r.finish(err)
	return rec, err
}

// run is the state of one assembly call.
type run struct {
	desc    *schema.Descriptor
	opts    *options
	log     *slog.Logger
	metrics *metric.Recorder
	keys    []string
	start   time.Time
}

func newRun(desc *schema.Descriptor, o *options) *run {
	keys := make([]string, desc.Len())
	for i := range keys {
		keys[i] = o.envKey(desc.At(i))
	}
	return &run{
		desc:    desc,
		opts:    o,
		log:     o.logger.With("run_id", ulid.Make().String()),
		metrics: o.recorder(),
		keys:    keys,
		start:   time.Now(),
	}
}

func (r *run) assemble(src source) (*Record, error) {
	partial, err := r.loadPartial(src)
	if err != nil {
		return nil, err
	}

	d := newDraft(r.desc)
	if err := d.seed(partial, src.path); err != nil {
		return nil, err
	}

	env, err := r.snapshotEnv()
	if err != nil {
		return nil, err
	}

	typeErrs := d.overlay(env, r.keys)
	missing := d.missing()
	if len(typeErrs) > 0 || len(missing) > 0 {
		return nil, newAssemblyError(r.desc, r.keys, typeErrs, missing, nil)
	}

	rec := d.finalize()
	r.logEntries(rec)
	return rec, nil
}

// loadPartial reads and decodes the source. Blank content is an empty
// partial record whatever the decoder.
func (r *run) loadPartial(src source) (map[string]any, error) {
	data := src.data
	if !src.inline {
		if src.path == "" {
			return nil, nil
		}
		var err error
		data, err = confloader.ReadSource(src.path)
		if err != nil {
			return nil, &ReadError{Path: src.path, Err: err}
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	partial, err := r.opts.decoderFor(src.path).Unmarshal(data)
	if err != nil {
		return nil, &ParsingError{Path: src.path, Err: err}
	}
	return partial, nil
}

// snapshotEnv reads every override once, before validation starts.
func (r *run) snapshotEnv() (map[string]string, error) {
	env := make(map[string]string, len(r.keys))

	if r.opts.lookup != nil {
		for _, key := range r.keys {
			if v, ok := r.opts.lookup(key); ok {
				env[key] = v
			}
		}
		return env, nil
	}

	all, err := confloader.Snapshot("")
	if err != nil {
		return nil, &ReadError{Path: "environment", Err: err}
	}
	for _, key := range r.keys {
		if v, ok := all[key]; ok {
			env[key] = v
		}
	}
	return env, nil
}

func (r *run) logEntries(rec *Record) {
	if !r.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, e := range rec.entries {
		if !e.Present {
			r.log.Debug("configuration field absent", "field", e.Field.Name)
			continue
		}
		r.log.Debug("configuration field resolved",
			"field", e.Field.Name,
			"source", e.Source.String(),
			"value", displayValue(e),
		)
	}
}

// finish logs and records the outcome of the run.
func (r *run) finish(err error) {
	elapsed := time.Since(r.start)
	outcome := outcomeOf(err)
	r.metrics.ObserveLoad(outcome, elapsed)

	if err == nil {
		r.log.Debug("configuration assembled",
			"fields", r.desc.Len(),
			"duration", elapsed,
		)
		return
	}

	var invalid *AssemblyError
	if errors.As(err, &invalid) {
		for _, p := range invalid.problems {
			r.metrics.ObserveProblem(p.Field, p.Category)
		}
	}
	r.log.Debug("configuration rejected",
		"outcome", outcome,
		"error", err,
		"duration", elapsed,
	)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metric.OutcomeOK
	case errors.Is(err, ErrRead):
		return metric.OutcomeReadError
	case errors.Is(err, ErrParsing):
		return metric.OutcomeParseError
	default:
		return metric.OutcomeInvalid
	}
}

// displayValue renders a value for logs and reports, masking secrets.
func displayValue(e Entry) string {
	if !e.Present {
		return ""
	}
	s := fmt.Sprint(e.Value)
	if e.Field.Secret {
		return logger.Mask(s)
	}
	return s
}
