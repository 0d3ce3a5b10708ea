package envconfig

import "github.com/Redblueflame/env-config/pkg/schema"

// Source tells where a field value came from.
type Source uint8

// Value sources.
const (
	SourceNone Source = iota
	SourceFile
	SourceEnv
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Entry is one finalized field.
type Entry struct {
	Field schema.Field
	// Value is the canonical value (string, int64, uint64, float64, bool
	// or time.Duration), nil when the field is absent.
	Value   any
	Present bool
	Source  Source
}

// Record is the finalized result of an assembly run. Required fields are
// always present; optional fields are either present or explicitly absent.
type Record struct {
	desc    *schema.Descriptor
	entries []Entry
}

// Descriptor returns the schema the record was assembled against.
func (r *Record) Descriptor() *schema.Descriptor {
	return r.desc
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries in schema order.
func (r *Record) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry of a field.
func (r *Record) Lookup(name string) (Entry, bool) {
	i := r.desc.IndexOf(name)
	if i < 0 {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Get returns the value of a field and whether it is present.
func (r *Record) Get(name string) (any, bool) {
	e, ok := r.Lookup(name)
	if !ok || !e.Present {
		return nil, false
	}
	return e.Value, true
}
