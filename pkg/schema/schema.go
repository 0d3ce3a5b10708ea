package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Kind is the value kind of a field.
type Kind uint8

// Supported kinds.
const (
	Invalid Kind = iota
	String
	Int
	Uint
	Float
	Bool
	Duration
)

var kindNames = map[Kind]string{
	Invalid:  "invalid",
	String:   "string",
	Int:      "int",
	Uint:     "uint",
	Float:    "float",
	Bool:     "bool",
	Duration: "duration",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str":
		return String, nil
	case "int", "integer":
		return Int, nil
	case "uint", "unsigned":
		return Uint, nil
	case "float", "number":
		return Float, nil
	case "bool", "boolean":
		return Bool, nil
	case "duration":
		return Duration, nil
	default:
		return Invalid, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// Field describes one configuration field.
type Field struct {
	// Name is the key of the field in the configuration file.
	Name string
	// Required is false when the field may stay absent after merging.
	Required bool
	// Kind is the value kind (the inner kind for optional fields).
	Kind Kind
	// Env is an explicit environment key. Empty means the key is derived
	// from Name by the assembly engine.
	Env string
	// Secret fields never have their values logged or echoed in errors.
	Secret bool
	// Bits is the width of numeric kinds. Zero means 64.
	Bits int
	// Index is the struct field index, or -1 for manual descriptors.
	Index int
	// GoName is the Go struct field name, empty for manual descriptors.
	GoName string
}

// BitSize returns the numeric width of the field.
func (f Field) BitSize() int {
	if f.Bits <= 0 {
		return 64
	}
	return f.Bits
}

// Descriptor is the immutable, ordered description of a configuration shape.
type Descriptor struct {
	typ    reflect.Type
	fields []Field
	byName map[string]int
}

// Definition errors.
var (
	ErrEmptySchema     = errors.New("schema has no fields")
	ErrDuplicateField  = errors.New("duplicate field name")
	ErrInvalidName     = errors.New("invalid field name")
	ErrUnsupportedKind = errors.New("unsupported field type")
	ErrNotStruct       = errors.New("configuration type must be a struct")
)

// DefinitionError reports a schema that cannot be used.
type DefinitionError struct {
	Type  string // Go type name, empty for manual descriptors
	Field string // offending field, empty for type-level problems
	Err   error
}

func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("schema")
	if e.Type != "" {
		b.WriteString(" ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying definition error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// New builds a descriptor from an explicit field list.
// Field order is kept. Index and GoName are reset since there is no
// backing struct.
func New(fields ...Field) (*Descriptor, error) {
	owned := make([]Field, len(fields))
	for i, f := range fields {
		f.Index = -1
		f.GoName = ""
		owned[i] = f
	}
	return build(nil, owned)
}

func build(typ reflect.Type, fields []Field) (*Descriptor, error) {
	typeName := ""
	if typ != nil {
		typeName = typ.String()
	}
	if len(fields) == 0 {
		return nil, &DefinitionError{Type: typeName, Err: ErrEmptySchema}
	}

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if !validName(f.Name) {
			return nil, &DefinitionError{Type: typeName, Field: f.Name, Err: ErrInvalidName}
		}
		if f.Env != "" && !validEnvKey(f.Env) {
			return nil, &DefinitionError{Type: typeName, Field: f.Name, Err: fmt.Errorf("%w: env key %q", ErrInvalidName, f.Env)}
		}
		if _, dup := byName[f.Name]; dup {
			return nil, &DefinitionError{Type: typeName, Field: f.Name, Err: ErrDuplicateField}
		}
		if f.Kind <= Invalid || f.Kind > Duration {
			return nil, &DefinitionError{Type: typeName, Field: f.Name, Err: ErrUnsupportedKind}
		}
		byName[f.Name] = i
	}

	return &Descriptor{
		typ:    typ,
		fields: fields,
		byName: byName,
	}, nil
}

// Type returns the described Go type, or nil for manual descriptors.
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// Len returns the number of fields.
func (d *Descriptor) Len() int {
	return len(d.fields)
}

// At returns the i-th field.
func (d *Descriptor) At(i int) Field {
	return d.fields[i]
}

// Fields returns a copy of the fields in declaration order.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Field returns the field with the given name.
func (d *Descriptor) Field(name string) (Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// IndexOf returns the position of a field, or -1.
func (d *Descriptor) IndexOf(name string) int {
	if i, ok := d.byName[name]; ok {
		return i
	}
	return -1
}

// Required returns the required fields in declaration order.
func (d *Descriptor) Required() []Field {
	return d.filter(true)
}

// Optional returns the optional fields in declaration order.
func (d *Descriptor) Optional() []Field {
	return d.filter(false)
}

func (d *Descriptor) filter(required bool) []Field {
	out := make([]Field, 0, len(d.fields))
	for _, f := range d.fields {
		if f.Required == required {
			out = append(out, f)
		}
	}
	return out
}

// validName accepts letters, digits, '_' and '-'. Dots are rejected since
// they denote nesting in the file layer.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// validEnvKey accepts letters, digits and '_', the portable environment
// variable alphabet.
func validEnvKey(key string) bool {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
