package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Describe returns the descriptor of the struct type T.
func Describe[T any]() (*Descriptor, error) {
	return DescribeType(reflect.TypeFor[T]())
}

// MustDescribe is like Describe but panics on a definition error.
// It is meant for package-level variables, so that an unusable
// configuration type fails at program start.
func MustDescribe[T any]() *Descriptor {
	d, err := Describe[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// DescribeType returns the descriptor of a struct type (or pointer to one).
// Descriptors are cached per type.
func DescribeType(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, &DefinitionError{Err: ErrNotStruct}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &DefinitionError{Type: t.String(), Err: ErrNotStruct}
	}
	return descriptors.getOrBuild(t, describeStruct)
}

func describeStruct(t reflect.Type) (*Descriptor, error) {
	fields := make([]Field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}

		f := Field{
			Name:     name,
			Required: true,
			Env:      strings.TrimSpace(sf.Tag.Get("env")),
			Secret:   sf.Tag.Get("secret") == "true",
			Index:    i,
			GoName:   sf.Name,
		}

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			f.Required = false
			ft = ft.Elem()
		}

		kind, bits, ok := kindOf(ft)
		if !ok {
			return nil, &DefinitionError{
				Type:  t.String(),
				Field: name,
				Err:   fmt.Errorf("%w: %s", ErrUnsupportedKind, sf.Type),
			}
		}
		f.Kind = kind
		f.Bits = bits

		fields = append(fields, f)
	}

	return build(t, fields)
}

// fieldName resolves the file key of a struct field.
func fieldName(sf reflect.StructField) (name string, skip bool) {
	tag := sf.Tag.Get("koanf")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		name, _, _ = strings.Cut(tag, ",")
	}
	if name == "" {
		name = SnakeCase(sf.Name)
	}
	return name, false
}

// kindOf maps a Go type to a Kind and its numeric width.
func kindOf(t reflect.Type) (Kind, int, bool) {
	if t == durationType {
		return Duration, 64, true
	}

	switch t.Kind() {
	case reflect.String:
		return String, 0, true
	case reflect.Bool:
		return Bool, 0, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int, t.Bits(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint, t.Bits(), true
	case reflect.Float32, reflect.Float64:
		return Float, t.Bits(), true
	default:
		return Invalid, 0, false
	}
}
