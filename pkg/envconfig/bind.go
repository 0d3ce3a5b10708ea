package envconfig

import (
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// bind copies a record into a new *T. The record must have been assembled
// against the descriptor of T.
func bind[T any](rec *Record) *T {
	out := new(T)
	rv := reflect.ValueOf(out).Elem()

	for _, e := range rec.entries {
		if !e.Present || e.Field.Index < 0 {
			continue
		}
		fv := rv.Field(e.Field.Index)
		if fv.Kind() == reflect.Pointer {
			p := reflect.New(fv.Type().Elem())
			setValue(p.Elem(), e.Value)
			fv.Set(p)
			continue
		}
		setValue(fv, e.Value)
	}
	return out
}

// setValue stores a canonical value. Ranges were checked during conversion.
func setValue(fv reflect.Value, v any) {
	switch x := v.(type) {
	case string:
		fv.SetString(x)
	case bool:
		fv.SetBool(x)
	case int64:
		fv.SetInt(x)
	case uint64:
		fv.SetUint(x)
	case float64:
		fv.SetFloat(x)
	case time.Duration:
		fv.SetInt(int64(x))
	}
}

// checkConstraints runs `validate` struct tags on the bound value.
func (r *run) checkConstraints(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	names := make(map[string]string, r.desc.Len())
	for _, f := range r.desc.Fields() {
		names[f.GoName] = f.Name
	}

	constraints := make([]*ConstraintError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name, ok := names[fe.StructField()]
		if !ok {
			name = fe.Field()
		}
		constraints = append(constraints, &ConstraintError{
			Field: name,
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return newAssemblyError(r.desc, r.keys, nil, nil, constraints)
}
