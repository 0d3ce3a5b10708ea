package envconfig

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Redblueflame/env-config/pkg/schema"
)

// slot is the draft state of one field.
type slot struct {
	value   any
	present bool
	source  Source
}

// draft holds one optional slot per schema field. It belongs to a single
// run and is discarded after finalization or failure.
type draft struct {
	desc  *schema.Descriptor
	slots []slot
}

func newDraft(desc *schema.Descriptor) *draft {
	return &draft{
		desc:  desc,
		slots: make([]slot, desc.Len()),
	}
}

// seed copies the file values into the draft. Null values count as absent.
// Keys that are not part of the schema are ignored.
func (d *draft) seed(partial map[string]any, path string) error {
	for i := range d.slots {
		f := d.desc.At(i)
		raw, ok := partial[f.Name]
		if !ok || raw == nil {
			continue
		}

		v, err := fromFile(f, raw)
		if err != nil {
			return &ParsingError{Path: path, Field: f.Name, Err: err}
		}
		d.slots[i] = slot{value: v, present: true, source: SourceFile}
	}
	return nil
}

// overlay applies the environment snapshot. A value that cannot be
// converted is recorded and leaves the slot unchanged.
func (d *draft) overlay(env map[string]string, keys []string) []*TypeError {
	var errs []*TypeError

	for i := range d.slots {
		raw, ok := env[keys[i]]
		if !ok {
			continue
		}

		f := d.desc.At(i)
		v, err := fromEnv(f, raw)
		if err != nil {
			te := &TypeError{
				Field:  f.Name,
				EnvKey: keys[i],
				Kind:   f.Kind,
				Value:  raw,
				Err:    err,
			}
			if f.Secret {
				te.Value = ""
				te.Err = scrub(err, f.Kind)
			}
			errs = append(errs, te)
			continue
		}
		d.slots[i] = slot{value: v, present: true, source: SourceEnv}
	}

	return errs
}

// missing returns the required fields that are still absent, in schema
// order.
func (d *draft) missing() []string {
	var names []string
	for i, s := range d.slots {
		f := d.desc.At(i)
		if f.Required && !s.present {
			names = append(names, f.Name)
		}
	}
	return names
}

// finalize turns a validated draft into a Record.
func (d *draft) finalize() *Record {
	entries := make([]Entry, len(d.slots))
	for i, s := range d.slots {
		entries[i] = Entry{
			Field:   d.desc.At(i),
			Value:   s.value,
			Present: s.present,
			Source:  s.source,
		}
	}
	return &Record{desc: d.desc, entries: entries}
}

// scrub drops the offending input from a conversion error.
func scrub(err error, kind schema.Kind) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return fmt.Errorf("invalid %s", kind)
}
