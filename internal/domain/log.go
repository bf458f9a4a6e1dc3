package domain

import (
	"encoding/json"
	"fmt"
	"reflect"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// LogEntry records one field change. Before and After are nil when the field
// was absent before or after the change. They are deep copies taken when the
// entry was appended.
type LogEntry struct {
	Field       string
	Description string
	Before      any
	After       any

	before string
	after  string
}

// MutationLog is the append-only audit trail of a fuzz session.
type MutationLog struct {
	entries []LogEntry
}

// NewMutationLog creates an empty log.
func NewMutationLog() *MutationLog {
	return &MutationLog{}
}

// Append adds an entry. Values are copied and rendered immediately so later
// in-place edits of shared structures do not rewrite history.
func (l *MutationLog) Append(entry LogEntry) {
	entry.Before = snapshot(entry.Before)
	entry.After = snapshot(entry.After)
	entry.before = renderValue(entry.Before)
	entry.after = renderValue(entry.After)
	l.entries = append(l.entries, entry)
}

// Len returns the number of entries.
func (l *MutationLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in call order. Callers may modify
// the returned values freely.
func (l *MutationLog) Entries() []LogEntry {
	out := make([]LogEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.clone())
	}

	return out
}

func (e LogEntry) clone() LogEntry {
	e.Before = snapshot(e.Before)
	e.After = snapshot(e.After)

	return e
}

// Records renders the entries for export.
func (l *MutationLog) Records() []m.LogRecord {
	records := make([]m.LogRecord, 0, len(l.entries))
	for _, e := range l.entries {
		records = append(records, m.LogRecord{
			Field:       e.Field,
			Description: e.Description,
			Before:      e.before,
			After:       e.after,
		})
	}

	return records
}

// ForField returns the entries recorded for field.
func (l *MutationLog) ForField(field string) []LogEntry {
	var out []LogEntry

	for _, e := range l.entries {
		if e.Field == field {
			out = append(out, e.clone())
		}
	}

	return out
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}

// Clone returns a deep copy of v that shares no pointers, slices or maps
// with it.
func Clone[T any](v T) T {
	out := deepCopy(reflect.ValueOf(&v)).Interface().(*T)

	return *out
}

// snapshot deep-copies v, keeping its dynamic type.
func snapshot(v any) any {
	if v == nil {
		return nil
	}

	return deepCopy(reflect.ValueOf(v)).Interface()
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}

		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))

		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}

		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}

		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}

		return out
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}

		out := reflect.MakeMapWithSize(v.Type(), v.Len())

		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}

		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)

		for i := range v.NumField() {
			if field := out.Field(i); field.CanSet() {
				field.Set(deepCopy(v.Field(i)))
			}
		}

		return out
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}

		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem()))

		return out
	default:
		return v
	}
}
