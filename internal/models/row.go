package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is a record as the store hands it over: field name to value. Snapshots
// are kept as rows so fields this service does not know about survive a
// delete/restore round trip.
type Row map[string]any

const FieldID = "id"

// ID returns the store-assigned identifier, or "" when the row has none.
func (r Row) ID() string {
	return StringValue(r[FieldID])
}

// Clone returns a deep copy of the row, including nested maps and slices.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

// Without returns a copy of the row minus the given keys.
func (r Row) Without(keys ...string) Row {
	out := r.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Row:
		return t.Clone()
	case map[string]any:
		return Row(t).Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// AsRow accepts the shapes a nested map can come back in from a store or a
// JSON decoder.
func AsRow(v any) (Row, bool) {
	switch t := v.(type) {
	case Row:
		return t, true
	case map[string]any:
		return Row(t), true
	default:
		return nil, false
	}
}

// AmountValue coerces a stored amount into a number. Missing or non-numeric
// values count as zero so one bad row never breaks a total.
func AmountValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// StringValue renders scalar values as text; nil becomes "".
func StringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeValue reads a timestamp stored either natively or as text.
func TimeValue(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return time.Time{}
		}
		return *t
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}
