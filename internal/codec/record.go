package codec

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a client-shaped record: the raw JSON object a device pushes, or
// the object the server emits on pull. Clients are not consistent about field
// naming (camelCase vs snake_case) or boolean encoding (true/false vs 1/0),
// so every accessor takes a list of candidate keys, canonical name first, and
// normalizes the value it finds.
type Record map[string]any

// TimeFormat is the wire format for updatedAt/deletedAt markers.
const TimeFormat = time.RFC3339Nano

// FormatTime renders a server timestamp in the wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// FormatTimePtr renders an optional timestamp, nil stays nil.
func FormatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// Raw returns the first present value for keys, untouched. A present-but-null
// field counts as found.
func (r Record) Raw(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return v, ok
		}
	}
	return nil, false
}

// Present reports whether any of keys exists in the record, null included.
// Apply functions use it to distinguish "field omitted" from "field cleared".
func (r Record) Present(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}

// Int64 returns the first present key coerced to int64. JSON numbers arrive
// as float64; numeric strings are tolerated because some client versions
// serialize ids that way.
func (r Record) Int64(keys ...string) (int64, bool) {
	v, ok := r.Raw(keys...)
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Int is Int64 narrowed to int.
func (r Record) Int(keys ...string) (int, bool) {
	v, ok := r.Int64(keys...)
	return int(v), ok
}

// String returns the first present key as a string.
func (r Record) String(keys ...string) (string, bool) {
	v, ok := r.Raw(keys...)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool normalizes boolean-like fields: true/false, 1/0, "1"/"0".
func (r Record) Bool(keys ...string) (bool, bool) {
	v, ok := r.Raw(keys...)
	if !ok || v == nil {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case json.Number:
		i, err := b.Int64()
		return i != 0, err == nil
	case string:
		return b == "1" || b == "true", true
	}
	return false, false
}

// Decimal parses a monetary value from a JSON number or string.
func (r Record) Decimal(keys ...string) (decimal.Decimal, bool) {
	v, ok := r.Raw(keys...)
	if !ok || v == nil {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	}
	return decimal.Zero, false
}

// boolToInt renders a stored boolean the way the client persists it.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// decimalOut renders a stored decimal as a JSON number.
func decimalOut(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// decimalPtrOut renders an optional decimal, nil stays nil.
func decimalPtrOut(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return decimalOut(*d)
}

// Helpers used by the per-entity Apply functions. Each assigns only when one
// of keys is present, so a push update touches exactly the fields the client
// sent; a present null clears an optional field.

func setString(r Record, dst *string, keys ...string) {
	if v, ok := r.String(keys...); ok {
		*dst = v
	}
}

func setStringPtr(r Record, dst **string, keys ...string) {
	if !r.Present(keys...) {
		return
	}
	if v, ok := r.String(keys...); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}

func setInt(r Record, dst *int, keys ...string) {
	if v, ok := r.Int(keys...); ok {
		*dst = v
	}
}

func setIntPtr(r Record, dst **int, keys ...string) {
	if !r.Present(keys...) {
		return
	}
	if v, ok := r.Int(keys...); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}

func setInt64(r Record, dst *int64, keys ...string) {
	if v, ok := r.Int64(keys...); ok {
		*dst = v
	}
}

func setInt64Ptr(r Record, dst **int64, keys ...string) {
	if !r.Present(keys...) {
		return
	}
	if v, ok := r.Int64(keys...); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}

func setBool(r Record, dst *bool, keys ...string) {
	if v, ok := r.Bool(keys...); ok {
		*dst = v
	}
}

func setDecimal(r Record, dst *decimal.Decimal, keys ...string) {
	if v, ok := r.Decimal(keys...); ok {
		*dst = v
	}
}

func setDecimalPtr(r Record, dst **decimal.Decimal, keys ...string) {
	if !r.Present(keys...) {
		return
	}
	if v, ok := r.Decimal(keys...); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}
