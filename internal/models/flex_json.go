package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMaps caches JSON tag -> struct field index mappings per struct type
var fieldMaps sync.Map

func jsonFieldMap(t reflect.Type) map[string]int {
	if m, ok := fieldMaps.Load(t); ok {
		return m.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		m[strings.Split(tag, ",")[0]] = i
	}
	fieldMaps.Store(t, m)
	return m
}

// UnmarshalJSON accepts counters encoded as JSON numbers or numeric strings.
// Spreadsheet exports and older scrapers deliver every value quoted. Missing or
// null counters stay 0; a value that is not a number is an error, never coerced.
func (p *KingdomProfile) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias KingdomProfile
	a := (*Alias)(p)

	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}
	*a = Alias{}
	return flexUnmarshal(data, a)
}

// UnmarshalJSON applies the same coercion rules as KingdomProfile.
func (r *MatchRecord) UnmarshalJSON(data []byte) error {
	type Alias MatchRecord
	a := (*Alias)(r)

	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}
	*a = Alias{}
	return flexUnmarshal(data, a)
}

// flexUnmarshal decodes data field by field into the struct dst points to.
func flexUnmarshal(data []byte, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	v := reflect.ValueOf(dst).Elem()
	fieldMap := jsonFieldMap(v.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}
		fv := v.Field(idx)
		if !fv.CanSet() || string(rawVal) == "null" {
			continue
		}

		ptr := reflect.New(fv.Type())
		err := json.Unmarshal(rawVal, ptr.Interface())
		if err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Composite values have no string form to fall back to
		if fv.Kind() == reflect.Slice || fv.Kind() == reflect.Struct {
			return fmt.Errorf("field %q: %w", key, err)
		}

		literal := string(rawVal)
		if len(rawVal) > 1 && rawVal[0] == '"' {
			if err := json.Unmarshal(rawVal, &literal); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
		}
		if err := coerceStringToField(fv, strings.TrimSpace(literal)); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}

	return nil
}

// coerceStringToField converts s to the field's native type.
func coerceStringToField(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			fv.SetInt(n)
			return nil
		}
		// "12.0" is still a count; "12.5" is not
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%q is not a number", s)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("%q is not a whole number", s)
		}
		fv.SetInt(int64(f))
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("cannot decode %q into %s", s, fv.Kind())
	}
	return nil
}
