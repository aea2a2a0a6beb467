// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package payload

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/klauspost/compress/s2"
)

// Freeze serializes v into the tagged byte stream and compresses the
// whole stream with Snappy S2. Integer kinds are normalized to int64,
// float kinds to float64, so the value read back by Thaw is always
// built from the seven wire types only.
func Freeze(v any) ([]byte, error) {
	b, err := appendValue(nil, v)
	if err != nil {
		return nil, err
	}
	return s2.Encode(nil, b), nil
}

func appendValue(b []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return append(b, tagNull), nil
	case bool:
		if x {
			return append(b, tagTrue), nil
		}
		return append(b, tagFalse), nil
	case int:
		return appendInt(b, int64(x)), nil
	case int8:
		return appendInt(b, int64(x)), nil
	case int16:
		return appendInt(b, int64(x)), nil
	case int32:
		return appendInt(b, int64(x)), nil
	case int64:
		return appendInt(b, x), nil
	case uint:
		return appendUint(b, uint64(x))
	case uint8:
		return appendInt(b, int64(x)), nil
	case uint16:
		return appendInt(b, int64(x)), nil
	case uint32:
		return appendInt(b, int64(x)), nil
	case uint64:
		return appendUint(b, x)
	case float32:
		return appendFloat(b, float64(x)), nil
	case float64:
		return appendFloat(b, x), nil
	case string:
		return appendString(b, x), nil
	case []any:
		return appendSlice(b, x)
	case map[string]any:
		return appendMap(b, x)
	default:
		return appendReflected(b, v)
	}
}

// appendReflected catches named/aliased kinds (type MyID string,
// []string, map[string]int...) that the direct type switch misses.
// Anything whose kind is not a plain aggregate or basic value is a
// tagged object in the sense of the token contract: it cannot be
// represented on the wire, so freezing it is an error.
func appendReflected(b []byte, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return appendValue(b, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendValue(b, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return appendUint(b, rv.Uint())
	case reflect.Float32, reflect.Float64:
		return appendValue(b, rv.Float())
	case reflect.String:
		return appendValue(b, rv.String())

	case reflect.Slice, reflect.Array:
		n := rv.Len()
		b = append(b, tagSlice)
		b = binary.AppendUvarint(b, uint64(n))
		var err error
		for i := 0; i < n; i++ {
			b, err = appendValue(b, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
		}
		return b, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("payload: cannot freeze map keyed by %s (keys must be strings)", rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return appendMap(b, m)

	default:
		return nil, fmt.Errorf("payload: cannot freeze %T", v)
	}
}

func appendInt(b []byte, v int64) []byte {
	b = append(b, tagInt)
	return binary.AppendVarint(b, v)
}

func appendUint(b []byte, v uint64) ([]byte, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("payload: cannot freeze %d (overflows int64)", v)
	}
	return appendInt(b, int64(v)), nil
}

func appendFloat(b []byte, v float64) []byte {
	b = append(b, tagFloat)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return append(b, buf[:]...)
}

func appendString(b []byte, s string) []byte {
	b = append(b, tagString)
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendSlice(b []byte, s []any) ([]byte, error) {
	b = append(b, tagSlice)
	b = binary.AppendUvarint(b, uint64(len(s)))
	var err error
	for _, v := range s {
		b, err = appendValue(b, v)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// appendMap writes keys in sorted order so that freezing the same
// value twice yields the same bytes.
func appendMap(b []byte, m map[string]any) ([]byte, error) {
	b = append(b, tagMap)
	b = binary.AppendUvarint(b, uint64(len(m)))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		b = appendString(b, k)
		b, err = appendValue(b, m[k])
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}
