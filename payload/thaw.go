// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package payload

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/klauspost/compress/s2"
)

func decompress(b []byte) ([]byte, error) {
	raw, err := s2.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("payload: s2.Decode %w", err)
	}
	return raw, nil
}

// Thaw uncompresses b and parses the tagged byte stream back into a
// value. The wire grammar has no tag for structs, pointers, channels
// or functions, so Thaw can only ever return nil, bool, int64,
// float64, string, []any and map[string]any.
//
// Thaw runs on authenticated bytes only, but still bounds-checks every
// read: a corrupted stream is reported as an error, never a panic.
func Thaw(b []byte) (any, error) {
	raw, err := decompress(b)
	if err != nil {
		return nil, err
	}

	v, rest, err := readValue(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("payload: %d unexpected trailing bytes", len(rest))
	}
	return v, nil
}

func readValue(b []byte) (any, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("payload: missing tag byte")
	}
	tag := b[0]
	b = b[1:]

	switch tag {
	case tagNull:
		return nil, b, nil
	case tagFalse:
		return false, b, nil
	case tagTrue:
		return true, b, nil
	case tagInt:
		v, rest, err := readInt(b)
		return v, rest, err
	case tagFloat:
		v, rest, err := readFloat(b)
		return v, rest, err
	case tagString:
		v, rest, err := readString(b)
		return v, rest, err
	case tagSlice:
		v, rest, err := readSlice(b)
		return v, rest, err
	case tagMap:
		v, rest, err := readMap(b)
		return v, rest, err
	default:
		return nil, nil, fmt.Errorf("payload: unknown tag 0x%02x", tag)
	}
}

func readInt(b []byte) (int64, []byte, error) {
	v, n := binary.Varint(b)
	if n <= 0 {
		return 0, nil, fmt.Errorf("payload: truncated integer")
	}
	return v, b[n:], nil
}

func readFloat(b []byte) (float64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("payload: truncated float (%d bytes)", len(b))
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(b))
	return v, b[8:], nil
}

func readString(b []byte) (string, []byte, error) {
	n, rest, err := readCount(b, 1)
	if err != nil {
		return "", nil, err
	}
	s := string(rest[:n])
	if !utf8.ValidString(s) {
		return "", nil, fmt.Errorf("payload: string is not valid UTF-8")
	}
	return s, rest[n:], nil
}

func readSlice(b []byte) ([]any, []byte, error) {
	n, rest, err := readCount(b, 1)
	if err != nil {
		return nil, nil, err
	}

	s := make([]any, 0, n)
	for i := 0; i < n; i++ {
		var v any
		v, rest, err = readValue(rest)
		if err != nil {
			return nil, nil, err
		}
		s = append(s, v)
	}
	return s, rest, nil
}

func readMap(b []byte) (map[string]any, []byte, error) {
	n, rest, err := readCount(b, 2)
	if err != nil {
		return nil, nil, err
	}

	m := make(map[string]any, n)
	for i := 0; i < n; i++ {
		if len(rest) == 0 || rest[0] != tagString {
			return nil, nil, fmt.Errorf("payload: map key #%d is not a string", i)
		}

		var k string
		k, rest, err = readString(rest[1:])
		if err != nil {
			return nil, nil, err
		}

		var v any
		v, rest, err = readValue(rest)
		if err != nil {
			return nil, nil, err
		}
		m[k] = v
	}
	return m, rest, nil
}

// readCount reads a length/count prefix and rejects any count that the
// remaining bytes cannot possibly satisfy (minSize bytes per element),
// so a corrupted prefix cannot trigger a huge allocation.
func readCount(b []byte, minSize int) (int, []byte, error) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, nil, fmt.Errorf("payload: truncated count")
	}
	rest := b[n:]
	if v > uint64(len(rest)/minSize) {
		return 0, nil, fmt.Errorf("payload: count %d exceeds remaining %d bytes", v, len(rest))
	}
	return int(v), rest, nil
}
