// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package payload_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/s2"

	"github.com/teal-finance/signet/payload"
)

var roundTrips = []struct {
	name string
	in   any
	want any
}{
	{"null", nil, nil},
	{"false", false, false},
	{"true", true, true},
	{"zero", int64(0), int64(0)},
	{"int", int64(42), int64(42)},
	{"negative", int64(-1234567), int64(-1234567)},
	{"plain int kind", 7, int64(7)},
	{"uint kind", uint16(65535), int64(65535)},
	{"float", 3.25, 3.25},
	{"float32 kind", float32(0.5), 0.5},
	{"empty string", "", ""},
	{"string", "serenade viscount", "serenade viscount"},
	{"unicode", "garçon 🍸", "garçon 🍸"},
	{"empty slice", []any{}, []any{}},
	{"slice", []any{int64(1), "two", nil}, []any{int64(1), "two", nil}},
	{"empty map", map[string]any{}, map[string]any{}},
	{
		"map", map[string]any{"foo": "bar", "baz": "bam"},
		map[string]any{"foo": "bar", "baz": "bam"},
	},
	{
		"nested", map[string]any{
			"user":  "alice",
			"roles": []any{"admin", "ops"},
			"meta":  map[string]any{"logins": int64(3), "beta": true},
		},
		map[string]any{
			"user":  "alice",
			"roles": []any{"admin", "ops"},
			"meta":  map[string]any{"logins": int64(3), "beta": true},
		},
	},
	{
		"named kinds", map[string]any{"ids": []string{"a", "b"}, "count": uint8(9)},
		map[string]any{"ids": []any{"a", "b"}, "count": int64(9)},
	},
	{
		"compressible", strings.Repeat("session cookie payload ", 50),
		strings.Repeat("session cookie payload ", 50),
	},
}

func TestFreezeThaw(t *testing.T) {
	t.Parallel()

	for _, c := range roundTrips {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			b, err := payload.Freeze(c.in)
			if err != nil {
				t.Fatal("Freeze:", err)
			}

			got, err := payload.Thaw(b)
			if err != nil {
				t.Fatal("Thaw:", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("got %#v want %#v", got, c.want)
			}
		})
	}
}

func TestFreezeDeterministic(t *testing.T) {
	t.Parallel()

	v := map[string]any{"a": int64(1), "b": int64(2), "c": int64(3), "d": int64(4)}

	first, err := payload.Freeze(v)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := payload.Freeze(v)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatal("same value froze to different bytes")
		}
	}
}

type session struct{ User string }

func TestFreezeRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
	}{
		{"struct", session{User: "alice"}},
		{"pointer", &session{User: "alice"}},
		{"struct in map", map[string]any{"s": session{}}},
		{"struct in slice", []any{session{}}},
		{"channel", make(chan int)},
		{"function", func() {}},
		{"int-keyed map", map[int]any{1: "x"}},
		{"huge uint", uint64(1) << 63},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if _, err := payload.Freeze(c.in); err == nil {
				t.Errorf("Freeze(%T) = nil error, want rejection", c.in)
			}
		})
	}
}

func TestThawRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  []byte // uncompressed tagged stream, compressed below
	}{
		{"empty", []byte{}},
		{"unknown tag", []byte{0xEE}},
		{"truncated int", []byte{3}},
		{"truncated float", []byte{4, 1, 2, 3}},
		{"truncated string", []byte{5, 10, 'h', 'i'}},
		{"oversized slice count", []byte{6, 0xFF, 0xFF, 0xFF, 0x7F}},
		{"oversized map count", []byte{7, 0xFF, 0xFF, 0xFF, 0x7F}},
		{"map key not string", []byte{7, 1, 0 /* tagNull as key */, 0 /* tagNull value */}},
		{"invalid utf8", []byte{5, 2, 0xFF, 0xFE}},
		{"trailing bytes", []byte{0, 0}},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if _, err := payload.Thaw(s2.Encode(nil, c.raw)); err == nil {
				t.Error("Thaw = nil error, want rejection")
			}
		})
	}

	t.Run("not compressed", func(t *testing.T) {
		t.Parallel()

		if _, err := payload.Thaw([]byte{0xFF, 0xFF, 0xFF, 0xFF}); err == nil {
			t.Error("Thaw = nil error, want rejection")
		}
	})
}
