// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

// Package payload serializes a restricted set of Go values — nil,
// bool, int64, float64, string, []any and map[string]any — into a
// compact, compressed byte stream and back.
//
// The grammar deliberately has no tag for anything else: a struct, a
// pointer to a struct, a channel or a function value cannot be
// represented, so Freeze rejects them and Thaw can never reconstruct
// one. This is what keeps a decoded token from ever producing a value
// that carries reconstruction side effects.
package payload

// Each value on the wire starts with one tag byte.
const (
	tagNull byte = iota
	tagFalse
	tagTrue
	tagInt
	tagFloat
	tagString
	tagSlice
	tagMap
)
