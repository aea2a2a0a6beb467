// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

// Package wire implements the ASCII surface of the token:
// URL-safe unpadded Base64 for the binary fields, and the
// four-field tilde-separated framing
//
//	SALT "~" EXP "~" CT "~" MAC
//
// SALT is 1 to 10 decimal digits (uint32), EXP is decimal digits or
// empty, CT and MAC are Base64 and never empty.
package wire

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// Separator is the single ASCII byte between token fields. It appears
// in no Base64 alphabet and in no decimal number, so splitting on it
// is unambiguous.
const Separator = "~"

const nFields = 4

// EncodeField wraps a binary field for the wire.
func EncodeField(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeField reverses EncodeField. Decoding is strict: a field whose
// final character carries non-zero unused bits is rejected, so every
// byte sequence has exactly one accepted wire form.
func DecodeField(s string) ([]byte, error) {
	return base64.RawURLEncoding.Strict().DecodeString(s)
}

// FormatSalt prints a salt the way KDF derivation and the token both
// consume it: decimal ASCII, no leading zeros.
func FormatSalt(salt uint32) string {
	return strconv.FormatUint(uint64(salt), 10)
}

// ParseSalt reverses FormatSalt, rejecting anything that is not a
// decimal uint32.
func ParseSalt(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	return uint32(n), err
}

// Join assembles the four fields into a token.
func Join(salt, exp, ct, mac string) string {
	return salt + Separator + exp + Separator + ct + Separator + mac
}

// Split cuts a token into its four fields. ok is false when the token
// has fewer than four fields, or when SALT, CT or MAC is empty.
// EXP may be empty (a token that never expires). The token is cut at
// its first three separators only: any further separators stay inside
// mac, which then fails Base64 decoding.
func Split(token string) (salt, exp, ct, mac string, ok bool) {
	parts := strings.SplitN(token, Separator, nFields)
	if len(parts) < nFields {
		return "", "", "", "", false
	}

	salt, exp, ct, mac = parts[0], parts[1], parts[2], parts[3]
	if salt == "" || ct == "" || mac == "" {
		return "", "", "", "", false
	}
	return salt, exp, ct, mac, true
}

// MACMessage builds the authenticated-data string: the expiry and the
// Base64 ciphertext exactly as they appear on the wire, joined by the
// field separator.
func MACMessage(exp, ct string) []byte {
	return []byte(exp + Separator + ct)
}
