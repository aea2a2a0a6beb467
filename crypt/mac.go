// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package crypt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Sign computes HMAC-SHA-256 of message under key.
func Sign(key [KeySize]byte, message []byte) []byte {
	h := hmac.New(sha256.New, key[:])
	h.Write(message)
	return h.Sum(nil)
}

// Verify recomputes the MAC of message and compares it to mac without
// short-circuiting on the first differing byte.
func Verify(key [KeySize]byte, message, mac []byte) bool {
	expected := Sign(key, message)
	return subtle.ConstantTimeCompare(expected, mac) == 1
}
