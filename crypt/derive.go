// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

// Package crypt provides the three primitives of the token
// construction: the per-token key derivation, the AES-CBC cipher with
// its in-line IV envelope, and the HMAC-SHA-256 authentication with
// constant-time verification.
//
// The formulas here are the interop contract: tokens must interchange
// byte-for-byte across implementations sharing the secret, so each
// primitive is built directly on the Go crypto packages rather than
// behind a configurable wrapper.
package crypt

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"
)

// KeySize is the derived key length: the full HMAC-SHA-256 output,
// which AES consumes as a 256-bit key.
const KeySize = sha256.Size

// Derive computes the per-token key:
//
//	HMAC-SHA-256(key = secret, msg = decimal ASCII salt)
//
// The salt is written in decimal exactly as it appears in the token,
// so both ends derive the same key from the wire form alone.
func Derive(salt uint32, secret []byte) [KeySize]byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(strconv.FormatUint(uint64(salt), 10)))

	var key [KeySize]byte
	copy(key[:], h.Sum(nil))
	return key
}
