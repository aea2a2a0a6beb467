// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package signet

// CurrentProtocolVersion is the on-wire format implemented by this
// package: URL-safe Base64 fields, MAC over EXP~CT under the derived
// key, AES-CBC with in-line IV.
const CurrentProtocolVersion = 1

// An opener verifies and opens a token under one protocol version.
// It returns ErrNoValue when the token is not an authentic, fresh
// token of that version.
type opener func(c *Codec, salt uint32, exp, ct, mac string, now int64) (any, error)

// openers maps each supported protocol version to its opener.
// A legacy version differs only in field composition and alphabet, so
// adding one is one pure function here; the orchestrator does not
// change. No legacy entry ships: the legacy layout must come from an
// authoritative token fixture set, and guessing it would produce
// tokens that silently fail to interoperate.
var openers = map[int]opener{
	CurrentProtocolVersion: openV1,
}
