// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

/*
Package signet seals arbitrary session data into one opaque,
authenticated, encrypted, expiring token string, and opens such tokens
back. The canonical use is the browser session cookie: the server
hands the client a string on one request, accepts it back unchanged on
later requests, and holds no per-session state in between.

🎯 Purpose

- Authentic: HMAC-SHA-256 under a key derived per token,
  verified in constant time before anything is decrypted.

- Confidential: AES-256 in CBC mode with a random IV,
  payload compressed with Snappy S2 before encryption.

- Expiring: an optional wall-clock expiry rides inside the
  authenticated data, so it cannot be stripped or extended.

🍪 Token format

	SALT ~ EXP ~ CT ~ MAC

SALT is a random decimal uint32 making the derived key unique per
token. EXP is the expiry in Unix seconds, or empty for a token that
never expires. CT is the URL-safe Base64 of iv|ciphertext. MAC is the
URL-safe Base64 of HMAC-SHA-256 over "EXP~CT" exactly as on the wire.

🔑 Key rotation

A Codec takes one primary secret plus an ordered list of old secrets.
Encode always uses the primary; Decode tries each secret in order, so
a fleet can rotate secrets without invalidating live sessions.

🚫 What it does not do

The decoded value is plain data only: mappings, sequences, strings,
numbers, booleans, nil. There is no tag on the wire for anything
else, so a token can never reconstruct a struct, a pointer or any
value carrying side effects. Decode answers every inauthentic or
stale token with the same silent ErrNoValue, exposing no oracle for
which check failed.
*/
package signet
