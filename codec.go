// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package signet

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrNoValue is the silent-rejection sentinel returned by Decode for
// every token that is not authentic and fresh: empty input, wrong
// field count, bad Base64, MAC mismatch under every configured secret,
// past expiry. Callers test it with errors.Is and must treat it as
// "no session", never as a fault.
//
// It is distinct from a successfully decoded empty mapping, which
// Decode reports as (map[string]any{}, nil).
var ErrNoValue = errors.New("signet: no value")

// Codec seals arbitrary data into an authenticated, encrypted,
// expiring token string, and opens such tokens back. One Codec per
// secret; a Codec is safe for concurrent Encode and Decode calls.
type Codec struct {
	// ProtocolVersions lists the on-wire formats Decode accepts, tried
	// in order. Defaults to the current format only.
	ProtocolVersions []int

	// EncodeVersion is the on-wire format Encode emits.
	// Defaults to CurrentProtocolVersion.
	EncodeVersion int

	// secrets holds the primary secret first, then the decrypt-only
	// legacy secrets in their configured order.
	secrets [][]byte

	defaultDuration time.Duration

	// timeFunc returns the current Unix time in seconds.
	// Tests override it; production code never does.
	timeFunc func() int64

	saltOnce sync.Once
	salter   *salter
	saltErr  error
}

// New builds a Codec from a secret key, optional legacy secrets
// (decrypt-only, tried in order after the primary), and an optional
// default validity duration applied when Encode is given no expiry.
//
// New panics on misuse: an empty secret, an empty legacy secret, or a
// negative duration are deployment bugs, not runtime conditions.
func New(secretKey string, oldSecrets []string, defaultDuration time.Duration) *Codec {
	if secretKey == "" {
		log.Panic("Empty secret key")
	}
	if defaultDuration < 0 {
		log.Panic("Negative default duration ", defaultDuration)
	}

	secrets := make([][]byte, 0, 1+len(oldSecrets))
	secrets = append(secrets, []byte(secretKey))
	for i, old := range oldSecrets {
		if old == "" {
			log.Panic("Empty old secret #", i)
		}
		secrets = append(secrets, []byte(old))
	}

	return &Codec{
		ProtocolVersions: []int{CurrentProtocolVersion},
		EncodeVersion:    CurrentProtocolVersion,
		secrets:          secrets,
		defaultDuration:  defaultDuration,
		timeFunc:         func() int64 { return time.Now().Unix() },
	}
}

// salt draws a fresh per-token salt, building the generator on first
// use. An unreadable OS entropy source is the only possible error.
func (c *Codec) salt() (uint32, error) {
	c.saltOnce.Do(func() {
		c.salter, c.saltErr = newSalter()
	})
	if c.saltErr != nil {
		return 0, c.saltErr
	}
	return c.salter.Salt(), nil
}
