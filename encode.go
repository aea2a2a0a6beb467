// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package signet

import (
	"fmt"
	"strconv"
	"time"

	"github.com/teal-finance/signet/crypt"
	"github.com/teal-finance/signet/payload"
	"github.com/teal-finance/signet/wire"
)

// Encode seals data into a token string.
//
// A zero expiresAt means "no explicit expiry": the token gets the
// codec's default duration if one is configured, and never expires
// otherwise. An expiresAt already in the past still produces a token,
// but with an emptied payload: the token is dead on arrival and leaks
// nothing even to a clock-skewed decoder.
//
// A nil data encodes the empty mapping.
func (c *Codec) Encode(data any, expiresAt time.Time) (string, error) {
	if c.EncodeVersion != CurrentProtocolVersion {
		return "", fmt.Errorf("signet: cannot encode protocol version %d", c.EncodeVersion)
	}

	if data == nil {
		data = map[string]any{}
	}

	now := c.timeFunc()

	var exp string
	switch {
	case !expiresAt.IsZero():
		e := expiresAt.Unix()
		if e < 0 {
			e = 0
		}
		if e < now {
			data = map[string]any{}
		}
		exp = strconv.FormatInt(e, 10)

	case c.defaultDuration > 0:
		exp = strconv.FormatInt(now+int64(c.defaultDuration/time.Second), 10)
	}

	salt, err := c.salt()
	if err != nil {
		return "", fmt.Errorf("signet: encode: %w", err)
	}

	key := crypt.Derive(salt, c.secrets[0])

	plaintext, err := payload.Freeze(data)
	if err != nil {
		return "", fmt.Errorf("signet: encode: %w", err)
	}

	ciphertext, err := crypt.Encrypt(key, plaintext)
	if err != nil {
		return "", fmt.Errorf("signet: encode: %w", err)
	}

	ct := wire.EncodeField(ciphertext)
	mac := wire.EncodeField(crypt.Sign(key, wire.MACMessage(exp, ct)))

	return wire.Join(wire.FormatSalt(salt), exp, ct, mac), nil
}
