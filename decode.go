// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package signet

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/teal-finance/signet/crypt"
	"github.com/teal-finance/signet/payload"
	"github.com/teal-finance/signet/wire"
)

// Decode opens a token and returns the sealed data.
//
// Every inauthentic or stale token yields (nil, ErrNoValue), with no
// hint of which check failed. A non-nil error other than ErrNoValue
// means the token authenticated under a configured secret and then
// failed to decrypt or deserialize: someone holding the secret
// produced broken bytes, which is a deployment bug worth surfacing,
// not attacker noise. The one other non-nil error is returned before
// any check of the token: ProtocolVersions names a version this
// package does not implement.
func (c *Codec) Decode(token string) (any, error) {
	if token == "" {
		return nil, ErrNoValue
	}

	salt, exp, ct, mac, ok := wire.Split(token)
	if !ok {
		return nil, ErrNoValue
	}

	saltNum, err := wire.ParseSalt(salt)
	if err != nil {
		return nil, ErrNoValue
	}

	now := c.timeFunc()

	for _, v := range c.ProtocolVersions {
		open := openers[v]
		if open == nil {
			return nil, fmt.Errorf("signet: unknown protocol version %d", v)
		}

		data, err := open(c, saltNum, exp, ct, mac, now)
		if errors.Is(err, ErrNoValue) {
			continue // not a token of this version, try the next one
		}
		return data, err
	}
	return nil, ErrNoValue
}

// openV1 verifies and opens a current-format token whose fields are
// already split. The MAC check always runs before decryption, and runs
// under each configured secret in order until one matches.
func openV1(c *Codec, salt uint32, exp, ct, mac string, now int64) (any, error) {
	macBytes, err := wire.DecodeField(mac)
	if err != nil {
		return nil, ErrNoValue
	}

	message := wire.MACMessage(exp, ct)

	var key [crypt.KeySize]byte
	authentic := false
	for _, secret := range c.secrets {
		k := crypt.Derive(salt, secret)
		if crypt.Verify(k, message, macBytes) {
			key = k
			authentic = true
			break
		}
	}
	if !authentic {
		return nil, ErrNoValue
	}

	if exp != "" {
		e, err := strconv.ParseInt(exp, 10, 64)
		if err != nil || e < now {
			return nil, ErrNoValue
		}
	}

	ciphertext, err := wire.DecodeField(ct)
	if err != nil {
		return nil, fmt.Errorf("signet: decode ciphertext: %w", err)
	}

	plaintext, err := crypt.Decrypt(key, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("signet: decrypt: %w", err)
	}

	data, err := payload.Thaw(plaintext)
	if err != nil {
		return nil, fmt.Errorf("signet: thaw: %w", err)
	}
	return data, nil
}
