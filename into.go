// Copyright 2022 Teal.Finance/signet contributors
// This file is part of Teal.Finance/signet
// a tiny+secured cookie token licensed under the MIT License.
// SPDX-License-Identifier: MIT

package signet

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeInto opens a token and fills out (a pointer to a struct or a
// map) with the decoded mapping. It is a convenience layered after
// authentication: the trust decision is Decode's, this only shapes an
// already-opened map[string]any into the caller's type.
//
// Struct fields map by name, overridable with a `mapstructure` tag.
// A token rejected by Decode yields ErrNoValue unchanged.
func (c *Codec) DecodeInto(token string, out any) error {
	data, err := c.Decode(token)
	if err != nil {
		return err
	}

	if err := mapstructure.Decode(data, out); err != nil {
		return fmt.Errorf("signet: decode into %T: %w", out, err)
	}
	return nil
}
