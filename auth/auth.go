// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

var ErrAccessForbidden = errors.New("access forbidden")

// ValidateAPIKey checks the provided key against the configured shared key.
// Both are hashed first so the comparison takes the same time for any
// length. An empty configured key rejects everything.
func ValidateAPIKey(provided, expected string) error {
	if provided == "" || expected == "" {
		return ErrAccessForbidden
	}

	p := sha256.Sum256([]byte(provided))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(p[:], e[:]) {
		return ErrAccessForbidden
	}
	return nil
}
