package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// RandomHex generates 16 random bytes hex-encoded, optionally behind a
// short type prefix ("sess_…").
type RandomHex struct {
	Prefix string
}

func (g RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	if g.Prefix == "" {
		return hex.EncodeToString(buf)
	}
	return g.Prefix + "_" + hex.EncodeToString(buf)
}
