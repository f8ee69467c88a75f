// Package handid generates sortable hand identifiers: a UUIDv7 written as
// 26 characters of lower case Crockford base32.
package handid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	// Length of every encoded identifier.
	Length = 26
)

// New returns a fresh identifier. Identifiers created later sort after
// earlier ones, to millisecond precision.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid falls back to v4 only on entropy failure, which is fatal
		// elsewhere in the process too.
		panic(fmt.Sprintf("handid: %v", err))
	}
	return Encode(id)
}

// Encode writes a UUID as 26 base32 characters, most significant bits
// first. The first character carries the top three bits only.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	hi := uint64(0)
	for _, c := range id[:8] {
		hi = hi<<8 | uint64(c)
	}
	lo := uint64(0)
	for _, c := range id[8:] {
		lo = lo<<8 | uint64(c)
	}
	// 128 bits are padded to 130 with two leading zero bits.
	for i := Length - 1; i >= 0; i-- {
		shift := uint(i * 5)
		var v uint64
		switch {
		case shift >= 64:
			v = hi >> (shift - 64)
		case shift > 59:
			v = lo>>shift | hi<<(64-shift)
		default:
			v = lo >> shift
		}
		b.WriteByte(alphabet[v&0x1f])
	}
	return b.String()
}

// Decode parses an identifier produced by Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("hand id %q: want %d characters, got %d", s, Length, len(s))
	}
	var hi, lo uint64
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("hand id %q: invalid character %q", s, s[i])
		}
		if i == 0 && v > 7 {
			return id, fmt.Errorf("hand id %q: overflows 128 bits", s)
		}
		hi = hi<<5 | lo>>59
		lo = lo<<5 | uint64(v)
	}
	for i := 7; i >= 0; i-- {
		id[i] = byte(hi)
		hi >>= 8
		id[8+i] = byte(lo)
		lo >>= 8
	}
	return id, nil
}

// Validate reports whether s is a well formed version 7 identifier.
func Validate(s string) error {
	id, err := Decode(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("hand id %q: version %d, want 7", s, id.Version())
	}
	return nil
}
