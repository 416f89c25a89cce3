package assemble

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Context IDs are ULIDs: 26-character Crockford Base32 strings with a
// timestamp prefix, so IDs sort by assembly time without an external
// dependency.

var (
	idMu  sync.Mutex
	idMS  uint64
	idSeq uint16
)

const idAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newContextID() string {
	idMu.Lock()
	defer idMu.Unlock()

	ms := uint64(time.Now().UnixMilli())
	if ms == idMS {
		idSeq++
	} else {
		idMS, idSeq = ms, 0
	}

	var b [16]byte
	// First 8 bytes: 48-bit millisecond timestamp followed by a 16-bit
	// sequence that disambiguates IDs minted within the same millisecond.
	binary.BigEndian.PutUint64(b[:8], ms<<16|uint64(idSeq))
	rand.Read(b[8:])
	return encodeULID(b)
}

func encodeULID(b [16]byte) string {
	// 128 bits -> 26 base32 characters (130 bits, top 2 bits zero-padded).
	var out [26]byte
	var acc uint64
	bits := 0
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint64(b[i]) << bits
		bits += 8
		for bits >= 5 && pos >= 0 {
			out[pos] = idAlphabet[acc&0x1f]
			acc >>= 5
			bits -= 5
			pos--
		}
	}
	for pos >= 0 {
		out[pos] = idAlphabet[acc&0x1f]
		acc >>= 5
		pos--
	}
	return string(out[:])
}
