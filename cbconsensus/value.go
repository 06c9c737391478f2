package cbconsensus

import "golang.org/x/crypto/blake2b"

// Address identifies a validator. The core treats it as an opaque
// comparable byte string; concrete signature schemes decide its shape.
type Address string

// ValueID is the stable, opaque identity of a Value. The core compares and
// stores only ValueIDs; the full value is carried only on Proposal.
type ValueID [32]byte

// String returns the hex encoding of the value ID, for logging.
func (id ValueID) String() string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, len(id)*2)
	for i, b := range id {
		buf[i*2] = hextable[b>>4]
		buf[i*2+1] = hextable[b&0x0f]
	}
	return string(buf)
}

// Value is the opaque application payload carried by a Proposal. The core
// never inspects Data; it only ever asks for the value's ID.
type Value struct {
	Data []byte
}

// ID computes the deterministic ValueID of v via BLAKE2b-256.
//
// This is the default, concrete instance of the ValueId::of capability
// (spec §6.1); a host may substitute any other deterministic hash, but the
// core only ever depends on the capability's signature, not this
// implementation.
func (v Value) ID() ValueID {
	return blake2b.Sum256(v.Data)
}
