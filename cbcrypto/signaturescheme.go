package cbcrypto

import (
	"encoding/binary"

	"github.com/corebft/corebft/cbconsensus"
)

// SignatureScheme builds the canonical bytes a Signer signs for a Vote or
// Proposal, and the corresponding verification. The core depends only on
// this capability's contract (spec §6.1: sign_vote, sign_proposal,
// verify_signed_vote, verify_signed_proposal), never on a concrete scheme.
type SignatureScheme interface {
	VoteSignBytes(v cbconsensus.Vote) []byte
	ProposalSignBytes(p cbconsensus.Proposal) []byte
}

// StandardSignatureScheme is the default SignatureScheme: a flat,
// unambiguous concatenation of a vote's kind, height, round and value, or
// of a proposal's height, round, POL round and value ID, so that two
// votes/proposals differing in any of those fields produce different sign
// bytes. A vote's Voter and Extension and a proposal's Proposer are not
// part of the sign bytes.
type StandardSignatureScheme struct{}

func (StandardSignatureScheme) VoteSignBytes(v cbconsensus.Vote) []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, byte(v.Kind))
	buf = appendUint64(buf, uint64(v.Height))
	buf = appendUint64(buf, uint64(roundBits(v.Round)))
	if val, ok := v.Value.Unwrap(); ok {
		buf = append(buf, 1)
		buf = append(buf, val[:]...)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (StandardSignatureScheme) ProposalSignBytes(p cbconsensus.Proposal) []byte {
	buf := make([]byte, 0, 64)
	buf = appendUint64(buf, uint64(p.Height))
	buf = appendUint64(buf, uint64(roundBits(p.Round)))
	buf = appendUint64(buf, uint64(roundBits(p.PolRound)))
	id := p.Value.ID()
	buf = append(buf, id[:]...)
	return buf
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// roundBits encodes a Round (including RoundNil) losslessly as a uint64's
// bit pattern, so nil and every concrete round number produce distinct
// sign bytes.
func roundBits(r cbconsensus.Round) int64 {
	return int64(r)
}

// SignVote signs v with signer and scheme, returning the SignedVote.
func SignVote(signer Signer, scheme SignatureScheme, v cbconsensus.Vote) (cbconsensus.SignedVote, error) {
	sig, err := signer.Sign(scheme.VoteSignBytes(v))
	if err != nil {
		return cbconsensus.SignedVote{}, err
	}
	return cbconsensus.SignedVote{Vote: v, Signature: sig}, nil
}

// VerifySignedVote reports whether sv's signature is valid under pub and scheme.
func VerifySignedVote(pub PubKey, scheme SignatureScheme, sv cbconsensus.SignedVote) bool {
	return pub.Verify(scheme.VoteSignBytes(sv.Vote), sv.Signature)
}

// SignProposal signs p with signer and scheme, returning the SignedProposal.
func SignProposal(signer Signer, scheme SignatureScheme, p cbconsensus.Proposal) (cbconsensus.SignedProposal, error) {
	sig, err := signer.Sign(scheme.ProposalSignBytes(p))
	if err != nil {
		return cbconsensus.SignedProposal{}, err
	}
	return cbconsensus.SignedProposal{Proposal: p, Signature: sig}, nil
}

// VerifySignedProposal reports whether sp's signature is valid under pub and scheme.
func VerifySignedProposal(pub PubKey, scheme SignatureScheme, sp cbconsensus.SignedProposal) bool {
	return pub.Verify(scheme.ProposalSignBytes(sp.Proposal), sp.Signature)
}
