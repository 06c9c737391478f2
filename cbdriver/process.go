package cbdriver

import (
	"github.com/corebft/corebft/cbcert"
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbmux"
	"github.com/corebft/corebft/cbround"
	"github.com/corebft/corebft/cbvotekeeper"
)

// applyExternal dispatches the host-supplied Input to the right
// subsystem and returns the single primary cbround.Output it produces,
// per spec §4.5's per-input-kind table. Anything further the primary
// transition unlocks is queued onto d.pending by applyRound, and drained
// by Process's fixpoint loop.
func (d *Driver) applyExternal(in Input) (*cbround.Output, error) {
	switch in.Kind {
	case InputNewRound:
		return d.applyNewRound(in)
	case InputProposeValue:
		o := d.applyRound(in.Round, cbround.ProposeValueInput(in.Value))
		return o, nil
	case InputProposal:
		return d.applyProposal(in)
	case InputVote:
		return d.applyVote(in)
	case InputCommitCertificate:
		return d.applyCommitCertificate(in)
	case InputPolkaCertificate:
		return d.applyPolkaCertificate(in)
	case InputTimeoutElapsed:
		return d.applyTimeoutElapsed(in)
	default:
		return nil, nil
	}
}

func (d *Driver) applyNewRound(in Input) (*cbround.Output, error) {
	proposer := in.Proposer
	if proposer == "" {
		v, err := d.proposerSelector.SelectProposer(d.validators, d.height, in.Round)
		if err != nil {
			return nil, err
		}
		if _, ok := d.validators.GetByAddress(v.Address); !ok {
			return nil, cbconsensus.ProposerNotFound{Address: v.Address}
		}
		proposer = v.Address
	}

	n, _ := in.Round.Number()
	d.proposers[int64(n)] = proposer

	o := d.applyRound(in.Round, cbround.NewRoundInput(in.Round))
	return o, nil
}

func (d *Driver) applyProposal(in Input) (*cbround.Output, error) {
	p := in.Proposal.Proposal
	if p.Height != d.height {
		return nil, cbconsensus.InvalidProposalHeight{ProposalHeight: p.Height, ConsensusHeight: d.height}
	}

	d.pk.Store(in.Proposal, in.Validity)

	pendingIn := cbmux.MultiplexProposal(d.mux, d.state.Round, d.state.Step, d.state.Decision != nil, in.Proposal, in.Validity)
	if pendingIn == nil {
		return nil, nil
	}
	if !d.roundMatches(p.Round, pendingIn.Kind) {
		return nil, nil
	}
	o := d.applyRound(p.Round, *pendingIn)
	return o, nil
}

func (d *Driver) applyVote(in Input) (*cbround.Output, error) {
	v := in.Vote.Vote
	if v.Height != d.height {
		return nil, cbconsensus.InvalidVoteHeight{VoteHeight: v.Height, ConsensusHeight: d.height}
	}

	pr := d.vk.Round(v.Round)
	evidenceBefore := len(pr.Evidence())

	threshold, err := d.vk.ApplyVote(in.Vote, d.state.Round)
	if err != nil {
		return nil, err
	}
	if len(pr.Evidence()) > evidenceBefore {
		d.log.Warn("vote equivocation detected", "voter", v.Voter, "round", v.Round)
	}
	if threshold == nil {
		return nil, nil
	}

	d.buildCertificateForThreshold(*threshold, v.Round)

	pendingIn := cbmux.MultiplexVoteThreshold(d.mux, *threshold, v.Round, d.state.Round)
	if pendingIn == nil {
		return nil, nil
	}
	if !d.roundMatches(pendingIn.Round, pendingIn.Input.Kind) {
		return nil, nil
	}
	o := d.applyRound(pendingIn.Round, pendingIn.Input)
	return o, nil
}

func (d *Driver) applyCommitCertificate(in Input) (*cbround.Output, error) {
	c := in.CommitCertificate
	if c.Height != d.height {
		return nil, cbconsensus.InvalidCertificateHeight{CertificateHeight: c.Height, ConsensusHeight: d.height}
	}
	d.certs.putCommit(c)

	if d.state.Decision != nil {
		return nil, nil
	}
	entry, found := d.pk.Lookup(c.Round, c.ValueID)
	if !found || !entry.Validity.IsValid() {
		return nil, nil
	}
	o := d.applyRound(c.Round, cbround.ProposalAndPrecommitValueInput(entry.Proposal.Proposal))
	return o, nil
}

func (d *Driver) applyPolkaCertificate(in Input) (*cbround.Output, error) {
	c := in.PolkaCertificate
	if c.Height != d.height {
		return nil, cbconsensus.InvalidCertificateHeight{CertificateHeight: c.Height, ConsensusHeight: d.height}
	}
	d.certs.putPolka(c)

	threshold := cbvotekeeper.Threshold{Kind: cbvotekeeper.ThresholdPolkaValue, Value: c.ValueID}
	pendingIn := cbmux.MultiplexVoteThreshold(d.mux, threshold, c.Round, d.state.Round)
	if pendingIn == nil {
		return nil, nil
	}
	if !d.roundMatches(pendingIn.Round, pendingIn.Input.Kind) {
		return nil, nil
	}
	o := d.applyRound(pendingIn.Round, pendingIn.Input)
	return o, nil
}

func (d *Driver) applyTimeoutElapsed(in Input) (*cbround.Output, error) {
	var rin cbround.Input
	switch in.Timeout.Kind {
	case cbround.TimeoutKindPropose:
		rin = cbround.TimeoutProposeInput()
	case cbround.TimeoutKindPrevote:
		rin = cbround.TimeoutPrevoteInput()
	case cbround.TimeoutKindPrecommit:
		rin = cbround.TimeoutPrecommitInput()
	default:
		// Commit and Rebroadcast timeouts are host-level concerns; the
		// RSM has no rule for them.
		return nil, nil
	}
	if in.Timeout.Round != d.state.Round {
		// Stale timeout for a round the Driver has already left.
		return nil, nil
	}
	o := d.applyRound(in.Timeout.Round, rin)
	return o, nil
}

// buildCertificateForThreshold implements spec §4.5.3: materialize and
// store the certificate a threshold-crossing event justifies, so it can
// later serve store_and_multiplex_commit_certificate / polka_certificate
// for peers, and RoundCertificate for the host's own use re-entering a
// round out of band.
func (d *Driver) buildCertificateForThreshold(t cbvotekeeper.Threshold, round cbconsensus.Round) {
	pr := d.vk.Round(round)
	if pr == nil {
		return
	}
	switch t.Kind {
	case cbvotekeeper.ThresholdPolkaValue:
		if d.certs.hasPolka(round, t.Value) {
			return
		}
		d.certs.putPolka(cbcert.BuildPolkaCertificate(d.height, round, t.Value, pr))

	case cbvotekeeper.ThresholdPrecommitAny:
		c := cbcert.BuildPrecommitEnterRoundCertificate(d.height, round, pr)
		d.certs.enterRound = &c

	case cbvotekeeper.ThresholdSkipRound:
		c := cbcert.BuildSkipEnterRoundCertificate(d.height, t.Round, pr)
		d.certs.enterRound = &c
	}
}
