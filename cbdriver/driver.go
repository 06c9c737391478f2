// Package cbdriver implements the Driver: the orchestrator that wires the
// Round State Machine, Vote Keeper, Proposal Keeper and Multiplexer
// together into the single synchronous entry point a host calls once per
// external event (spec §4.5, §4.6).
package cbdriver

import (
	"context"
	"log/slog"
	"runtime/trace"

	"github.com/corebft/corebft/cbcert"
	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbcrypto"
	"github.com/corebft/corebft/cbmux"
	"github.com/corebft/corebft/cbproposal"
	"github.com/corebft/corebft/cbround"
	"github.com/corebft/corebft/cbvotekeeper"
	"github.com/google/uuid"
)

// Driver is the per-height consensus orchestrator. A Driver instance is
// owned exclusively by one enclosing actor and is never shared (spec
// §5); every state mutation flows through Process.
type Driver struct {
	id uuid.UUID

	address          cbconsensus.Address
	signer           cbcrypto.Signer
	sigScheme        cbcrypto.SignatureScheme
	proposerSelector cbconsensus.ProposerSelector
	log              *slog.Logger

	height     cbconsensus.Height
	validators cbconsensus.ValidatorSet

	state *cbround.State
	vk    *cbvotekeeper.VoteKeeper
	pk    *cbproposal.Keeper
	mux   *cbmux.Mux
	certs *certStore

	votePolicy selfVotePolicy
	proposers  map[int64]cbconsensus.Address
	pending    []cbmux.PendingInput
}

// New creates a Driver for height using validators, applying opts.
// WithProposerSelector is required. WithAddress is optional: a Driver
// with no address configured only ever observes, never casts a vote of
// its own.
func New(height cbconsensus.Height, validators cbconsensus.ValidatorSet, opts ...Opt) (*Driver, error) {
	d := &Driver{
		id:  uuid.New(),
		log: slog.Default(),
	}
	if err := applyOpts(d, opts); err != nil {
		return nil, err
	}
	if d.proposerSelector == nil {
		return nil, errMissingOpt("WithProposerSelector")
	}
	d.log = d.log.With("driver_id", d.id)
	d.resetForHeight(height, validators)
	return d, nil
}

// ID returns the UUID assigned to this Driver at construction, used to
// disambiguate log lines and trace tasks when several Drivers run in one
// process (e.g. cbintegration).
func (d *Driver) ID() uuid.UUID { return d.id }

type errMissingOpt string

func (e errMissingOpt) Error() string { return "cbdriver: missing required option " + string(e) }

// MoveToHeight implements spec §4.5.2: reset every per-height subsystem
// and replace the round state wholesale.
func (d *Driver) MoveToHeight(height cbconsensus.Height, validators cbconsensus.ValidatorSet) {
	d.resetForHeight(height, validators)
}

func (d *Driver) resetForHeight(height cbconsensus.Height, validators cbconsensus.ValidatorSet) {
	d.height = height
	d.validators = validators
	d.state = cbround.New(height)
	d.vk = cbvotekeeper.New(validators)
	d.pk = cbproposal.New()
	d.certs = newCertStore()
	d.proposers = make(map[int64]cbconsensus.Address)
	d.pending = nil
	d.votePolicy = selfVotePolicy{address: d.address}
	d.mux = &cbmux.Mux{
		VK:                   d.vk,
		PK:                   d.pk,
		HasCommitCertificate: d.certs.hasCommit,
		HasPolkaCertificate:  d.certs.hasPolka,
	}
}

// Height returns the height this Driver is currently processing.
func (d *Driver) Height() cbconsensus.Height { return d.height }

// State exposes the current round state, for inspection (e.g. cbinspect)
// and tests. Callers must not mutate the returned value.
func (d *Driver) State() *cbround.State { return d.state }

// Proposer returns the address resolved as proposer for round, if a
// NewRound input has already named one.
func (d *Driver) Proposer(round cbconsensus.Round) (cbconsensus.Address, bool) {
	n, ok := round.Number()
	if !ok {
		return "", false
	}
	addr, ok := d.proposers[int64(n)]
	return addr, ok
}

// CommitCertificates returns every commit certificate built or received
// this height.
func (d *Driver) CommitCertificates() []cbconsensus.CommitCertificate {
	return d.certs.CommitCertificates()
}

// PolkaCertificates returns every polka certificate built or received
// this height.
func (d *Driver) PolkaCertificates() []cbconsensus.PolkaCertificate {
	return d.certs.PolkaCertificates()
}

// Evidence returns every equivocation pair recorded this height, across
// both votes and proposals.
func (d *Driver) Evidence() (votes map[cbconsensus.Address]cbvotekeeper.EquivocationPair, proposals map[cbconsensus.Address]cbproposal.EquivocationPair) {
	votes = make(map[cbconsensus.Address]cbvotekeeper.EquivocationPair)
	for _, r := range d.vk.Rounds() {
		pr := d.vk.Round(r)
		if pr == nil {
			continue
		}
		for addr, ev := range pr.Evidence() {
			votes[addr] = ev
		}
	}
	return votes, d.pk.Evidence()
}

// VotesInRound returns every distinct vote recorded for round, for
// read-only inspection (cbinspect). Callers must not mutate the
// returned slice's contents.
func (d *Driver) VotesInRound(round cbconsensus.Round) []cbconsensus.SignedVote {
	pr := d.vk.Round(round)
	if pr == nil {
		return nil
	}
	return pr.AllReceivedVotes()
}

// RoundCertificate returns the most recently built/known justification
// for entering a round out of band, if any (spec §4.5.3).
func (d *Driver) RoundCertificate() (cbconsensus.EnterRoundCertificate, bool) {
	if d.certs.enterRound == nil {
		return cbconsensus.EnterRoundCertificate{}, false
	}
	return *d.certs.enterRound, true
}

// PruneBelow drops Vote Keeper, Proposal Keeper, and polka-certificate
// entries for rounds strictly below minRound (spec §4.2 "Pruning").
func (d *Driver) PruneBelow(minRound cbconsensus.Round) {
	d.vk.PruneVotes(minRound)
	d.pk.Prune(minRound)
	d.certs.PruneBelow(minRound)
}

func (d *Driver) infoFor(round cbconsensus.Round) cbround.Info {
	n, _ := round.Number()
	return cbround.Info{
		InputRound:      round,
		Address:         d.address,
		ProposerAddress: d.proposers[int64(n)],
	}
}

func roundAgnostic(kind cbround.InputKind) bool {
	switch kind {
	case cbround.InputSkipRound, cbround.InputProposalAndPrecommitValue:
		return true
	}
	return false
}

func (d *Driver) roundMatches(round cbconsensus.Round, kind cbround.InputKind) bool {
	if roundAgnostic(kind) {
		return true
	}
	return round == d.state.Round
}

// applyRound calls cbround.Apply, then enqueues whatever
// multiplex_step_change produces if this call caused a step change (spec
// §4.4.3).
func (d *Driver) applyRound(round cbconsensus.Round, in cbround.Input) *cbround.Output {
	prevStep := d.state.Step
	o := cbround.Apply(d.state, d.infoFor(round), in)
	if d.state.Step != prevStep && d.state.Step != cbround.StepUnstarted {
		more := cbmux.MultiplexStepChange(d.mux, d.state.Round, d.state.Step, d.state.Decision != nil)
		d.pending = append(d.pending, more...)
	}
	return o
}

// Process implements spec §4.5 "process(input) -> [Output]": apply the
// input, lift its primary output, then drain the pending-input queue to
// a fixpoint.
func (d *Driver) Process(in Input) ([]Output, error) {
	ctx, task := trace.NewTask(context.Background(), "cbdriver.Process")
	defer task.End()
	trace.Log(ctx, "driver_id", d.id.String())

	primary, err := d.applyExternal(in)
	if err != nil {
		return nil, err
	}

	var outs []Output
	outs = append(outs, d.liftAndTrack(primary)...)

	for len(d.pending) > 0 {
		pi := d.pending[0]
		d.pending = d.pending[1:]

		if !d.roundMatches(pi.Round, pi.Input.Kind) {
			continue
		}

		region := trace.StartRegion(ctx, "cbdriver.drain")
		o := d.applyRound(pi.Round, pi.Input)
		outs = append(outs, d.liftAndTrack(o)...)
		region.End()
	}

	return outs, nil
}

func (d *Driver) liftAndTrack(o *cbround.Output) []Output {
	lifted := lift(d.height, o)
	out := make([]Output, 0, len(lifted))
	for _, l := range lifted {
		switch l.Kind {
		case OutputNewRound:
			d.log.Info("entering round", "height", l.Height, "round", l.Round)
		case OutputVote:
			if d.address == "" {
				// No address configured: this Driver only observes.
				continue
			}
			if !d.votePolicy.allow(l.Vote.Vote, validOf(d.state)) {
				d.log.Debug("suppressed self-vote", "vote", l.Vote.Vote)
				continue
			}
			l.Vote = d.signVote(l.Vote.Vote)
		case OutputPropose:
			l.Proposal = d.signProposal(l.Proposal.Proposal)
		case OutputDecide:
			d.log.Info("decided", "height", d.height, "round", l.Round, "value", l.Proposal.Proposal.Value.ID())
			d.buildCommitCertificateForDecision(l.Round, l.Proposal.Proposal.Value.ID())
		}
		out = append(out, l)
	}
	return out
}

func validOf(s *cbround.State) *roundValue {
	if s.Valid == nil {
		return nil
	}
	return &roundValue{Value: s.Valid.Value, Round: s.Valid.Round}
}

func (d *Driver) signVote(v cbconsensus.Vote) cbconsensus.SignedVote {
	if d.signer == nil || d.sigScheme == nil || v.Voter != d.address {
		return cbconsensus.SignedVote{Vote: v}
	}
	sv, err := cbcrypto.SignVote(d.signer, d.sigScheme, v)
	if err != nil {
		d.log.Error("failed to sign vote", "error", err)
		return cbconsensus.SignedVote{Vote: v}
	}
	return sv
}

func (d *Driver) signProposal(p cbconsensus.Proposal) cbconsensus.SignedProposal {
	if d.signer == nil || d.sigScheme == nil || p.Proposer != d.address {
		return cbconsensus.SignedProposal{Proposal: p}
	}
	sp, err := cbcrypto.SignProposal(d.signer, d.sigScheme, p)
	if err != nil {
		d.log.Error("failed to sign proposal", "error", err)
		return cbconsensus.SignedProposal{Proposal: p}
	}
	return sp
}

func (d *Driver) buildCommitCertificateForDecision(round cbconsensus.Round, id cbconsensus.ValueID) {
	pr := d.vk.Round(round)
	if pr == nil {
		return
	}
	if d.certs.hasCommit(round, id) {
		return
	}
	d.certs.putCommit(cbcert.BuildCommitCertificate(d.height, round, id, pr))
}
