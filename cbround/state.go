// Package cbround implements the Round State Machine (RSM): the pure,
// synchronous transition function at the algorithmic heart of the
// consensus engine. It has no I/O and no notion of wall-clock time; every
// external effect is represented as an Output value and left for a
// caller to act on.
package cbround

import "github.com/corebft/corebft/cbconsensus"

// Step is the RSM's position within a round.
type Step uint8

const (
	StepUnstarted Step = iota
	StepPropose
	StepPrevote
	StepPrecommit
	StepCommit
)

//go:generate stringer -type Step -trimprefix Step .

// LockedOrValid records a value together with the round in which it was
// locked (last precommitted) or judged valid (last polka'd). The full
// Value is kept, not just its id, because a proposer re-proposing its
// valid value must supply the actual payload again (spec §4.1 "enter
// round" rule).
type LockedOrValid struct {
	Value cbconsensus.Value
	Round cbconsensus.Round
}

// Decision is the value and round decided for a height. Once set on a
// State it is never mutated (invariant I2).
type Decision struct {
	Round    cbconsensus.Round
	Proposal cbconsensus.Proposal
}

// State is the RSM's state for a single height: the current round, step,
// and the locked/valid/decision bookkeeping that must survive across
// round transitions within that height.
//
// A State is constructed fresh per height via New and mutated only by
// Apply; the Driver replaces it wholesale on move_to_height.
type State struct {
	Height cbconsensus.Height
	Round  cbconsensus.Round
	Step   Step

	Locked   *LockedOrValid
	Valid    *LockedOrValid
	Decision *Decision

	// polkaAnyScheduled and precommitAnyScheduled track, per round, whether
	// the once-only PolkaAny/PrecommitAny timeout has already been
	// scheduled in this round, so a repeated threshold-crossing input is a
	// no-op (spec §4.1 idempotence guarantees). Keyed by round number since
	// a single State instance lives across a round bump within a height.
	polkaAnyScheduled     map[int64]bool
	precommitAnyScheduled map[int64]bool
}

// New creates a State at the given height, with round Nil and step
// Unstarted, ready to receive its first NewRound input.
func New(height cbconsensus.Height) *State {
	return &State{
		Height:                height,
		Round:                 cbconsensus.RoundNil,
		Step:                  StepUnstarted,
		polkaAnyScheduled:     make(map[int64]bool),
		precommitAnyScheduled: make(map[int64]bool),
	}
}

func (s *State) markPolkaAnyScheduled(r cbconsensus.Round) bool {
	if s.polkaAnyScheduled[int64(r)] {
		return true
	}
	s.polkaAnyScheduled[int64(r)] = true
	return false
}

func (s *State) markPrecommitAnyScheduled(r cbconsensus.Round) bool {
	if s.precommitAnyScheduled[int64(r)] {
		return true
	}
	s.precommitAnyScheduled[int64(r)] = true
	return false
}
