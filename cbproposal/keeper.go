// Package cbproposal indexes received proposals by (round, value id) and
// records proposer equivocation, for a single height (spec §4.3).
package cbproposal

import "github.com/corebft/corebft/cbconsensus"

type roundValueKey struct {
	round cbconsensus.Round
	value cbconsensus.ValueID
}

type roundProposerKey struct {
	round    cbconsensus.Round
	proposer cbconsensus.Address
}

// Entry is a stored proposal together with the host's validity judgement
// for it.
type Entry struct {
	Proposal cbconsensus.SignedProposal
	Validity cbconsensus.Validity
}

// EquivocationPair is the two conflicting signed proposals recorded for a
// proposer caught proposing two different values in the same round.
type EquivocationPair struct {
	First  cbconsensus.SignedProposal
	Second cbconsensus.SignedProposal
}

// Keeper indexes proposals for a single height. Created fresh per height
// alongside the Vote Keeper, and discarded on move_to_height.
type Keeper struct {
	byRoundValue map[roundValueKey]Entry
	byRound      map[int64][]roundValueKey
	byProposer   map[roundProposerKey]cbconsensus.ValueID

	evidence map[cbconsensus.Address]EquivocationPair
}

// New creates an empty proposal Keeper.
func New() *Keeper {
	return &Keeper{
		byRoundValue: make(map[roundValueKey]Entry),
		byRound:      make(map[int64][]roundValueKey),
		byProposer:   make(map[roundProposerKey]cbconsensus.ValueID),
		evidence:     make(map[cbconsensus.Address]EquivocationPair),
	}
}

// Store inserts sp with the given validity. If proposer already proposed a
// different value in this round, the conflict is recorded as equivocation
// and the new proposal is still stored (both are kept, per spec §4.3).
func (k *Keeper) Store(sp cbconsensus.SignedProposal, validity cbconsensus.Validity) {
	p := sp.Proposal
	id := p.Value.ID()

	pk := roundProposerKey{round: p.Round, proposer: p.Proposer}
	if prevID, ok := k.byProposer[pk]; ok && prevID != id {
		if _, hasEvidence := k.evidence[p.Proposer]; !hasEvidence {
			prevKey := roundValueKey{round: p.Round, value: prevID}
			if prevEntry, ok := k.byRoundValue[prevKey]; ok {
				k.evidence[p.Proposer] = EquivocationPair{
					First:  prevEntry.Proposal,
					Second: sp,
				}
			}
		}
	} else {
		k.byProposer[pk] = id
	}

	rvk := roundValueKey{round: p.Round, value: id}
	if _, exists := k.byRoundValue[rvk]; !exists {
		n, _ := p.Round.Number()
		k.byRound[int64(n)] = append(k.byRound[int64(n)], rvk)
	}
	k.byRoundValue[rvk] = Entry{Proposal: sp, Validity: validity}
}

// Lookup returns the proposal stored for (round, valueID), if any.
func (k *Keeper) Lookup(round cbconsensus.Round, valueID cbconsensus.ValueID) (Entry, bool) {
	e, ok := k.byRoundValue[roundValueKey{round: round, value: valueID}]
	return e, ok
}

// AllInRound returns every proposal stored for round, in insertion order.
func (k *Keeper) AllInRound(round cbconsensus.Round) []Entry {
	n, ok := round.Number()
	if !ok {
		return nil
	}
	keys := k.byRound[int64(n)]
	out := make([]Entry, 0, len(keys))
	for _, rvk := range keys {
		out = append(out, k.byRoundValue[rvk])
	}
	return out
}

// Evidence returns the recorded proposer-equivocation pairs.
func (k *Keeper) Evidence() map[cbconsensus.Address]EquivocationPair {
	return k.evidence
}

// Prune drops every stored proposal for rounds strictly below minRound, in
// lock-step with cbvotekeeper.PruneVotes.
func (k *Keeper) Prune(minRound cbconsensus.Round) {
	min, ok := minRound.Number()
	if !ok {
		return
	}
	for n, keys := range k.byRound {
		if n >= int64(min) {
			continue
		}
		for _, rvk := range keys {
			delete(k.byRoundValue, rvk)
		}
		delete(k.byRound, n)
	}
}
