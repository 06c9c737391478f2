package cbdriver

import "github.com/corebft/corebft/cbconsensus"

type roundValueKey struct {
	round cbconsensus.Round
	value cbconsensus.ValueID
}

// certStore holds the certificates a Driver has built or been handed for
// the current height (spec §4.5.3, §4.5.4).
type certStore struct {
	commit map[roundValueKey]cbconsensus.CommitCertificate
	polka  map[roundValueKey]cbconsensus.PolkaCertificate

	// enterRound is the most recently built/received justification for
	// entering a round out of band (precommit quorum or skip). Cleared on
	// move_to_height.
	enterRound *cbconsensus.EnterRoundCertificate
}

func newCertStore() *certStore {
	return &certStore{
		commit: make(map[roundValueKey]cbconsensus.CommitCertificate),
		polka:  make(map[roundValueKey]cbconsensus.PolkaCertificate),
	}
}

func (cs *certStore) hasCommit(round cbconsensus.Round, id cbconsensus.ValueID) bool {
	_, ok := cs.commit[roundValueKey{round: round, value: id}]
	return ok
}

func (cs *certStore) hasPolka(round cbconsensus.Round, id cbconsensus.ValueID) bool {
	_, ok := cs.polka[roundValueKey{round: round, value: id}]
	return ok
}

func (cs *certStore) putCommit(c cbconsensus.CommitCertificate) {
	cs.commit[roundValueKey{round: c.Round, value: c.ValueID}] = c
}

func (cs *certStore) putPolka(c cbconsensus.PolkaCertificate) {
	cs.polka[roundValueKey{round: c.Round, value: c.ValueID}] = c
}

// CommitCertificates returns every commit certificate built or received
// so far this height.
func (cs *certStore) CommitCertificates() []cbconsensus.CommitCertificate {
	out := make([]cbconsensus.CommitCertificate, 0, len(cs.commit))
	for _, c := range cs.commit {
		out = append(out, c)
	}
	return out
}

// PolkaCertificates returns every polka certificate built or received so
// far this height, excluding any pruned by PruneBelow.
func (cs *certStore) PolkaCertificates() []cbconsensus.PolkaCertificate {
	out := make([]cbconsensus.PolkaCertificate, 0, len(cs.polka))
	for _, c := range cs.polka {
		out = append(out, c)
	}
	return out
}

// PruneBelow drops polka certificates for rounds strictly below
// minRound, in lock-step with cbvotekeeper.VoteKeeper.PruneVotes and
// cbproposal.Keeper.Prune (spec §4.2 "Pruning").
func (cs *certStore) PruneBelow(minRound cbconsensus.Round) {
	min, ok := minRound.Number()
	if !ok {
		return
	}
	for k := range cs.polka {
		if n, ok := k.round.Number(); ok && n < min {
			delete(cs.polka, k)
		}
	}
}
