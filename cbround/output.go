package cbround

import "github.com/corebft/corebft/cbconsensus"

// OutputKind discriminates the variants of Output (spec §4.1).
type OutputKind uint8

const (
	OutputNone OutputKind = iota
	OutputNewRound
	OutputProposal
	OutputVote
	OutputScheduleTimeout
	OutputGetValueAndScheduleTimeout
	OutputDecision
)

//go:generate stringer -type OutputKind -trimprefix Output .

// Output is the tagged union of the single effect Apply may return. A
// fixpoint call may also mutate pending-input bookkeeping on the Driver,
// but the RSM itself always returns at most one Output per Apply call.
type Output struct {
	Kind OutputKind

	Round    cbconsensus.Round // NewRound
	Proposal cbconsensus.Proposal
	Vote     cbconsensus.Vote
	Timeout  Timeout // ScheduleTimeout, GetValueAndScheduleTimeout

	// GetValueHeight/GetValueRound are populated only for
	// OutputGetValueAndScheduleTimeout.
	GetValueHeight cbconsensus.Height
	GetValueRound  cbconsensus.Round

	DecisionRound cbconsensus.Round // Decision
}

func newRoundOutput(r cbconsensus.Round) *Output {
	return &Output{Kind: OutputNewRound, Round: r}
}

func proposalOutput(p cbconsensus.Proposal) *Output {
	return &Output{Kind: OutputProposal, Proposal: p}
}

func voteOutput(v cbconsensus.Vote) *Output {
	return &Output{Kind: OutputVote, Vote: v}
}

func scheduleTimeoutOutput(t Timeout) *Output {
	return &Output{Kind: OutputScheduleTimeout, Timeout: t}
}

func getValueOutput(h cbconsensus.Height, r cbconsensus.Round, t Timeout) *Output {
	return &Output{Kind: OutputGetValueAndScheduleTimeout, GetValueHeight: h, GetValueRound: r, Timeout: t}
}

func decisionOutput(r cbconsensus.Round, p cbconsensus.Proposal) *Output {
	return &Output{Kind: OutputDecision, DecisionRound: r, Proposal: p, Round: r}
}
