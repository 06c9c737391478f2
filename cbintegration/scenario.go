package cbintegration

import (
	"fmt"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbdriver"
)

// Result is what RunHappyPath reports once every Node has decided. No
// Result is returned if the step budget runs out first.
type Result struct {
	Decided map[cbconsensus.Address]cbconsensus.ValueID
	Rounds  int
}

// RunHappyPath drives every Node in net through a single height under
// perfectly synchronous delivery and no faults: round 0's proposer
// proposes value, every Node relays its proposal and votes to every other
// Node, and the harness asserts every Node reaches the same decision in
// round 0 -- the multi-driver generalization of a single proposer's
// happy path.
//
// maxSteps bounds the event-queue drain so a wiring bug (an Output that
// never provokes the Input it should) fails fast with an error instead of
// hanging.
func (net *Network) RunHappyPath(value cbconsensus.Value, maxSteps int) (*Result, error) {
	round0 := cbconsensus.NewRound(0)

	type pendingDelivery struct {
		target *Node // nil means "everyone"
		input  cbdriver.Input
	}

	queue := []pendingDelivery{
		{target: nil, input: cbdriver.NewRoundInput(net.Height, round0, "")},
	}

	decided := make(map[cbconsensus.Address]cbconsensus.ValueID)

	enqueue := func(outs []NodeOutput) error {
		for _, no := range outs {
			switch no.Output.Kind {
			case cbdriver.OutputGetValue:
				queue = append(queue, pendingDelivery{
					target: no.Node,
					input:  cbdriver.ProposeValueInput(no.Output.Round, value),
				})
			case cbdriver.OutputPropose:
				queue = append(queue, pendingDelivery{
					input: cbdriver.ProposalInput(no.Output.Proposal, cbconsensus.ValidityValid),
				})
			case cbdriver.OutputVote:
				queue = append(queue, pendingDelivery{
					input: cbdriver.VoteInput(no.Output.Vote),
				})
			case cbdriver.OutputDecide:
				id := no.Output.Proposal.Proposal.Value.ID()
				if no.Output.Round != round0 || id != value.ID() {
					return fmt.Errorf("cbintegration: node %s decided %s in round %s, want %s in round 0",
						no.Node.Name, id, no.Output.Round, value.ID())
				}
				decided[no.Node.Address] = id
			case cbdriver.OutputScheduleTimeout, cbdriver.OutputNewRound:
				// No clock in this harness; round-0 happy path never
				// needs a timeout to actually fire.
			}
		}
		return nil
	}

	steps := 0
	for len(queue) > 0 {
		steps++
		if steps > maxSteps {
			return nil, fmt.Errorf("cbintegration: exceeded %d steps without every node deciding (%d/%d decided)",
				maxSteps, len(decided), len(net.Nodes))
		}

		d := queue[0]
		queue = queue[1:]

		var (
			outs []NodeOutput
			err  error
		)
		if d.target != nil {
			outs, err = net.deliverOne(d.target, d.input)
		} else {
			outs, err = net.deliverAll(d.input)
		}
		if err != nil {
			return nil, err
		}
		if err := enqueue(outs); err != nil {
			return nil, err
		}
	}

	if len(decided) != len(net.Nodes) {
		return nil, fmt.Errorf("cbintegration: only %d/%d nodes decided", len(decided), len(net.Nodes))
	}

	return &Result{Decided: decided, Rounds: 1}, nil
}
