// Package cbintegration is a deterministic, in-process multi-driver test
// harness: it wires several cbdriver.Driver instances over one shared
// validator set and plays the role a real host/network layer would --
// resolving GetValue requests, broadcasting proposals and votes between
// drivers, and aggregating per-driver errors -- so that whole consensus
// scenarios can be exercised and asserted on in a single goroutine, with
// no real clock and no real network.
package cbintegration

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbcrypto"
	"github.com/corebft/corebft/cbcrypto/cbcryptotest"
	"github.com/corebft/corebft/cbdriver"
)

// Node is one simulated validator: a Driver plus the identity it signs
// under.
type Node struct {
	Name    string
	Address cbconsensus.Address
	Driver  *cbdriver.Driver
}

// NodeOutput pairs an Output with the Node whose Driver produced it, so a
// harness driving a Network can tell who proposed, who voted, and who
// decided.
type NodeOutput struct {
	Node   *Node
	Output cbdriver.Output
}

// Network is a fixed validator set, each running its own Driver at the
// same height, connected by perfectly synchronous, order-preserving
// delivery: nothing here models partitions, delay, or message loss --
// those are left to the host this core is embedded in, per the explicit
// network-topology non-goal. What it does model is the event-driven
// handshake between a Driver's Outputs and the Inputs they provoke on
// every other Driver.
type Network struct {
	Height     cbconsensus.Height
	Validators cbconsensus.ValidatorSet
	Scheme     cbcrypto.SignatureScheme
	Nodes      []*Node

	log *slog.Logger
}

// New builds a Network of n deterministic validators at height, each
// running its own Driver over the shared validator set, using
// cbconsensus.RoundRobinProposerSelector and ed25519 signing.
func New(log *slog.Logger, height cbconsensus.Height, n int) *Network {
	if log == nil {
		log = slog.Default()
	}
	pv := cbcryptotest.DeterministicValidatorsEd25519(n)
	vs := pv.ValidatorSet()
	scheme := cbcrypto.StandardSignatureScheme{}

	net := &Network{
		Height:     height,
		Validators: vs,
		Scheme:     scheme,
		log:        log,
	}
	for _, v := range pv {
		d, err := cbdriver.New(height, vs,
			cbdriver.WithAddress(v.Val.Address),
			cbdriver.WithSigner(v.Signer),
			cbdriver.WithSignatureScheme(scheme),
			cbdriver.WithProposerSelector(cbconsensus.RoundRobinProposerSelector{}),
			cbdriver.WithLogger(log.With("node", v.Name)),
		)
		if err != nil {
			// Every required option is supplied above; construction from
			// deterministic fixtures cannot fail.
			panic(err)
		}
		net.Nodes = append(net.Nodes, &Node{Name: v.Name, Address: v.Val.Address, Driver: d})
	}
	return net
}

// MoveToHeight resets every Node's Driver to a fresh height, keeping the
// same validator set (spec §4.5.2).
func (net *Network) MoveToHeight(height cbconsensus.Height) {
	net.Height = height
	for _, n := range net.Nodes {
		n.Driver.MoveToHeight(height, net.Validators)
	}
}

// byAddress finds the Node acting as addr, if any.
func (net *Network) byAddress(addr cbconsensus.Address) (*Node, bool) {
	for _, n := range net.Nodes {
		if n.Address == addr {
			return n, true
		}
	}
	return nil, false
}

// deliverAll runs in through every Node's Driver and returns every Output
// produced, tagged with its producing Node. A Driver erroring on in (an
// injected fault, a deliberately malformed vote in a Byzantine-behavior
// test) does not stop delivery to the rest of the network; every error
// seen is aggregated and returned alongside whatever outputs the healthy
// Drivers still produced.
func (net *Network) deliverAll(in cbdriver.Input) ([]NodeOutput, error) {
	var outs []NodeOutput
	var errs *multierror.Error
	for _, n := range net.Nodes {
		os, err := n.Driver.Process(in)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("node %s: %w", n.Name, err))
			continue
		}
		for _, o := range os {
			outs = append(outs, NodeOutput{Node: n, Output: o})
		}
	}
	return outs, errs.ErrorOrNil()
}

// deliverOne runs in through exactly one Node's Driver.
func (net *Network) deliverOne(n *Node, in cbdriver.Input) ([]NodeOutput, error) {
	os, err := n.Driver.Process(in)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.Name, err)
	}
	outs := make([]NodeOutput, 0, len(os))
	for _, o := range os {
		outs = append(outs, NodeOutput{Node: n, Output: o})
	}
	return outs, nil
}
