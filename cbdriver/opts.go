package cbdriver

import (
	"fmt"
	"log/slog"

	"github.com/corebft/corebft/cbconsensus"
	"github.com/corebft/corebft/cbcrypto"
)

// Opt is an option for New.
// The underlying function signature for Opt is subject to change at any
// time. Only Opt values returned by With* functions may be considered
// stable values.
type Opt func(*Driver) error

// WithAddress sets the address this Driver acts as, for proposer and
// self-vote-policy checks. It is optional: without it the Driver only
// observes and emits no votes of its own.
func WithAddress(addr cbconsensus.Address) Opt {
	return func(d *Driver) error {
		d.address = addr
		d.votePolicy.address = addr
		return nil
	}
}

// WithSigner sets the signer used to sign outgoing proposals and votes.
// If omitted, the Driver still emits its Propose/Vote outputs, but
// unsigned.
func WithSigner(s cbcrypto.Signer) Opt {
	return func(d *Driver) error {
		d.signer = s
		return nil
	}
}

// WithSignatureScheme sets the scheme used to derive sign bytes for
// votes and proposals. This option is required whenever WithSigner is
// used.
func WithSignatureScheme(s cbcrypto.SignatureScheme) Opt {
	return func(d *Driver) error {
		d.sigScheme = s
		return nil
	}
}

// WithProposerSelector sets the strategy used to pick a round's proposer.
// This option is required.
func WithProposerSelector(ps cbconsensus.ProposerSelector) Opt {
	return func(d *Driver) error {
		d.proposerSelector = ps
		return nil
	}
}

// WithLogger sets the Driver's logger. If omitted, slog.Default() is
// used.
func WithLogger(log *slog.Logger) Opt {
	return func(d *Driver) error {
		d.log = log
		return nil
	}
}

func applyOpts(d *Driver, opts []Opt) error {
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return fmt.Errorf("cbdriver: applying option: %w", err)
		}
	}
	return nil
}
