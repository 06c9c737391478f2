// Package cbtimeout implements the per-round timeout duration rule (spec
// §4.7) and a reference scheduler built on benbjohnson/clock, so that
// tests can control time deterministically instead of racing real
// timers.
package cbtimeout

import (
	"time"

	"github.com/corebft/corebft/cbround"
)

// Config holds the base duration and per-increase delta for each
// timeout kind that grows across repeated firings within a height.
type Config struct {
	BasePropose  time.Duration
	DeltaPropose time.Duration

	BasePrevote  time.Duration
	DeltaPrevote time.Duration

	BasePrecommit  time.Duration
	DeltaPrecommit time.Duration
}

// DefaultConfig mirrors commonly deployed Tendermint timeout defaults.
func DefaultConfig() Config {
	return Config{
		BasePropose:  3 * time.Second,
		DeltaPropose: 500 * time.Millisecond,

		BasePrevote:  1 * time.Second,
		DeltaPrevote: 500 * time.Millisecond,

		BasePrecommit:  1 * time.Second,
		DeltaPrecommit: 500 * time.Millisecond,
	}
}

// Duration computes the timeout length for kind, where k is the number
// of times a timeout of that kind has already fired in the current
// height (spec §4.7).
func (c Config) Duration(kind cbround.TimeoutKind, k int) time.Duration {
	switch kind {
	case cbround.TimeoutKindPropose:
		return c.BasePropose + time.Duration(k)*c.DeltaPropose
	case cbround.TimeoutKindPrevote:
		return c.BasePrevote + time.Duration(k)*c.DeltaPrevote
	case cbround.TimeoutKindPrecommit:
		return c.BasePrecommit + time.Duration(k)*c.DeltaPrecommit
	case cbround.TimeoutKindRebroadcast:
		return c.BasePropose + c.BasePrevote + c.BasePrecommit
	default:
		return c.BasePropose
	}
}
