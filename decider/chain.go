package decider

import (
	"errors"

	"github.com/beaverkit/beaver/machine"
)

// ErrBadStepLimit indicates a zero step ceiling in Options.
var ErrBadStepLimit = errors.New("decider: step limits must be positive")

// Options sets the step ceilings of the decider chain. A small cycler
// limit first is the effective ordering: it removes the bulk of the
// machines cheaply, the bouncer then handles most of the remainder.
type Options struct {
	// CyclerSteps is the cycler's step ceiling.
	CyclerSteps uint64
	// BouncerSteps is the bouncer's step ceiling.
	BouncerSteps uint64
}

// DefaultOptions returns ceilings that decide all but a tiny fraction of
// the 4-state space: CyclerSteps=1500, BouncerSteps=20000.
func DefaultOptions() Options {
	return Options{CyclerSteps: 1_500, BouncerSteps: 20_000}
}

// Validate rejects unusable option values.
func (o Options) Validate() error {
	if o.CyclerSteps == 0 || o.BouncerSteps == 0 {
		return ErrBadStepLimit
	}
	return nil
}

// Chain runs the deciders in order and returns the first verdict. It is
// reusable across machines but not concurrency-safe.
type Chain struct {
	cycler  *Cycler
	bouncer *Bouncer
}

// NewChain builds a Chain from opts.
func NewChain(opts Options) (*Chain, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Chain{
		cycler:  NewCycler(opts.CyclerSteps),
		bouncer: NewBouncer(opts.BouncerSteps),
	}, nil
}

// Decide classifies tb. Halts are found by whichever decider runs far
// enough; only if both stay undecided is the larger step count reported.
func (c *Chain) Decide(tb machine.TransitionTable) Result {
	res := c.cycler.Decide(tb)
	if res.Kind != Undecided {
		return res
	}
	res2 := c.bouncer.Decide(tb)
	if res2.Kind != Undecided {
		return res2
	}
	if res.Steps > res2.Steps {
		return res
	}
	return res2
}
