// Package engine implements the deferred-acceptance matching engines
// that drive market.Problem to a (hopefully stable) assignment.
package engine

import "github.com/nrmp/matchrp/pkg/market"

// Options configures a matching run. RestartLimit and Randomize are
// only meaningful to the Roth-Peranson engine; KPR ignores them.
type Options struct {
	RoundLimit   int
	RestartLimit int
	Randomize    bool
}

// DefaultOptions sizes the round limit proportionally to the instance,
// per spec.md §9's open question that limits be "tunables with
// defaults sized by instance".
func DefaultOptions(p *market.Problem) Options {
	n := p.NumApplicants() + 2*p.NumCouples()
	return Options{
		RoundLimit:   8 * (n + 1),
		RestartLimit: 1,
		Randomize:    false,
	}
}

// Stats reports the engine's own bookkeeping about a run, printed by
// the matchrp CLI after every run; engines never print anything
// themselves.
type Stats struct {
	Rounds    int // proposal attempts made
	Restarts  int // restarts actually used (Roth-Peranson only)
	Rollbacks int // couples requeued after being dislodged
	Bumps     int // applicants dislodged from a program
	Converged bool
}

// Engine drives a market.Problem's mutable match state to completion.
// Match mutates p in place; at clean termination the current match
// state is the produced assignment. On round-limit exhaustion Match
// returns Converged=false with the last consistent (but unverified)
// match state still installed in p — not an error.
type Engine interface {
	Match(p *market.Problem, opts Options) (Stats, error)
}

type roundLimitError struct{}

func (roundLimitError) Error() string { return "engine: round limit must be positive" }

// ErrRoundLimitZero is returned when a caller supplies a non-positive
// round limit, which would halt before any progress is made.
var ErrRoundLimitZero error = roundLimitError{}
