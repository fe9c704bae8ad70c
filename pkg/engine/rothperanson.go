package engine

import (
	"github.com/nrmp/matchrp/pkg/market"
	"github.com/samber/lo"
)

// rothPeranson implements the Roth-Peranson (1999) two-phase engine:
// an outer single-applicant deferred-acceptance phase followed by a
// couple-repair phase that withdraws-then-proposes couples one at a
// time, rolling back only the couples a proposal actually dislodges.
type rothPeranson struct{}

// NewRothPeranson returns the Roth-Peranson engine. Options.Randomize
// controls whether the couple pool is re-permuted uniformly at random
// on every restart triggered by hitting the round limit.
func NewRothPeranson() Engine {
	return &rothPeranson{}
}

func (e *rothPeranson) Match(p *market.Problem, opts Options) (Stats, error) {
	if opts.RoundLimit <= 0 {
		return Stats{}, ErrRoundLimitZero
	}

	couplePool := p.AllCoupleIDs()

	restarts := 0
	for {
		if restarts > 0 {
			p.Reset()
			if opts.Randomize {
				couplePool = lo.Shuffle(append([]market.CID(nil), couplePool...))
			}
		}

		rs := newRunState(p, opts.RoundLimit)
		converged := e.runOnce(rs, couplePool)
		rs.stats.Restarts = restarts
		rs.stats.Converged = converged

		if converged || restarts >= opts.RestartLimit {
			return rs.stats, nil
		}
		restarts++
	}
}

func (e *rothPeranson) runOnce(rs *runState, couplePool []market.CID) bool {
	p := rs.p

	singleQueue := lo.Filter(p.AllApplicantIDs(), func(r market.RID, _ int) bool {
		return !p.IsCoupled(r)
	})
	if !rs.singlePhase(singleQueue) {
		return false
	}

	coupleQueue := append([]market.CID(nil), couplePool...)
	for len(coupleQueue) > 0 {
		c := coupleQueue[0]
		coupleQueue = coupleQueue[1:]

		if !e.proposeCouple(rs, c, &coupleQueue) {
			return false
		}
	}
	return true
}

// proposeCouple advances couple c through its ROL, starting at its
// current cursor, until it either installs a pair or exhausts its
// list. On a successful install, dislodged singles re-enter the
// single-phase sub-loop immediately and dislodged couples are
// requeued to continue from wherever their own cursor already was —
// Roth-Peranson's rollback is local and never rewinds a couple past a
// pair it has already tried.
func (e *rothPeranson) proposeCouple(rs *runState, c market.CID, coupleQueue *[]market.CID) bool {
	p := rs.p
	rol := p.CoupleROL(c)
	r1, r2 := p.Members(c)

	for rs.coupleCursor[c] < len(rol) {
		rs.proposals++
		rs.stats.Rounds = rs.proposals
		if rs.proposals > rs.limit {
			return false
		}

		pair := rol[rs.coupleCursor[c]]
		rs.coupleCursor[c]++

		p.WithdrawCouple(c)
		accepted, bumped := installPair(p, pair, r1, r2)
		if !accepted {
			continue
		}

		singles, lostRank := splitBumped(p, bumped)
		rs.stats.Bumps += len(bumped)
		if !rs.singlePhase(singles) {
			return false
		}
		for bc := range lostRank {
			rs.stats.Rollbacks++
			*coupleQueue = append(*coupleQueue, bc)
		}
		return true
	}
	return true
}
