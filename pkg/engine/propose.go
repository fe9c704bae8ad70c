package engine

import "github.com/nrmp/matchrp/pkg/market"

// runState carries the per-run mutable bookkeeping shared by both
// engines: proposal cursors and a shared proposal counter checked
// against the round limit. It is never shared across runs, since a
// restart starts every cursor back at zero.
type runState struct {
	p            *market.Problem
	singleCursor []int
	coupleCursor []int
	proposals    int
	limit        int
	stats        Stats
}

func newRunState(p *market.Problem, limit int) *runState {
	return &runState{
		p:            p,
		singleCursor: make([]int, p.NumApplicants()),
		coupleCursor: make([]int, p.NumCouples()),
		limit:        limit,
	}
}

// singlePhase drains queue, having each single applicant propose down
// its ROL until matched or exhausted, bumping as needed. Returns false
// if the round limit is hit mid-phase.
func (rs *runState) singlePhase(queue []market.RID) bool {
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		rol := rs.p.ApplicantROL(r)
		if rs.singleCursor[r] >= len(rol) {
			continue // exhausted its ROL: ends unmatched
		}
		rs.proposals++
		rs.stats.Rounds = rs.proposals
		if rs.proposals > rs.limit {
			return false
		}

		prog := rol[rs.singleCursor[r]]
		rs.singleCursor[r]++

		if rs.p.WillAccept(prog, r) {
			bumped := rs.p.Match(prog, r)
			rs.p.SetApplicantMatch(r, prog)
			for _, b := range bumped {
				rs.stats.Bumps++
				rs.p.SetApplicantMatch(b, market.NilPID)
				queue = append(queue, b)
			}
		} else {
			queue = append(queue, r)
		}
	}
	return true
}

// installPair attempts the given pair for members r1 and r2, whom the
// caller has already withdrawn, and on acceptance updates both
// members' match fields. The returned
// bumped applicants still carry their stale (pre-withdrawal) match
// field, so callers can read a dislodged couple's lost pair via
// market.Problem.CoupleMatch before clearing it.
func installPair(p *market.Problem, pair market.ProgramPair, r1, r2 market.RID) (accepted bool, bumped []market.RID) {
	if pair.P == pair.Q {
		if pair.P == market.NilPID {
			return true, nil
		}
		if !p.WillAcceptPair(pair.P, r1, r2) {
			return false, nil
		}
		bumped = p.MatchPair(pair.P, r1, r2)
		p.SetApplicantMatch(r1, pair.P)
		p.SetApplicantMatch(r2, pair.P)
		return true, bumped
	}

	pOK := pair.P == market.NilPID || p.WillAccept(pair.P, r1)
	qOK := pair.Q == market.NilPID || p.WillAccept(pair.Q, r2)
	if !pOK || !qOK {
		return false, nil
	}

	if pair.P != market.NilPID {
		bumped = append(bumped, p.Match(pair.P, r1)...)
		p.SetApplicantMatch(r1, pair.P)
	} else {
		p.SetApplicantMatch(r1, market.NilPID)
	}
	if pair.Q != market.NilPID {
		bumped = append(bumped, p.Match(pair.Q, r2)...)
		p.SetApplicantMatch(r2, pair.Q)
	} else {
		p.SetApplicantMatch(r2, market.NilPID)
	}
	return true, bumped
}

// splitBumped separates bumped applicants into singles (ready to
// re-propose immediately) and couples (requiring a cursor rewind,
// reported keyed by couple ID with the rank of the pair they just
// lost, read before their match fields are cleared).
func splitBumped(p *market.Problem, bumped []market.RID) (singles []market.RID, lostRank map[market.CID]int) {
	lostRank = make(map[market.CID]int)
	for _, b := range bumped {
		if p.IsCoupled(b) {
			c := p.CoupleOf(b)
			if _, seen := lostRank[c]; !seen {
				lostRank[c] = p.CoupleRank(c, p.CoupleMatch(c))
			}
		} else {
			singles = append(singles, b)
		}
	}
	for _, b := range bumped {
		p.SetApplicantMatch(b, market.NilPID)
	}
	return singles, lostRank
}
