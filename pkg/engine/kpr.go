package engine

import "github.com/nrmp/matchrp/pkg/market"

// kpr implements the Kojima-Pathak-Roth appendix B.2 variant: singles
// and couples share one proposer queue from the very first round, and
// a displaced couple rewinds to the pair it just lost rather than
// continuing forward from its own cursor. KPR never randomizes or
// restarts.
type kpr struct{}

// NewKPR returns the KPR engine.
func NewKPR() Engine { return &kpr{} }

type proposerKind uint8

const (
	proposerSingle proposerKind = iota
	proposerCouple
)

type proposer struct {
	kind proposerKind
	rid  market.RID
	cid  market.CID
}

func (e *kpr) Match(p *market.Problem, opts Options) (Stats, error) {
	if opts.RoundLimit <= 0 {
		return Stats{}, ErrRoundLimitZero
	}

	rs := newRunState(p, opts.RoundLimit)

	queue := make([]proposer, 0, p.NumApplicants()+p.NumCouples())
	for _, r := range p.AllApplicantIDs() {
		if !p.IsCoupled(r) {
			queue = append(queue, proposer{kind: proposerSingle, rid: r})
		}
	}
	for _, c := range p.AllCoupleIDs() {
		queue = append(queue, proposer{kind: proposerCouple, cid: c})
	}

	converged := e.run(rs, queue)
	rs.stats.Converged = converged
	return rs.stats, nil
}

func (e *kpr) run(rs *runState, queue []proposer) bool {
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		switch next.kind {
		case proposerSingle:
			if !rs.singlePhase([]market.RID{next.rid}) {
				return false
			}
		case proposerCouple:
			requeued, ok := e.proposeCouple(rs, next.cid)
			if !ok {
				return false
			}
			queue = append(queue, requeued...)
		}
	}
	return true
}

// proposeCouple advances couple c by exactly one proposal from its
// current cursor. On acceptance, bumped singles are returned to the
// caller's shared queue rather than drained separately, preserving
// KPR's unified ordering, and bumped couples
// rewind to the pair they just lost before being requeued.
func (e *kpr) proposeCouple(rs *runState, c market.CID) ([]proposer, bool) {
	p := rs.p
	rol := p.CoupleROL(c)
	if rs.coupleCursor[c] >= len(rol) {
		return nil, true
	}

	r1, r2 := p.Members(c)

	rs.proposals++
	rs.stats.Rounds = rs.proposals
	if rs.proposals > rs.limit {
		return nil, false
	}

	pair := rol[rs.coupleCursor[c]]
	rs.coupleCursor[c]++

	p.WithdrawCouple(c)
	accepted, bumped := installPair(p, pair, r1, r2)
	if !accepted {
		return []proposer{{kind: proposerCouple, cid: c}}, true
	}

	singles, lostRank := splitBumped(p, bumped)
	rs.stats.Bumps += len(bumped)

	requeued := make([]proposer, 0, len(singles)+len(lostRank))
	for _, s := range singles {
		requeued = append(requeued, proposer{kind: proposerSingle, rid: s})
	}
	for bc, rank := range lostRank {
		rs.stats.Rollbacks++
		rs.coupleCursor[bc] = rank
		requeued = append(requeued, proposer{kind: proposerCouple, cid: bc})
	}
	return requeued, true
}
