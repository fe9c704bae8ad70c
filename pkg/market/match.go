package market

import "sort"

// Match installs applicant r into program prog's accepted list,
// re-sorts it by the program's own ROL order, and pops the worst
// applicant if the list now exceeds quota. It does not check whether
// prog actually ranks r, and does not update r's own match field —
// callers own that joint bookkeeping (see Invariant 2/3 in the data
// model). Returns the bumped applicant, if any.
func (p *Problem) Match(prog PID, r RID) []RID {
	if prog == NilPID {
		panic("market: Match called with nil program")
	}
	if r == NilRID {
		panic("market: Match called with nil applicant")
	}
	pr := &p.programs[prog]
	pr.accepted = append(pr.accepted, r)
	p.sortAccepted(prog)
	bumped := []RID(nil)
	if len(pr.accepted) > pr.quota {
		bumped = append(bumped, pr.accepted[len(pr.accepted)-1])
		pr.accepted = pr.accepted[:len(pr.accepted)-1]
	}
	return bumped
}

// MatchPair installs both r1 and r2 into the same program prog,
// bumping up to two worst-ranked current acceptances to make room.
// Used for couple pairs of the form (p, p).
func (p *Problem) MatchPair(prog PID, r1, r2 RID) []RID {
	if prog == NilPID {
		panic("market: MatchPair called with nil program")
	}
	if r1 == NilRID || r2 == NilRID {
		panic("market: MatchPair called with nil applicant")
	}
	pr := &p.programs[prog]
	var bumped []RID
	for len(pr.accepted) >= pr.quota-1 && len(pr.accepted) > 0 {
		bumped = append(bumped, pr.accepted[len(pr.accepted)-1])
		pr.accepted = pr.accepted[:len(pr.accepted)-1]
	}
	pr.accepted = append(pr.accepted, r1, r2)
	p.sortAccepted(prog)
	return bumped
}

// Unmatch removes r from prog's accepted list if present; it is a
// no-op otherwise.
func (p *Problem) Unmatch(prog PID, r RID) {
	if prog == NilPID {
		return
	}
	pr := &p.programs[prog]
	for i, a := range pr.accepted {
		if a == r {
			pr.accepted = append(pr.accepted[:i], pr.accepted[i+1:]...)
			return
		}
	}
}

func (p *Problem) sortAccepted(prog PID) {
	pr := &p.programs[prog]
	sort.Slice(pr.accepted, func(i, j int) bool {
		return p.ProgramRank(prog, pr.accepted[i]) < p.ProgramRank(prog, pr.accepted[j])
	})
}

// SetApplicantMatch sets applicant r's current-match field directly.
// It does not touch any program's accepted list; callers are
// responsible for keeping the two in sync (Invariant 2 in the data
// model), which is what drives Match/Unmatch being called alongside it.
func (p *Problem) SetApplicantMatch(r RID, prog PID) {
	if r == NilRID {
		panic("market: SetApplicantMatch called with nil applicant")
	}
	p.applicants[r].match = prog
}

// WithdrawApplicant unmatches r from its current program (if any) on
// both sides of the bookkeeping, atomically from the caller's view.
func (p *Problem) WithdrawApplicant(r RID) {
	cur := p.applicants[r].match
	if cur != NilPID {
		p.Unmatch(cur, r)
	}
	p.applicants[r].match = NilPID
}

// WithdrawCouple removes both members of couple c from their current
// programs, jointly, so a subsequent proposal never finds the couple
// still blocking its own withdrawal.
func (p *Problem) WithdrawCouple(c CID) {
	p.WithdrawApplicant(p.couples[c].r1)
	p.WithdrawApplicant(p.couples[c].r2)
}

// Reset clears every program's accepted list and every applicant's
// match field, returning the Problem to its just-constructed match
// state without touching any preference data. Used by engines between
// restarts, whether or not the couple order is re-randomized.
func (p *Problem) Reset() {
	for i := range p.programs {
		p.programs[i].accepted = nil
	}
	for i := range p.applicants {
		p.applicants[i].match = NilPID
	}
}
