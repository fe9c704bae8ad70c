package market

import "math"

// unranked is returned by rank lookups for an entry that is not present
// in a sanitized ROL at all — strictly worse than the nil sentinel,
// which always occupies the rank "one past the end of the list".
const unranked = math.MaxInt

// Rank returns applicant r's rank of program prog: its position in r's
// ROL (0 = most preferred), len(ROL) if prog is NilPID, or "unranked"
// if prog is neither NilPID nor present in r's ROL.
func (p *Problem) Rank(r RID, prog PID) int {
	if prog == NilPID {
		return len(p.applicants[r].rol)
	}
	if rank, ok := p.applicants[r].rank[prog]; ok {
		return rank
	}
	return unranked
}

// Prefers reports whether applicant r ranks x strictly better than y.
func (p *Problem) Prefers(r RID, x, y PID) bool { return p.Rank(r, x) < p.Rank(r, y) }

// ProgramRank returns program pid's rank of applicant r, analogous to Rank.
func (p *Problem) ProgramRank(pid PID, r RID) int {
	if r == NilRID {
		return len(p.programs[pid].rol)
	}
	if rank, ok := p.programs[pid].rank[r]; ok {
		return rank
	}
	return unranked
}

// ProgramPrefers reports whether program pid ranks x strictly better than y.
func (p *Problem) ProgramPrefers(pid PID, x, y RID) bool {
	return p.ProgramRank(pid, x) < p.ProgramRank(pid, y)
}

// CoupleRank returns couple c's rank of pair, analogous to Rank.
func (p *Problem) CoupleRank(c CID, pair ProgramPair) int {
	if pair == NilPair {
		return len(p.couples[c].rol)
	}
	if rank, ok := p.couples[c].rank[pair]; ok {
		return rank
	}
	return unranked
}

// CouplePrefers reports whether couple c ranks x strictly better than y.
func (p *Problem) CouplePrefers(c CID, x, y ProgramPair) bool {
	return p.CoupleRank(c, x) < p.CoupleRank(c, y)
}

func (p *Problem) minRes(prog PID) RID {
	pr := &p.programs[prog]
	idx := pr.quota - 1
	if idx >= 0 && idx < len(pr.accepted) {
		return pr.accepted[idx]
	}
	return NilRID
}

func (p *Problem) min2ndRes(prog PID) RID {
	pr := &p.programs[prog]
	idx := pr.quota - 2
	if idx >= 0 && idx < len(pr.accepted) {
		return pr.accepted[idx]
	}
	return NilRID
}

// WillAccept reports whether program prog would accept applicant r,
// assuming r is not currently among prog's accepted applicants. A nil
// program trivially accepts anyone; calling it with a nil applicant is
// a programming error and panics rather than returning an accidental
// truthy default (see Design Notes on Resident::willAccept).
func (p *Problem) WillAccept(prog PID, r RID) bool {
	if r == NilRID {
		panic("market: WillAccept called with nil applicant")
	}
	if prog == NilPID {
		return true
	}
	if p.programs[prog].quota <= 0 {
		return false
	}
	return p.ProgramRank(prog, r) < p.ProgramRank(prog, p.minRes(prog))
}

// WillAcceptPair reports whether program prog would accept both r1 and
// r2 as a couple matching to the same program, assuming neither is
// currently accepted. It requires quota >= 2 and both residents to
// outrank the program's second-worst current acceptance.
func (p *Problem) WillAcceptPair(prog PID, r1, r2 RID) bool {
	if r1 == NilRID || r2 == NilRID {
		panic("market: WillAcceptPair called with nil applicant")
	}
	if prog == NilPID {
		return true
	}
	if p.programs[prog].quota <= 1 {
		return false
	}
	lim := p.min2ndRes(prog)
	return p.ProgramRank(prog, r1) < p.ProgramRank(prog, lim) &&
		p.ProgramRank(prog, r2) < p.ProgramRank(prog, lim)
}
