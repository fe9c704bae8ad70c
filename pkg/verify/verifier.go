package verify

import (
	"math"

	"github.com/nrmp/matchrp/pkg/market"
)

// Report collects every violation found in a single pass. A Report
// with no violations is stable; the verifier never short-circuits on
// the first problem found, since the whole point is diagnostic.
type Report struct {
	Violations []Violation
}

func (r Report) OK() bool { return len(r.Violations) == 0 }

// Verifier checks a market.Problem's current match state for
// stability given its rank-order lists.
type Verifier interface {
	Check(p *market.Problem) Report
}

type verifier struct{}

// NewVerifier returns the standard stability verifier.
func NewVerifier() Verifier {
	return &verifier{}
}

func (v *verifier) Check(p *market.Problem) Report {
	var rep Report
	for _, r := range p.AllApplicantIDs() {
		if p.IsCoupled(r) {
			continue
		}
		v.checkSingle(p, &rep, r)
	}
	for _, c := range p.AllCoupleIDs() {
		v.checkCouple(p, &rep, c)
	}
	return rep
}

func (v *verifier) checkSingle(p *market.Problem, rep *Report, r market.RID) {
	prog := p.ApplicantMatch(r)
	if prog != market.NilPID {
		if !reciprocated(p, r, prog) {
			rep.Violations = append(rep.Violations, UnreciprocatedMatch{Applicant: r, Program: prog})
		}
		if !accepted(p, prog, r) {
			rep.Violations = append(rep.Violations, BookkeepingMismatch{Applicant: r, Program: prog})
		}
	}

	for _, p0 := range p.ApplicantROL(r) {
		if p0 == prog {
			break
		}
		if p.WillAccept(p0, r) {
			rep.Violations = append(rep.Violations, BlockingPair{Applicant: r, Current: prog, Preferred: p0})
		}
	}
}

func (v *verifier) checkCouple(p *market.Problem, rep *Report, c market.CID) {
	pair := p.CoupleMatch(c)
	r1, r2 := p.Members(c)
	if !reciprocatedPair(p, c, pair) {
		rep.Violations = append(rep.Violations, UnreciprocatedPair{Couple: c, Pair: pair})
	}
	v.checkCoupleMember(p, rep, c, r1, pair.P)
	v.checkCoupleMember(p, rep, c, r2, pair.Q)

	for _, pair0 := range p.CoupleROL(c) {
		if pair0 == pair {
			break
		}
		if feasiblePair(p, pair0, r1, r2) {
			rep.Violations = append(rep.Violations, BlockingTriple{Couple: c, Current: pair, Preferred: pair0})
		}
	}
}

// checkCoupleMember checks one non-nil side of a couple's matched
// pair. Couple members carry no individual ROL of their own (couples
// rank pairs, not programs), so reciprocity here is one-directional:
// only that the program ranks the member back, not the reverse.
func (v *verifier) checkCoupleMember(p *market.Problem, rep *Report, c market.CID, r market.RID, prog market.PID) {
	if prog == market.NilPID {
		return
	}
	if p.ProgramRank(prog, r) == math.MaxInt {
		rep.Violations = append(rep.Violations, UnreciprocatedMatch{Applicant: r, Program: prog})
	}
	if !accepted(p, prog, r) {
		rep.Violations = append(rep.Violations, BookkeepingMismatch{Applicant: r, Program: prog})
	}
}

// feasiblePair reports whether a couple could actually be installed
// at pair0, i.e. every non-nil side would accept its member.
func feasiblePair(p *market.Problem, pair0 market.ProgramPair, r1, r2 market.RID) bool {
	if pair0.P == pair0.Q {
		if pair0.P == market.NilPID {
			return true
		}
		return p.WillAcceptPair(pair0.P, r1, r2)
	}
	pOK := pair0.P == market.NilPID || p.WillAccept(pair0.P, r1)
	qOK := pair0.Q == market.NilPID || p.WillAccept(pair0.Q, r2)
	return pOK && qOK
}

func reciprocated(p *market.Problem, r market.RID, prog market.PID) bool {
	if prog == market.NilPID {
		return true
	}
	return p.ProgramRank(prog, r) != math.MaxInt && p.Rank(r, prog) != math.MaxInt
}

func reciprocatedPair(p *market.Problem, c market.CID, pair market.ProgramPair) bool {
	return p.CoupleRank(c, pair) != math.MaxInt
}

func accepted(p *market.Problem, prog market.PID, r market.RID) bool {
	for _, a := range p.Accepted(prog) {
		if a == r {
			return true
		}
	}
	return false
}
