package market

import "fmt"

type applicantRecord struct {
	rol      []PID
	rank     map[PID]int
	coupleID CID
	match    PID
}

type coupleRecord struct {
	r1, r2 RID
	rol    []ProgramPair
	rank   map[ProgramPair]int
}

type programRecord struct {
	quota    int
	rol      []RID
	rank     map[RID]int
	accepted []RID
}

// SanitizationStats reports how many rank-order-list entries were
// dropped during reciprocity filtering, broken down by entity kind.
// It exists only for diagnostics; it never influences matching.
type SanitizationStats struct {
	ApplicantEntriesDropped int
	CoupleEntriesDropped    int
	ProgramEntriesDropped   int
}

// Problem is the arena that owns every applicant, couple and program
// record. Once built, preferences are immutable; only match/accepted
// fields mutate. RID/CID/PID are opaque indices into this arena —
// there is never a cross-owning pointer between records.
type Problem struct {
	applicants []applicantRecord
	couples    []coupleRecord
	programs   []programRecord
	stats      SanitizationStats
}

// NewProblem validates raw input, sanitizes every ROL to keep only
// mutually-ranked entries, and returns an immutable Problem with all
// match state initialized to empty.
func NewProblem(raw RawProblem) (*Problem, error) {
	if err := validateRaw(raw); err != nil {
		return nil, err
	}

	numApplicants := 0
	for _, a := range raw.Applicants {
		if int(a.ID)+1 > numApplicants {
			numApplicants = int(a.ID) + 1
		}
	}
	for _, c := range raw.Couples {
		if int(c.R1)+1 > numApplicants {
			numApplicants = int(c.R1) + 1
		}
		if int(c.R2)+1 > numApplicants {
			numApplicants = int(c.R2) + 1
		}
	}

	numPrograms := 0
	for _, pr := range raw.Programs {
		if int(pr.ID)+1 > numPrograms {
			numPrograms = int(pr.ID) + 1
		}
	}

	p := &Problem{
		applicants: make([]applicantRecord, numApplicants),
		couples:    make([]coupleRecord, len(raw.Couples)),
		programs:   make([]programRecord, numPrograms),
	}

	for i := range p.applicants {
		p.applicants[i].coupleID = NilCID
		p.applicants[i].match = NilPID
	}

	for _, a := range raw.Applicants {
		p.applicants[a.ID].rol = append([]PID(nil), a.ROL...)
	}
	for _, c := range raw.Couples {
		p.couples[c.ID] = coupleRecord{
			r1:  c.R1,
			r2:  c.R2,
			rol: append([]ProgramPair(nil), c.PairROL...),
		}
		p.applicants[c.R1].coupleID = c.ID
		p.applicants[c.R2].coupleID = c.ID
	}
	for _, pr := range raw.Programs {
		p.programs[pr.ID] = programRecord{
			quota: pr.Quota,
			rol:   append([]RID(nil), pr.ROL...),
		}
	}

	p.sanitize()
	p.buildRankIndexes()

	return p, nil
}

func validateRaw(raw RawProblem) error {
	seenR := map[RID]bool{}
	for _, a := range raw.Applicants {
		if a.ID < 0 {
			return fmt.Errorf("input error: negative applicant id %d", a.ID)
		}
		if seenR[a.ID] {
			return fmt.Errorf("input error: duplicate applicant id %d", a.ID)
		}
		seenR[a.ID] = true
	}
	seenC := map[CID]bool{}
	for _, c := range raw.Couples {
		if c.ID < 0 {
			return fmt.Errorf("input error: negative couple id %d", c.ID)
		}
		if seenC[c.ID] {
			return fmt.Errorf("input error: duplicate couple id %d", c.ID)
		}
		seenC[c.ID] = true
		if c.R1 < 0 || c.R2 < 0 {
			return fmt.Errorf("input error: negative member id in couple %d", c.ID)
		}
		if c.R1 == c.R2 {
			return fmt.Errorf("input error: couple %d has identical members %d", c.ID, c.R1)
		}
		if seenR[c.R1] {
			return fmt.Errorf("input error: couple %d member %d collides with a single applicant id", c.ID, c.R1)
		}
		if seenR[c.R2] {
			return fmt.Errorf("input error: couple %d member %d collides with a single applicant id", c.ID, c.R2)
		}
		seenR[c.R1] = true
		seenR[c.R2] = true
	}
	seenP := map[PID]bool{}
	for _, pr := range raw.Programs {
		if pr.ID < 0 {
			return fmt.Errorf("input error: negative program id %d", pr.ID)
		}
		if seenP[pr.ID] {
			return fmt.Errorf("input error: duplicate program id %d", pr.ID)
		}
		seenP[pr.ID] = true
		if pr.Quota < 0 {
			return fmt.Errorf("input error: negative quota for program %d", pr.ID)
		}
	}

	for _, a := range raw.Applicants {
		for _, prog := range a.ROL {
			if prog != NilPID && !seenP[prog] {
				return fmt.Errorf("input error: applicant %d ranks unknown program %d", a.ID, prog)
			}
		}
	}
	for _, c := range raw.Couples {
		for _, pair := range c.PairROL {
			if pair.P != NilPID && !seenP[pair.P] {
				return fmt.Errorf("input error: couple %d ranks unknown program %d", c.ID, pair.P)
			}
			if pair.Q != NilPID && !seenP[pair.Q] {
				return fmt.Errorf("input error: couple %d ranks unknown program %d", c.ID, pair.Q)
			}
		}
	}
	for _, pr := range raw.Programs {
		for _, r := range pr.ROL {
			if r < 0 {
				return fmt.Errorf("input error: program %d ranks unknown applicant %d", pr.ID, r)
			}
			if !seenR[r] {
				return fmt.Errorf("input error: program %d ranks unspecified applicant %d", pr.ID, r)
			}
		}
	}
	return nil
}

func (p *Problem) buildRankIndexes() {
	for i := range p.applicants {
		m := make(map[PID]int, len(p.applicants[i].rol))
		for idx, prog := range p.applicants[i].rol {
			m[prog] = idx
		}
		p.applicants[i].rank = m
	}
	for i := range p.couples {
		m := make(map[ProgramPair]int, len(p.couples[i].rol))
		for idx, pair := range p.couples[i].rol {
			m[pair] = idx
		}
		p.couples[i].rank = m
	}
	for i := range p.programs {
		m := make(map[RID]int, len(p.programs[i].rol))
		for idx, r := range p.programs[i].rol {
			m[r] = idx
		}
		p.programs[i].rank = m
	}
}

// NumApplicants returns the size of the dense applicant ID space.
func (p *Problem) NumApplicants() int { return len(p.applicants) }

// NumCouples returns the number of couples.
func (p *Problem) NumCouples() int { return len(p.couples) }

// NumPrograms returns the size of the dense program ID space.
func (p *Problem) NumPrograms() int { return len(p.programs) }

// IsCoupled reports whether applicant r belongs to a couple.
func (p *Problem) IsCoupled(r RID) bool { return p.applicants[r].coupleID != NilCID }

// CoupleOf returns the couple applicant r belongs to, or NilCID.
func (p *Problem) CoupleOf(r RID) CID { return p.applicants[r].coupleID }

// PartnerOf returns r's partner within its couple, or NilRID if single.
func (p *Problem) PartnerOf(r RID) RID {
	c := p.applicants[r].coupleID
	if c == NilCID {
		return NilRID
	}
	if p.couples[c].r1 == r {
		return p.couples[c].r2
	}
	return p.couples[c].r1
}

// Members returns the two applicants of couple c.
func (p *Problem) Members(c CID) (RID, RID) { return p.couples[c].r1, p.couples[c].r2 }

// ApplicantROL returns applicant r's sanitized program preference list.
func (p *Problem) ApplicantROL(r RID) []PID { return p.applicants[r].rol }

// CoupleROL returns couple c's sanitized pair preference list.
func (p *Problem) CoupleROL(c CID) []ProgramPair { return p.couples[c].rol }

// ProgramROL returns program pid's sanitized applicant preference list.
func (p *Problem) ProgramROL(pid PID) []RID { return p.programs[pid].rol }

// Quota returns program pid's quota.
func (p *Problem) Quota(pid PID) int { return p.programs[pid].quota }

// Accepted returns program pid's currently accepted applicants, sorted
// by the program's own preference order.
func (p *Problem) Accepted(pid PID) []RID { return p.programs[pid].accepted }

// ApplicantMatch returns applicant r's current match, or NilPID.
func (p *Problem) ApplicantMatch(r RID) PID { return p.applicants[r].match }

// CoupleMatch returns couple c's current matched pair.
func (p *Problem) CoupleMatch(c CID) ProgramPair {
	return ProgramPair{P: p.applicants[p.couples[c].r1].match, Q: p.applicants[p.couples[c].r2].match}
}

// Stats reports sanitization diagnostics.
func (p *Problem) Stats() SanitizationStats { return p.stats }

// AllApplicantIDs returns every applicant ID in the dense ID space.
func (p *Problem) AllApplicantIDs() []RID {
	ids := make([]RID, len(p.applicants))
	for i := range ids {
		ids[i] = RID(i)
	}
	return ids
}

// AllCoupleIDs returns every couple ID.
func (p *Problem) AllCoupleIDs() []CID {
	ids := make([]CID, len(p.couples))
	for i := range ids {
		ids[i] = CID(i)
	}
	return ids
}

// AllProgramIDs returns every program ID.
func (p *Problem) AllProgramIDs() []PID {
	ids := make([]PID, len(p.programs))
	for i := range ids {
		ids[i] = PID(i)
	}
	return ids
}
