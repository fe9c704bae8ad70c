package market

import "slices"

// sanitize filters every ROL down to mutually-ranked entries per the
// reciprocity rules: an applicant's program list keeps only programs
// that rank them back; a couple's pair list keeps only pairs whose
// non-nil sides rank the respective member back; a program's applicant
// list keeps only applicants (or couples, for coupled members) that
// rank it back. Order matters: couple ROLs are sanitized against the
// *raw* program lists first, then program lists are sanitized against
// the now-sanitized couple ROLs, so a coupled applicant's surviving
// program-list entry always has a matching couple-ROL entry.
func (p *Problem) sanitize() {
	rawProgramRanksApplicant := make([]map[RID]bool, len(p.programs))
	for pid := range p.programs {
		m := make(map[RID]bool, len(p.programs[pid].rol))
		for _, r := range p.programs[pid].rol {
			m[r] = true
		}
		rawProgramRanksApplicant[pid] = m
	}

	for rid := range p.applicants {
		if p.applicants[rid].coupleID != NilCID {
			continue
		}
		kept := p.applicants[rid].rol[:0:0]
		for _, prog := range p.applicants[rid].rol {
			if rawProgramRanksApplicant[prog][RID(rid)] {
				kept = append(kept, prog)
			} else {
				p.stats.ApplicantEntriesDropped++
			}
		}
		p.applicants[rid].rol = kept
	}

	for cid := range p.couples {
		c := &p.couples[cid]
		kept := c.rol[:0:0]
		for _, pair := range c.rol {
			pOK := pair.P == NilPID || rawProgramRanksApplicant[pair.P][c.r1]
			qOK := pair.Q == NilPID || rawProgramRanksApplicant[pair.Q][c.r2]
			if pOK && qOK {
				kept = append(kept, pair)
			} else {
				p.stats.CoupleEntriesDropped++
			}
		}
		c.rol = kept
	}

	for pid := range p.programs {
		pr := &p.programs[pid]
		kept := pr.rol[:0:0]
		for _, r := range pr.rol {
			cid := p.applicants[r].coupleID
			if cid == NilCID {
				if slices.Contains(p.applicants[r].rol, PID(pid)) {
					kept = append(kept, r)
				} else {
					p.stats.ProgramEntriesDropped++
				}
				continue
			}

			side := func(pair ProgramPair) bool {
				if p.couples[cid].r1 == r {
					return pair.P == PID(pid)
				}
				return pair.Q == PID(pid)
			}
			ranked := false
			for _, pair := range p.couples[cid].rol {
				if side(pair) {
					ranked = true
					break
				}
			}
			if ranked {
				kept = append(kept, r)
			} else {
				p.stats.ProgramEntriesDropped++
			}
		}
		pr.rol = kept
	}
}
