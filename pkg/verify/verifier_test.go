package verify

import (
	"testing"

	"github.com/nrmp/matchrp/pkg/engine"
	"github.com/nrmp/matchrp/pkg/market"
	"github.com/stretchr/testify/require"
)

func newProblem(t *testing.T, raw market.RawProblem) *market.Problem {
	t.Helper()
	p, err := market.NewProblem(raw)
	require.NoError(t, err)
	return p
}

// On this small instance a fresh run of either engine settles into a
// stable outcome; the verifier must agree.
func TestCheck_EngineOutputIsStable(t *testing.T) {
	raw := market.RawProblem{
		Applicants: []market.RawApplicant{
			{ID: 2, ROL: []market.PID{0, 1}},
		},
		Couples: []market.RawCouple{
			{ID: 0, R1: 0, R2: 1, PairROL: []market.ProgramPair{{P: 0, Q: 0}}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 2, ROL: []market.RID{0, 1, 2}},
			{ID: 1, Quota: 1, ROL: []market.RID{2}},
		},
	}
	for _, eng := range []engine.Engine{engine.NewRothPeranson(), engine.NewKPR()} {
		p := newProblem(t, raw)
		_, err := eng.Match(p, engine.DefaultOptions(p))
		require.NoError(t, err)

		rep := NewVerifier().Check(p)
		require.True(t, rep.OK(), "violations: %v", rep.Violations)
	}
}

// A single applicant matched below a program that would strictly
// prefer them over its current acceptance is a blocking pair.
func TestCheck_DetectsBlockingPair(t *testing.T) {
	raw := market.RawProblem{
		Applicants: []market.RawApplicant{
			{ID: 0, ROL: []market.PID{0, 1}},
			{ID: 1, ROL: []market.PID{0}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 1, ROL: []market.RID{0, 1}},
			{ID: 1, Quota: 1, ROL: []market.RID{0}},
		},
	}
	p := newProblem(t, raw)
	// Deliberately install an unstable match: applicant 0 sits at
	// program 1 even though program 0 ranks it first and holds only
	// the lower-ranked applicant 1.
	p.Match(0, 1)
	p.SetApplicantMatch(1, 0)
	p.Match(1, 0)
	p.SetApplicantMatch(0, 1)

	rep := NewVerifier().Check(p)
	require.False(t, rep.OK())
	var found bool
	for _, v := range rep.Violations {
		if v.Kind() == KindBlockingPair {
			found = true
		}
	}
	require.True(t, found)
}

// An applicant matched to a program that does not rank them is an
// unreciprocated match.
func TestCheck_DetectsUnreciprocatedMatch(t *testing.T) {
	raw := market.RawProblem{
		Applicants: []market.RawApplicant{
			{ID: 0, ROL: []market.PID{}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 1, ROL: []market.RID{}},
		},
	}
	p := newProblem(t, raw)
	p.SetApplicantMatch(0, 0)

	rep := NewVerifier().Check(p)
	require.False(t, rep.OK())
	require.Equal(t, KindUnreciprocatedMatch, rep.Violations[0].Kind())
}

// A couple member matched to a program that does not rank them is an
// unreciprocated match, exactly as for a single applicant.
func TestCheck_DetectsUnreciprocatedCoupleMember(t *testing.T) {
	raw := market.RawProblem{
		Couples: []market.RawCouple{
			{ID: 0, R1: 0, R2: 1, PairROL: []market.ProgramPair{}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 1, ROL: []market.RID{}},
			{ID: 1, Quota: 1, ROL: []market.RID{}},
		},
	}
	p := newProblem(t, raw)
	p.SetApplicantMatch(0, 0)
	p.SetApplicantMatch(1, 1)

	rep := NewVerifier().Check(p)
	require.False(t, rep.OK())
	var found int
	for _, v := range rep.Violations {
		if v.Kind() == KindUnreciprocatedMatch {
			found++
		}
	}
	require.Equal(t, 2, found)
}

// A couple matched to a pair absent from its own rank-order list is an
// unreciprocated pair, distinct from a blocking triple.
func TestCheck_DetectsUnreciprocatedPair(t *testing.T) {
	raw := market.RawProblem{
		Couples: []market.RawCouple{
			{ID: 0, R1: 0, R2: 1, PairROL: []market.ProgramPair{}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 1, ROL: []market.RID{0}},
			{ID: 1, Quota: 1, ROL: []market.RID{1}},
		},
	}
	p := newProblem(t, raw)
	p.SetApplicantMatch(0, 0)
	p.SetApplicantMatch(1, 1)

	rep := NewVerifier().Check(p)
	require.False(t, rep.OK())
	var found bool
	for _, v := range rep.Violations {
		if v.Kind() == KindUnreciprocatedPair {
			found = true
		}
	}
	require.True(t, found)
}

// An applicant's match field pointing at a program whose accepted
// list doesn't contain them is a bookkeeping mismatch.
func TestCheck_DetectsBookkeepingMismatch(t *testing.T) {
	raw := market.RawProblem{
		Applicants: []market.RawApplicant{
			{ID: 0, ROL: []market.PID{0}},
		},
		Programs: []market.RawProgram{
			{ID: 0, Quota: 1, ROL: []market.RID{0}},
		},
	}
	p := newProblem(t, raw)
	p.SetApplicantMatch(0, 0) // program 0's accepted list stays empty

	rep := NewVerifier().Check(p)
	require.False(t, rep.OK())
	require.Equal(t, KindBookkeepingMismatch, rep.Violations[0].Kind())
}
