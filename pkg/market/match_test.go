package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPair_BumpsUpToTwo(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Couples: []RawCouple{{ID: 0, R1: 0, R2: 1, PairROL: []ProgramPair{{P: 0, Q: 0}}}},
		Applicants: []RawApplicant{
			{ID: 2, ROL: []PID{0}},
			{ID: 3, ROL: []PID{0}},
		},
		Programs: []RawProgram{{ID: 0, Quota: 2, ROL: []RID{2, 3, 0, 1}}},
	})
	require.NoError(t, err)

	bumped := p.Match(0, 2)
	assert.Empty(t, bumped)
	bumped = p.Match(0, 3)
	assert.Empty(t, bumped)
	assert.Equal(t, []RID{2, 3}, p.Accepted(0))

	bumped = p.MatchPair(0, 0, 1)
	assert.ElementsMatch(t, []RID{2, 3}, bumped)
	assert.Equal(t, []RID{0, 1}, p.Accepted(0))
}

func TestWithdrawCouple_ClearsBothMembers(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Couples:  []RawCouple{{ID: 0, R1: 0, R2: 1, PairROL: []ProgramPair{{P: 0, Q: 0}}}},
		Programs: []RawProgram{{ID: 0, Quota: 2, ROL: []RID{0, 1}}},
	})
	require.NoError(t, err)

	p.MatchPair(0, 0, 1)
	p.SetApplicantMatch(0, 0)
	p.SetApplicantMatch(1, 0)
	assert.Equal(t, []RID{0, 1}, p.Accepted(0))

	p.WithdrawCouple(0)
	assert.Empty(t, p.Accepted(0))
	assert.Equal(t, NilPID, p.ApplicantMatch(0))
	assert.Equal(t, NilPID, p.ApplicantMatch(1))
}

func TestUnmatch_NoopWhenAbsent(t *testing.T) {
	p, err := NewProblem(RawProblem{Programs: []RawProgram{{ID: 0, Quota: 1}}})
	require.NoError(t, err)
	assert.NotPanics(t, func() { p.Unmatch(0, 7) })
}
