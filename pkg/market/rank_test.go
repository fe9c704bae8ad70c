package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_NilIsWorseThanAnyRanked(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{0, 1}}},
		Programs: []RawProgram{
			{ID: 0, Quota: 1, ROL: []RID{0}},
			{ID: 1, Quota: 1, ROL: []RID{0}},
		},
	})
	require.NoError(t, err)

	assert.True(t, p.Prefers(0, 0, 1))
	assert.True(t, p.Prefers(0, 1, NilPID))
	assert.False(t, p.Prefers(0, NilPID, 1))
}

func TestRank_UnknownEntryIsUnranked(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{0}}},
		Programs:   []RawProgram{{ID: 0, Quota: 1, ROL: []RID{0}}},
	})
	require.NoError(t, err)

	// Program 1 doesn't exist among the applicant's (sanitized) ROL.
	assert.Equal(t, unranked, p.Rank(0, 1))
}

func TestWillAccept_EmptyQuotaAlwaysFalse(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{0}}},
		Programs:   []RawProgram{{ID: 0, Quota: 0, ROL: []RID{0}}},
	})
	require.NoError(t, err)

	assert.False(t, p.WillAccept(0, 0))
}

func TestWillAccept_NilProgramAlwaysTrue(t *testing.T) {
	p, err := NewProblem(RawProblem{Applicants: []RawApplicant{{ID: 0}}})
	require.NoError(t, err)
	assert.True(t, p.WillAccept(NilPID, 0))
}

func TestWillAccept_NilApplicantPanics(t *testing.T) {
	p, err := NewProblem(RawProblem{Programs: []RawProgram{{ID: 0, Quota: 1}}})
	require.NoError(t, err)
	assert.Panics(t, func() { p.WillAccept(0, NilRID) })
}

func TestWillAccept_BumpsWorstWhenFull(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Applicants: []RawApplicant{
			{ID: 0, ROL: []PID{0}},
			{ID: 1, ROL: []PID{0}},
		},
		Programs: []RawProgram{{ID: 0, Quota: 1, ROL: []RID{0, 1}}},
	})
	require.NoError(t, err)

	bumped := p.Match(0, 1) // worse-ranked applicant matches first
	assert.Empty(t, bumped)
	assert.True(t, p.WillAccept(0, 0)) // better-ranked applicant should bump 1

	bumped = p.Match(0, 0)
	assert.Equal(t, []RID{1}, bumped)
	assert.False(t, p.WillAccept(0, 1)) // now full with the better applicant
}

func TestWillAcceptPair_RequiresQuotaAtLeastTwo(t *testing.T) {
	p, err := NewProblem(RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{0}}, {ID: 1, ROL: []PID{0}}},
		Programs:   []RawProgram{{ID: 0, Quota: 1, ROL: []RID{0, 1}}},
	})
	require.NoError(t, err)
	assert.False(t, p.WillAcceptPair(0, 0, 1))
}
