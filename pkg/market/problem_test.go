package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoByTwoRaw() RawProblem {
	return RawProblem{
		Applicants: []RawApplicant{
			{ID: 0, ROL: []PID{0, 1}},
			{ID: 1, ROL: []PID{0, 1}},
		},
		Programs: []RawProgram{
			{ID: 0, Quota: 1, ROL: []RID{0, 1}},
			{ID: 1, Quota: 1, ROL: []RID{1, 0}},
		},
	}
}

func TestNewProblem_DenseIDs(t *testing.T) {
	p, err := NewProblem(twoByTwoRaw())
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumApplicants())
	assert.Equal(t, 2, p.NumPrograms())
	assert.Equal(t, 0, p.NumCouples())
}

func TestNewProblem_DuplicateApplicantID(t *testing.T) {
	raw := twoByTwoRaw()
	raw.Applicants = append(raw.Applicants, RawApplicant{ID: 0, ROL: []PID{0}})
	_, err := NewProblem(raw)
	assert.Error(t, err)
}

func TestNewProblem_UnknownProgramReference(t *testing.T) {
	raw := RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{5}}},
		Programs:   []RawProgram{{ID: 0, Quota: 1, ROL: []RID{0}}},
	}
	_, err := NewProblem(raw)
	assert.Error(t, err)
}

func TestNewProblem_CoupleMembersShareApplicantSpace(t *testing.T) {
	raw := RawProblem{
		Couples: []RawCouple{
			{ID: 0, R1: 0, R2: 1, PairROL: []ProgramPair{{P: 2, Q: 2}}},
		},
		Programs: []RawProgram{
			{ID: 2, Quota: 2, ROL: []RID{0, 1}},
		},
	}
	p, err := NewProblem(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumApplicants())
	assert.True(t, p.IsCoupled(0))
	assert.Equal(t, CID(0), p.CoupleOf(0))
	assert.Equal(t, RID(1), p.PartnerOf(0))
}

func TestNewProblem_CoupleSelfReferentialMemberIsError(t *testing.T) {
	raw := RawProblem{
		Couples: []RawCouple{
			{ID: 0, R1: 0, R2: 0, PairROL: []ProgramPair{{P: 0, Q: 0}}},
		},
		Programs: []RawProgram{
			{ID: 0, Quota: 2, ROL: []RID{0}},
		},
	}
	_, err := NewProblem(raw)
	assert.Error(t, err)
}

func TestSanitize_DropsNonReciprocalApplicantEntry(t *testing.T) {
	// Applicant 0 ranks program 0, but program 0 does not rank applicant 0 (E6).
	raw := RawProblem{
		Applicants: []RawApplicant{{ID: 0, ROL: []PID{0, 1}}},
		Programs: []RawProgram{
			{ID: 0, Quota: 1, ROL: []RID{}},
			{ID: 1, Quota: 1, ROL: []RID{0}},
		},
	}
	p, err := NewProblem(raw)
	require.NoError(t, err)
	assert.Equal(t, []PID{1}, p.ApplicantROL(0))
	assert.Equal(t, 1, p.Stats().ApplicantEntriesDropped)
}

func TestSanitize_DropsCouplePairNotRankedBack(t *testing.T) {
	raw := RawProblem{
		Couples: []RawCouple{
			{ID: 0, R1: 0, R2: 1, PairROL: []ProgramPair{{P: 0, Q: NilPID}, {P: NilPID, Q: NilPID}}},
		},
		Programs: []RawProgram{
			{ID: 0, Quota: 1, ROL: []RID{1}}, // does not rank R1 (0)
		},
	}
	p, err := NewProblem(raw)
	require.NoError(t, err)
	// (0, nil) dropped because program 0 doesn't rank R1; (nil,nil) survives.
	assert.Equal(t, []ProgramPair{NilPair}, p.CoupleROL(0))
	assert.Equal(t, 1, p.NumPrograms())
}
