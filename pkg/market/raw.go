package market

// RawApplicant is a single applicant's preferences exactly as read from
// input, before reciprocity sanitization and before it is known whether
// the applicant belongs to a couple.
type RawApplicant struct {
	ID  RID
	ROL []PID
}

// RawCouple is a couple's preferences over pairs exactly as read from input.
type RawCouple struct {
	ID      CID
	R1, R2  RID
	PairROL []ProgramPair
}

// RawProgram is a program's quota and applicant preferences as read from input.
type RawProgram struct {
	ID    PID
	Quota int
	ROL   []RID
}

// RawProblem is the unsanitized input to NewProblem: IDs need not be
// contiguous, and ROLs have not yet been filtered for mutual ranking.
type RawProblem struct {
	Applicants []RawApplicant
	Couples    []RawCouple
	Programs   []RawProgram
}
