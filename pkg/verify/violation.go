// Package verify checks a completed market.Problem for stability:
// that no applicant or couple has a feasible, strictly-preferred
// program it could have been matched to instead.
package verify

import (
	"fmt"

	"github.com/nrmp/matchrp/pkg/market"
)

// ViolationKind classifies a Violation for CLI formatting purposes
// without requiring a type switch at every call site.
type ViolationKind int

const (
	KindUnreciprocatedMatch ViolationKind = iota
	KindUnreciprocatedPair
	KindBookkeepingMismatch
	KindBlockingPair
	KindBlockingTriple
)

// Violation is a single detected instability. Every Violation is also
// an error, so callers that only care about "stable or not" can treat
// a Report's Violations as a plain error slice.
type Violation interface {
	error
	Kind() ViolationKind
}

// UnreciprocatedMatch reports that an applicant is matched to a
// program that does not rank them (or vice versa).
type UnreciprocatedMatch struct {
	Applicant market.RID
	Program   market.PID
}

func (v UnreciprocatedMatch) Kind() ViolationKind { return KindUnreciprocatedMatch }
func (v UnreciprocatedMatch) Error() string {
	return fmt.Sprintf("resident %s and program %s do not rank each other", v.Applicant, v.Program)
}

// UnreciprocatedPair reports that a couple is matched to a pair that
// does not appear anywhere in the couple's own rank-order list.
type UnreciprocatedPair struct {
	Couple market.CID
	Pair   market.ProgramPair
}

func (v UnreciprocatedPair) Kind() ViolationKind { return KindUnreciprocatedPair }
func (v UnreciprocatedPair) Error() string {
	return fmt.Sprintf("couple %s matched to %v, which the couple never ranked", v.Couple, v.Pair)
}

// BookkeepingMismatch reports that an applicant's match field points
// to a program whose accepted list does not actually contain them.
type BookkeepingMismatch struct {
	Applicant market.RID
	Program   market.PID
}

func (v BookkeepingMismatch) Kind() ViolationKind { return KindBookkeepingMismatch }
func (v BookkeepingMismatch) Error() string {
	return fmt.Sprintf("resident %s matched to program %s, but program did not accept", v.Applicant, v.Program)
}

// BlockingPair reports that a single applicant strictly prefers some
// program to their current match, and that program would accept them.
type BlockingPair struct {
	Applicant market.RID
	Current   market.PID
	Preferred market.PID
}

func (v BlockingPair) Kind() ViolationKind { return KindBlockingPair }
func (v BlockingPair) Error() string {
	return fmt.Sprintf("resident %s matched to %s would rather, and could, match to %s", v.Applicant, v.Current, v.Preferred)
}

// BlockingTriple reports that a couple strictly prefers some feasible
// program pair to its current matched pair.
type BlockingTriple struct {
	Couple    market.CID
	Current   market.ProgramPair
	Preferred market.ProgramPair
}

func (v BlockingTriple) Kind() ViolationKind { return KindBlockingTriple }
func (v BlockingTriple) Error() string {
	return fmt.Sprintf("couple %s matched to %v would rather, and could, match to %v", v.Couple, v.Current, v.Preferred)
}
