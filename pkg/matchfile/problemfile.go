// Package matchfile reads and writes the line-oriented problem-file
// and match-file grammars that feed the matcher and verifier CLIs.
// Neither grammar is JSON, so this package parses by hand rather than
// reaching for encoding/json+mapstructure the way the rest of the
// module configures itself.
package matchfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nrmp/matchrp/pkg/market"
)

// ParseProblem reads a problem-file from r and returns the raw
// (pre-sanitization) problem it describes. Grammar errors are
// collected rather than short-circuited, mirroring the verifier's own
// "report everything, then fail" style; market.NewProblem performs
// the remaining ID-level validation (duplicates, unknown references).
func ParseProblem(r io.Reader) (market.RawProblem, error) {
	var raw market.RawProblem
	var errs []error

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "r":
			a, err := parseApplicantLine(fields)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			raw.Applicants = append(raw.Applicants, a)
		case "c":
			c, err := parseCoupleLine(fields)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			raw.Couples = append(raw.Couples, c)
		case "p":
			pr, err := parseProgramLine(fields)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			raw.Programs = append(raw.Programs, pr)
		default:
			errs = append(errs, fmt.Errorf("input error: line %q is invalid", line))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return market.RawProblem{}, errors.Join(errs...)
	}
	return raw, nil
}

func parseApplicantLine(fields []string) (market.RawApplicant, error) {
	if len(fields) < 2 {
		return market.RawApplicant{}, fmt.Errorf("input error: resident line missing ID: %q", strings.Join(fields, " "))
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return market.RawApplicant{}, fmt.Errorf("input error: malformed resident ID %q", fields[1])
	}
	rol, err := parseIDList(fields[2:])
	if err != nil {
		return market.RawApplicant{}, err
	}
	return market.RawApplicant{ID: market.RID(id), ROL: toPIDs(rol)}, nil
}

func parseCoupleLine(fields []string) (market.RawCouple, error) {
	if len(fields) < 4 {
		return market.RawCouple{}, fmt.Errorf("input error: couple line missing fields: %q", strings.Join(fields, " "))
	}
	cid, err := strconv.Atoi(fields[1])
	if err != nil {
		return market.RawCouple{}, fmt.Errorf("input error: malformed couple ID %q", fields[1])
	}
	r1, err := strconv.Atoi(fields[2])
	if err != nil {
		return market.RawCouple{}, fmt.Errorf("input error: malformed resident ID %q", fields[2])
	}
	r2, err := strconv.Atoi(fields[3])
	if err != nil {
		return market.RawCouple{}, fmt.Errorf("input error: malformed resident ID %q", fields[3])
	}

	progIDs, err := parseIDList(fields[4:])
	if err != nil {
		return market.RawCouple{}, err
	}
	if len(progIDs)%2 != 0 {
		return market.RawCouple{}, fmt.Errorf("input error: couple %d has an odd number of program IDs", cid)
	}

	pairs := make([]market.ProgramPair, 0, len(progIDs)/2)
	for i := 0; i < len(progIDs); i += 2 {
		pairs = append(pairs, market.ProgramPair{P: market.PID(progIDs[i]), Q: market.PID(progIDs[i+1])})
	}
	return market.RawCouple{ID: market.CID(cid), R1: market.RID(r1), R2: market.RID(r2), PairROL: pairs}, nil
}

func parseProgramLine(fields []string) (market.RawProgram, error) {
	if len(fields) < 3 {
		return market.RawProgram{}, fmt.Errorf("input error: program line missing fields: %q", strings.Join(fields, " "))
	}
	pid, err := strconv.Atoi(fields[1])
	if err != nil {
		return market.RawProgram{}, fmt.Errorf("input error: malformed program ID %q", fields[1])
	}
	quota, err := strconv.Atoi(fields[2])
	if err != nil {
		return market.RawProgram{}, fmt.Errorf("input error: malformed quota %q", fields[2])
	}
	rol, err := parseIDList(fields[3:])
	if err != nil {
		return market.RawProgram{}, err
	}
	return market.RawProgram{ID: market.PID(pid), Quota: quota, ROL: toRIDs(rol)}, nil
}

func parseIDList(fields []string) ([]int, error) {
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("input error: malformed ID %q in ROL", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toPIDs(ids []int) []market.PID {
	pids := make([]market.PID, len(ids))
	for i, id := range ids {
		pids[i] = market.PID(id)
	}
	return pids
}

func toRIDs(ids []int) []market.RID {
	rids := make([]market.RID, len(ids))
	for i, id := range ids {
		rids[i] = market.RID(id)
	}
	return rids
}
