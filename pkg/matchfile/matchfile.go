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

// Assignment is the verifier's input: a claimed per-applicant match,
// plus the "no match" flag that short-circuits verification entirely.
type Assignment struct {
	NoMatch bool
	Matches map[market.RID]market.PID
}

// ParseMatch reads a match-file from r.
func ParseMatch(r io.Reader) (Assignment, error) {
	a := Assignment{NoMatch: true, Matches: make(map[market.RID]market.PID)}
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
			if len(fields) != 3 {
				errs = append(errs, fmt.Errorf("input error: resident line malformed: %q", line))
				continue
			}
			rid, err := strconv.Atoi(fields[1])
			if err != nil {
				errs = append(errs, fmt.Errorf("input error: malformed resident ID %q", fields[1]))
				continue
			}
			pid, err := strconv.Atoi(fields[2])
			if err != nil {
				errs = append(errs, fmt.Errorf("input error: malformed program ID %q", fields[2]))
				continue
			}
			a.Matches[market.RID(rid)] = market.PID(pid)
		case "m":
			if len(fields) != 2 {
				errs = append(errs, fmt.Errorf("input error: match-flag line malformed: %q", line))
				continue
			}
			flag, err := strconv.Atoi(fields[1])
			if err != nil {
				errs = append(errs, fmt.Errorf("input error: malformed match flag %q", fields[1]))
				continue
			}
			a.NoMatch = flag != 1
		default:
			errs = append(errs, fmt.Errorf("input error: line %q is invalid", line))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Assignment{}, errors.Join(errs...)
	}
	return a, nil
}

// WriteAssignment prints the final match, one "r <rid> <pid>" per
// applicant in ID order, per the problem file's own ID space.
func WriteAssignment(w io.Writer, p *market.Problem) error {
	bw := bufio.NewWriter(w)
	for _, r := range p.AllApplicantIDs() {
		if _, err := fmt.Fprintf(bw, "r %d %d\n", int(r), int(p.ApplicantMatch(r))); err != nil {
			return err
		}
	}
	return bw.Flush()
}
