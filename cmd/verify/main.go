package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nrmp/matchrp/pkg/market"
	"github.com/nrmp/matchrp/pkg/matchfile"
	"github.com/nrmp/matchrp/pkg/verify"
)

func main() {
	verb := flag.Int("verb", 0, "Verbosity level (0=silent, 1=some, 2=more)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: verify [options] <problem-file> <match-file>")
		os.Exit(1)
	}
	problemPath, matchPath := flag.Arg(0), flag.Arg(1)

	problemFile, err := os.Open(problemPath)
	if err != nil {
		fmt.Printf("Problems reading problem file: %q\n%v\n", problemPath, err)
		os.Exit(1)
	}
	raw, err := matchfile.ParseProblem(problemFile)
	problemFile.Close()
	if err != nil {
		fmt.Printf("Problems reading problem file: %q\n%v\n", problemPath, err)
		os.Exit(1)
	}

	p, err := market.NewProblem(raw)
	if err != nil {
		fmt.Printf("Problems reading problem file: %q\n%v\n", problemPath, err)
		os.Exit(1)
	}

	matchFile, err := os.Open(matchPath)
	if err != nil {
		fmt.Printf("Problems reading match file: %q\n%v\n", matchPath, err)
		os.Exit(1)
	}
	assignment, err := matchfile.ParseMatch(matchFile)
	matchFile.Close()
	if err != nil {
		fmt.Printf("Problems reading match file: %q\n%v\n", matchPath, err)
		os.Exit(1)
	}

	if *verb > 0 {
		fmt.Printf("Inputted problem: %d residents, %d couples, %d programs\n", p.NumApplicants(), p.NumCouples(), p.NumPrograms())
	}

	if assignment.NoMatch {
		fmt.Println("No match found.")
		return
	}

	installAssignment(p, assignment)

	report := verify.NewVerifier().Check(p)
	if !report.OK() {
		fmt.Println("ERROR: Unstable Match.")
		for _, v := range report.Violations {
			fmt.Println(v.Error())
		}
		os.Exit(1)
	}
	fmt.Println("Match ok.")
}

// installAssignment loads a claimed assignment into p's mutable match
// state so the verifier can inspect it.
func installAssignment(p *market.Problem, a matchfile.Assignment) {
	for _, r := range p.AllApplicantIDs() {
		prog, ok := a.Matches[r]
		if !ok {
			prog = market.NilPID
		}
		p.SetApplicantMatch(r, prog)
		if prog != market.NilPID {
			p.Match(prog, r)
		}
	}
}
