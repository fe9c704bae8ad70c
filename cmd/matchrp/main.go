package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nrmp/matchrp/pkg/config"
	"github.com/nrmp/matchrp/pkg/engine"
	"github.com/nrmp/matchrp/pkg/market"
	"github.com/nrmp/matchrp/pkg/matchfile"
	"golang.org/x/sys/unix"
)

const (
	versionMajor = 1
	versionMinor = 0
)

var (
	algo         *int
	rnd          *bool
	verbosity    *int
	cpuLim       *int
	memLim       *int
	version      *bool
	configPath   *string
	p            *market.Problem
	lastStats    engine.Stats
)

func main() {
	algo = flag.Int("algo", 0, "Matching algorithm: 0 = Roth-Peranson, 2 = KPR")
	rnd = flag.Bool("rnd", false, "Re-randomize the couple pool between restarts (Roth-Peranson only)")
	verbosity = flag.Int("verbosity", 0, "Verbosity level (0..3)")
	cpuLim = flag.Int("cpu-lim", -1, "CPU-time limit in seconds (-1 = no limit)")
	memLim = flag.Int("mem-lim", -1, "Virtual memory limit in megabytes (-1 = no limit)")
	version = flag.Bool("version", false, "Print version number and exit")
	configPath = flag.String("config", "", "Path to an optional JSON tunables file")
	flag.Parse()

	if *version {
		fmt.Printf("matchrp %d.%d\n", versionMajor, versionMinor)
		return
	}

	applyResourceLimits(*cpuLim, *memLim)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: matchrp [options] <problem-file>")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("#Input ERROR: %v\n", err)
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Printf("Problems reading input file: %q\n%v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	raw, err := matchfile.ParseProblem(file)
	file.Close()
	if err != nil {
		fmt.Printf("Problems reading input file: %q\n%v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	p, err = market.NewProblem(raw)
	if err != nil {
		fmt.Printf("Problems reading input file: %q\n%v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	installSignalHandlers()

	fmt.Printf("#matchrp %d.%d\n", versionMajor, versionMinor)
	var eng engine.Engine
	switch *algo {
	case 0:
		eng = engine.NewRothPeranson()
		if *rnd {
			fmt.Println("#matchrp using Roth-Peranson 1999 algorithm with re-randomization of couple ordering")
		} else {
			fmt.Println("#matchrp using Roth-Peranson 1999 algorithm with static couple ordering")
		}
	case 2:
		eng = engine.NewKPR()
		fmt.Println("#matchrp using Kojima-Pathak-Roth appendix B.2 algorithm")
	default:
		fmt.Printf("Input ERROR: unknown algorithm selector %d\n", *algo)
		os.Exit(1)
	}

	opts := engine.DefaultOptions(p)
	if cfg.RoundLimit > 0 {
		opts.RoundLimit = cfg.RoundLimit
	}
	if cfg.RestartLimit > 0 {
		opts.RestartLimit = cfg.RestartLimit
	}
	opts.Randomize = *rnd

	if *verbosity > 0 {
		fmt.Printf("#Problem read: %d residents, %d couples, %d programs\n", p.NumApplicants(), p.NumCouples(), p.NumPrograms())
	}

	lastStats, err = eng.Match(p, opts)
	if err != nil {
		fmt.Printf("Input ERROR: %v\n", err)
		os.Exit(1)
	}

	printStats(lastStats)
	fmt.Println("#Final Match")
	if err := matchfile.WriteAssignment(os.Stdout, p); err != nil {
		log.Fatalf("#ERROR: could not write match: %v", err)
	}
}

func printStats(stats engine.Stats) {
	fmt.Printf("#Rounds: %d\n", stats.Rounds)
	fmt.Printf("#Restarts: %d\n", stats.Restarts)
	fmt.Printf("#Rollbacks: %d\n", stats.Rollbacks)
	fmt.Printf("#Bumps: %d\n", stats.Bumps)
	if !stats.Converged {
		fmt.Println("#WARNING: round limit exhausted before convergence; match below is unverified")
	}
}

func applyResourceLimits(cpuLim, memLim int) {
	if cpuLim >= 0 {
		var rl unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_CPU, &rl); err == nil {
			if rl.Max == unix.RLIM_INFINITY || uint64(cpuLim) < rl.Max {
				rl.Cur = uint64(cpuLim)
				if err := unix.Setrlimit(unix.RLIMIT_CPU, &rl); err != nil {
					fmt.Println("#WARNING! Could not set resource limit: CPU-time.")
				}
			}
		}
	}
	if memLim >= 0 {
		newMemLim := uint64(memLim) * 1024 * 1024
		var rl unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_AS, &rl); err == nil {
			if rl.Max == unix.RLIM_INFINITY || newMemLim < rl.Max {
				rl.Cur = newMemLim
				if err := unix.Setrlimit(unix.RLIMIT_AS, &rl); err != nil {
					fmt.Println("#WARNING! Could not set resource limit: Virtual memory.")
				}
			}
		}
	}
}

func installSignalHandlers() {
	sigs := make(chan os.Signal, 1)
	// SIGSEGV is deliberately excluded: Go's runtime handles synchronous
	// faults itself, and registering it here would only catch an
	// externally-sent SIGSEGV, not an actual memory fault.
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGXCPU, syscall.SIGTERM, syscall.SIGABRT)
	go func() {
		sig := <-sigs
		fmt.Println("#ERROR: Caught Signal")
		if p != nil {
			printStats(lastStats)
		}
		os.Exit(int(sig.(syscall.Signal)))
	}()
}
