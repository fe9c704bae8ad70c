package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nrmp/matchrp/pkg/engine"
	"github.com/nrmp/matchrp/pkg/market"
	"github.com/nrmp/matchrp/pkg/matchfile"
	"github.com/samber/lo"
)

// AlgorithmType names one of the engine configurations under benchmark.
type AlgorithmType int

const (
	rothPeransonStatic AlgorithmType = iota
	rothPeransonRandomized
	kpr
)

var algorithmNames = map[AlgorithmType]string{
	rothPeransonStatic:     "roth-peranson-static",
	rothPeransonRandomized: "roth-peranson-randomized",
	kpr:                    "kpr",
}

func algorithms() []AlgorithmType {
	return []AlgorithmType{rothPeransonStatic, rothPeransonRandomized, kpr}
}

func newEngine(a AlgorithmType) (engine.Engine, engine.Options) {
	switch a {
	case rothPeransonRandomized:
		return engine.NewRothPeranson(), engine.Options{Randomize: true}
	case kpr:
		return engine.NewKPR(), engine.Options{}
	default:
		return engine.NewRothPeranson(), engine.Options{Randomize: false}
	}
}

// InstanceMetadata describes the size of one problem-file, for context
// in the output alongside its benchmark results.
type InstanceMetadata struct {
	Name       string
	Applicants int
	Couples    int
	Programs   int
}

// BenchmarkResult is one (instance, algorithm) measurement.
type BenchmarkResult struct {
	Instance  InstanceMetadata
	Algorithm AlgorithmType
	Duration  time.Duration
	Stats     engine.Stats
}

func main() {
	dirPtr := flag.String("dir", "", "Directory of problem-files to benchmark")
	restartLimitPtr := flag.Int("restart-limit", 1, "Restart limit for the Roth-Peranson configurations")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the output CSV file")
	flag.Parse()

	if *dirPtr == "" {
		log.Fatal("a problem-file directory must be specified with -dir")
	}

	instances := loadInstances(*dirPtr)
	results := make([]BenchmarkResult, 0, len(instances)*len(algorithms()))

	for _, inst := range instances {
		for _, algo := range algorithms() {
			fmt.Printf("Benchmarking instance %q with algorithm %q\n", inst.meta.Name, algorithmNames[algo])

			eng, opts := newEngine(algo)
			opts.RoundLimit = engine.DefaultOptions(inst.problem).RoundLimit
			opts.RestartLimit = *restartLimitPtr

			start := time.Now()
			stats, err := eng.Match(inst.problem, opts)
			duration := time.Since(start)
			if err != nil {
				log.Fatalf("error running %q on %q: %v", algorithmNames[algo], inst.meta.Name, err)
			}

			results = append(results, BenchmarkResult{
				Instance:  inst.meta,
				Algorithm: algo,
				Duration:  duration,
				Stats:     stats,
			})
		}
	}

	writeCSV(*outPtr, results)
}

type loadedInstance struct {
	meta    InstanceMetadata
	problem *market.Problem
}

func loadInstances(dir string) []loadedInstance {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	return lo.FilterMap(entries, func(entry os.DirEntry, _ int) (loadedInstance, bool) {
		if entry.IsDir() {
			return loadedInstance{}, false
		}
		path := dir + "/" + entry.Name()
		file, err := os.Open(path)
		if err != nil {
			log.Fatalf("cannot open %q: %v", path, err)
		}
		defer file.Close()

		raw, err := matchfile.ParseProblem(file)
		if err != nil {
			log.Fatalf("cannot parse %q: %v", path, err)
		}
		p, err := market.NewProblem(raw)
		if err != nil {
			log.Fatalf("cannot build problem from %q: %v", path, err)
		}

		return loadedInstance{
			meta: InstanceMetadata{
				Name:       path,
				Applicants: p.NumApplicants(),
				Couples:    p.NumCouples(),
				Programs:   p.NumPrograms(),
			},
			problem: p,
		}, true
	})
}

func writeCSV(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Instance", "Applicants", "Couples", "Programs", "Algorithm", "Duration(us)", "Rounds", "Restarts", "Rollbacks", "Bumps", "Converged"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, r := range results {
		record := []string{
			r.Instance.Name,
			fmt.Sprintf("%d", r.Instance.Applicants),
			fmt.Sprintf("%d", r.Instance.Couples),
			fmt.Sprintf("%d", r.Instance.Programs),
			algorithmNames[r.Algorithm],
			fmt.Sprintf("%d", r.Duration.Microseconds()),
			fmt.Sprintf("%d", r.Stats.Rounds),
			fmt.Sprintf("%d", r.Stats.Restarts),
			fmt.Sprintf("%d", r.Stats.Rollbacks),
			fmt.Sprintf("%d", r.Stats.Bumps),
			fmt.Sprintf("%v", r.Stats.Converged),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
