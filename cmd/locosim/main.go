// locosim replays locomotion scenario scripts headless and reports what the
// character did.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/config"
	"github.com/Faultbox/locomotion/internal/locomotion"
	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/internal/scenario"
)

var (
	flagTable = flag.Bool("table", false, "Print a per-tick table")
	flagEvery = flag.Int("every", 1, "Print every Nth tick in the table")
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	scripts := flag.Args()
	if len(scripts) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, path := range scripts {
		ok, err := runScript(ctx, cfg, path)
		if err != nil {
			logger.Error("scenario error", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d scenarios failed\n", failed, len(scripts))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`locosim - replay locomotion scenarios

Usage:
  locosim [options] <scenario.yaml>...

Options:
  -table            Print a per-tick table
  -every N          With -table, print every Nth tick
  -config PATH      Config file whose locomotion tuning is the base
  -debug            Log state transitions

Examples:
  locosim scenarios/jump.yaml
  locosim -table -every 10 scenarios/crouch.yaml`)
}

func runScript(ctx context.Context, cfg *config.Config, path string) (bool, error) {
	s, err := scenario.Load(path, cfg.Locomotion)
	if err != nil {
		return false, err
	}

	res, err := scenario.Run(ctx, s, cfg.Camera)
	if err != nil {
		return false, err
	}

	name := s.Name
	if name == "" {
		name = path
	}
	fmt.Printf("== %s\n", name)

	if *flagTable {
		printTable(res.Records, *flagEvery)
	}
	printSummary(res.Summarize())

	for _, f := range res.Failures {
		fmt.Printf("  FAIL %s\n", f)
	}
	if res.Passed() {
		fmt.Println("  ok")
	}
	return res.Passed(), nil
}

func printTable(records []scenario.Record, every int) {
	if every < 1 {
		every = 1
	}
	fmt.Printf("  %5s %7s %-10s %-3s %8s %8s %8s %7s %7s %7s\n",
		"tick", "time", "state", "gnd", "x", "y", "z", "speed", "vy", "yaw")
	for _, r := range records {
		if r.Tick%every != 0 && r.Tick != len(records) {
			continue
		}
		grounded := "-"
		if r.Grounded {
			grounded = "G"
		}
		fmt.Printf("  %5d %7.3f %-10s %-3s %8.3f %8.3f %8.3f %7.3f %7.3f %7.1f\n",
			r.Tick, r.Time, r.State, grounded,
			r.Position.X, r.Position.Y, r.Position.Z,
			r.Velocity.Flat().Length(), r.VerticalVelocity, r.Yaw)
	}
}

func printSummary(s scenario.Summary) {
	fmt.Printf("  ticks:       %d (%.2fs)\n", s.Ticks, s.Duration)
	fmt.Printf("  final:       %v at (%.2f, %.2f, %.2f)\n", s.Final.State, s.Final.Position.X, s.Final.Position.Y, s.Final.Position.Z)
	fmt.Printf("  distance:    %.2f\n", s.Distance)
	fmt.Printf("  max speed:   %.2f\n", s.MaxSpeed)
	fmt.Printf("  max height:  %.2f\n", s.MaxHeight)
	fmt.Printf("  transitions: %d\n", s.Transitions)

	states := make([]locomotion.MovementState, 0, len(s.TimeIn))
	for st := range s.TimeIn {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	for _, st := range states {
		fmt.Printf("    %-10s %.2fs\n", st, s.TimeIn[st])
	}
}
