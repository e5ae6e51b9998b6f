package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rhartert/cdcl/internal/sat"
	"github.com/rhartert/cdcl/parsers"
)

var log = logrus.New()

type config struct {
	instanceFile string
	gzipped      bool
	cpuProfile   string
	memProfile   string
	maxConflicts int64
	timeout      time.Duration
	minimize     bool
	bumpOrder    string
	scoreHeap    bool
	phaseSaving  bool
	verbose      bool
}

var bumpOrders = map[string]sat.BumpOrder{
	"none":         sat.BumpOrderNone,
	"bumped":       sat.BumpOrderBumped,
	"trail":        sat.BumpOrderTrail,
	"bumped-trail": sat.BumpOrderBumpedPlusTrail,
	"score":        sat.BumpOrderScore,
	"reverse":      sat.BumpOrderReverse,
}

func solverOptions(cfg *config) (sat.Options, error) {
	options := sat.DefaultOptions
	if cfg.maxConflicts >= 0 {
		options.MaxConflicts = cfg.maxConflicts
	}
	if cfg.timeout >= 0 {
		options.Timeout = cfg.timeout
	}
	options.Minimize = cfg.minimize
	options.ScoreHeap = cfg.scoreHeap
	options.PhaseSaving = cfg.phaseSaving

	bo, ok := bumpOrders[cfg.bumpOrder]
	if !ok {
		return options, fmt.Errorf("unknown bump order %q", cfg.bumpOrder)
	}
	options.BumpOrder = bo

	return options, nil
}

func run(cfg *config) error {
	options, err := solverOptions(cfg)
	if err != nil {
		return err
	}

	s := sat.NewSolver(options)
	if err := parsers.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	log.Debugf("loaded %s: %d variables, %d clauses",
		cfg.instanceFile, s.NumVariables(), s.NumConstraints())

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.Stats.Conflicts, float64(s.Stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c learnt:     %d (%d units, %d binaries)\n", s.Stats.Learned, s.Stats.Units, s.Stats.Binaries)

	switch status {
	case sat.True:
		fmt.Println("s SATISFIABLE")
	case sat.False:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}

	return nil
}

func newRootCommand() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:          "cdcl [flags] instance.cnf",
		Short:        "A conflict-driven clause-learning SAT solver",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.instanceFile = args[0]

			if cfg.verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			if cfg.cpuProfile != "" {
				f, err := os.Create(cfg.cpuProfile)
				if err != nil {
					return err
				}
				pprof.StartCPUProfile(f)
				defer pprof.StopCPUProfile()
			}

			if err := run(cfg); err != nil {
				return err
			}

			if cfg.memProfile != "" {
				f, err := os.Create(cfg.memProfile)
				if err != nil {
					return err
				}
				defer f.Close()
				return pprof.WriteHeapProfile(f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cfg.gzipped, "gzip", false, "treat the instance file as gzipped")
	cmd.Flags().StringVar(&cfg.cpuProfile, "cpuprof", "", "save a pprof CPU profile in the given file")
	cmd.Flags().StringVar(&cfg.memProfile, "memprof", "", "save a pprof memory profile in the given file")
	cmd.Flags().Int64Var(&cfg.maxConflicts, "max-conflicts", -1, "maximum number of conflicts (-1 = no maximum)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", -1, "time budget for the search (-1 = no timeout)")
	cmd.Flags().BoolVar(&cfg.minimize, "minimize", true, "minimize learned clauses")
	cmd.Flags().StringVar(&cfg.bumpOrder, "bump-order", "bumped-trail", "group bump order: none, bumped, trail, bumped-trail, score, reverse")
	cmd.Flags().BoolVar(&cfg.scoreHeap, "score-heap", false, "use the score heap instead of the VMTF queue for decisions")
	cmd.Flags().BoolVar(&cfg.phaseSaving, "phase-saving", false, "reuse the last polarity of decision variables")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
