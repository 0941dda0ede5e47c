// Command crosspath counts the pairs of moving entities whose forward
// paths cross inside a square test window.
//
//	crosspath -input hail.txt -low 200000000000000 -high 400000000000000
//	crosspath -input - -low 7 -high 27 -hits < example.txt
//	crosspath history -db runs.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/crosspath/internal/analysis"
	"github.com/banshee-data/crosspath/internal/config"
	"github.com/banshee-data/crosspath/internal/db"
	"github.com/banshee-data/crosspath/internal/intersect"
	"github.com/banshee-data/crosspath/internal/monitoring"
	"github.com/banshee-data/crosspath/internal/report"
	"github.com/banshee-data/crosspath/internal/security"
	"github.com/banshee-data/crosspath/internal/trajectory"
	"github.com/banshee-data/crosspath/internal/version"
)

// errDisagree marks a -compare run whose solvers did not agree.
var errDisagree = errors.New("solvers disagree")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code:
// 0 on success, 1 on failure, 2 on bad usage.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "crosspath: ", 0)
	monitoring.SetLogger(logger.Printf)

	if len(args) > 0 && args[0] == "history" {
		return runHistory(args[1:], stdout, logger)
	}

	fs := flag.NewFlagSet("crosspath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "Trajectory file, one \"px, py, pz @ vx, vy, vz\" per line (- for stdin)")
	configPath := fs.String("config", "", "Analysis config JSON (see config/analysis.defaults.json)")
	low := fs.Float64("low", 0, "Lower bound of the test window (overrides config)")
	high := fs.Float64("high", 0, "Upper bound of the test window (overrides config)")
	solverName := fs.String("solver", "", "Solver: algebraic or parametric (overrides config)")
	planeName := fs.String("plane", "", "Projection plane: xy, xz or yz (overrides config)")
	horizon := fs.Float64("horizon", 0, "Fixed parametric lookahead; 0 derives it from the window")
	workers := fs.Int("workers", 0, "Parallel workers; 0 uses GOMAXPROCS, 1 runs sequentially")
	tolerance := fs.Float64("tolerance", 0, "Point tolerance for -compare (overrides config)")
	skipDegenerate := fs.Bool("skip-degenerate", false, "Skip trajectories the solver cannot handle instead of failing")
	printHits := fs.Bool("hits", false, "Print every qualifying pair and its crossing point")
	compare := fs.Bool("compare", false, "Run both solvers and report where they disagree")
	dbPath := fs.String("db", "", "Record the run in this sqlite database")
	htmlPath := fs.String("html", "", "Write an interactive scatter of the crossings to this file")
	pngPath := fs.String("png", "", "Write a static scatter of the crossings to this file")
	verbose := fs.Bool("v", false, "Log per-entity detail")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "crosspath %s\n", version.String())
		return 0
	}
	if *input == "" {
		logger.Printf("-input is required")
		fs.Usage()
		return 2
	}
	monitoring.SetVerbose(*verbose)
	defer monitoring.SetVerbose(false)

	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadAnalysisConfig(*configPath); err != nil {
			logger.Printf("%v", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "low":
			cfg.WindowLow = config.PtrFloat64(*low)
		case "high":
			cfg.WindowHigh = config.PtrFloat64(*high)
		case "solver":
			cfg.Solver = config.PtrString(*solverName)
		case "plane":
			cfg.Plane = config.PtrString(*planeName)
		case "horizon":
			cfg.Horizon = config.PtrFloat64(*horizon)
		case "workers":
			cfg.Workers = config.PtrInt(*workers)
		case "tolerance":
			cfg.Tolerance = config.PtrFloat64(*tolerance)
		case "skip-degenerate":
			cfg.SkipDegenerate = config.PtrBool(*skipDegenerate)
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Printf("invalid configuration: %v", err)
		return 2
	}

	for _, out := range []string{*htmlPath, *pngPath} {
		if out == "" {
			continue
		}
		if err := security.ValidateExportPath(out); err != nil {
			logger.Printf("%v", err)
			return 2
		}
	}

	set, err := readInput(*input, stdin)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	window, err := analysis.NewWindow(cfg.GetWindowLow(), cfg.GetWindowHigh())
	if err != nil {
		logger.Printf("%v", err)
		return 2
	}

	if *compare {
		if err := runCompare(cfg, set, window, stdout); err != nil {
			logger.Printf("%v", err)
			return 1
		}
		return 0
	}

	solver, err := cfg.NewSolver()
	if err != nil {
		logger.Printf("%v", err)
		return 2
	}

	collect := *printHits || *dbPath != "" || *htmlPath != "" || *pngPath != ""
	res, err := analysis.Analyze(ctx, set, analysis.Options{
		Window:         window,
		Solver:         solver,
		Workers:        cfg.GetWorkers(),
		CollectHits:    collect,
		SkipDegenerate: cfg.GetSkipDegenerate(),
	})
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	if *printHits {
		for _, h := range res.Hits {
			fmt.Fprintf(stdout, "%d %d %.6f %.6f\n", h.A, h.B, h.Point.X, h.Point.Y)
		}
	}
	fmt.Fprintln(stdout, res.Count)

	if *dbPath != "" {
		digest := trajectory.Fingerprint(set)
		if err := recordRun(*dbPath, *input, digest, cfg.GetHorizon(), res, logger); err != nil {
			logger.Printf("record run: %v", err)
			return 1
		}
	}

	title := fmt.Sprintf("%s crossings in %s", res.Solver, res.Window)
	if *htmlPath != "" {
		if err := writeHTMLFile(*htmlPath, title, res); err != nil {
			logger.Printf("%v", err)
			return 1
		}
	}
	if *pngPath != "" {
		if err := report.WritePNG(*pngPath, title, res.Window, res.Hits); err != nil {
			logger.Printf("%v", err)
			return 1
		}
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]trajectory.Trajectory, error) {
	if path == "-" {
		return trajectory.ParseReader(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	set, err := trajectory.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func runCompare(cfg *config.AnalysisConfig, set []trajectory.Trajectory, window analysis.Window, stdout io.Writer) error {
	first, err := intersect.New(intersect.KindAlgebraic, cfg.SolverOptions()...)
	if err != nil {
		return err
	}
	second, err := intersect.New(intersect.KindParametric, cfg.SolverOptions()...)
	if err != nil {
		return err
	}

	c := analysis.Compare(set, window, first, second, cfg.GetTolerance())
	fmt.Fprintf(stdout, "%s: %d\n%s: %d\n", c.First, c.CountFirst, c.Second, c.CountSecond)
	fmt.Fprintf(stdout, "pairs=%d skipped=%d mismatched=%d compared=%d deviating=%d max_rel_dev=%.3g mean_rel_dev=%.3g\n",
		c.Pairs, c.Skipped, c.Mismatched, c.Compared, c.Deviating, c.MaxRelDeviation, c.MeanRelDeviation)
	for _, d := range c.Samples {
		fmt.Fprintf(stdout, "  pair (%d, %d): %s=%s %s=%s\n", d.A, d.B, c.First, formatPoint(d.First), c.Second, formatPoint(d.Second))
	}
	if !c.Agree() {
		return errDisagree
	}
	return nil
}

func formatPoint(p *intersect.Point) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}

func recordRun(path, source, digest string, horizon float64, res *analysis.Result, logger *log.Logger) error {
	database, err := db.OpenDB(path)
	if err != nil {
		return err
	}
	defer database.Close()

	store := db.NewRunStore(database)
	run := db.RunFromResult(res, source, digest, horizon)
	if err := store.InsertRun(run); err != nil {
		return err
	}
	if err := store.InsertHits(run.RunID, res.Hits); err != nil {
		return err
	}
	logger.Printf("recorded run %s in %s (input %s)", run.RunID, path, digest)
	return nil
}

func writeHTMLFile(path, title string, res *analysis.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteHTML(f, title, res.Window, res.Hits); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
