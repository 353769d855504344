// Command bulwark computes a near-maximal attacker path for a map and
// the obstruction layout that forces it.
//
// Usage:
//
//	bulwark [flags] MAP_FILE
//
// MAP_FILE is a .json or .hcl map document. The plan is printed to
// stdout; progress and warnings go to stderr. Exit codes: 0 on success
// (including best-effort results under an exhausted budget), 1 for
// usage, I/O, or validation failures, 2 when no attacker can reach a
// core on the unobstructed map.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/okhramov/bulwark/grid"
	"github.com/okhramov/bulwark/mapfile"
	"github.com/okhramov/bulwark/placement"
	"github.com/okhramov/bulwark/render"
)

// exitError carries a process exit code alongside its message.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var xe *exitError
		if errors.As(err, &xe) {
			fmt.Fprintln(os.Stderr, xe.msg)
			os.Exit(xe.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the application logic behind main, split out for testing.
func run(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("bulwark", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var (
		maxBlocks    = fs.Int("max-blocks", 0, "maximum number of blocks to place (0 = unbounded)")
		workers      = fs.Int("workers", 0, "parallel candidate evaluations (0 = all CPUs)")
		nodeBudget   = fs.Int("node-budget", 2_000_000, "global search-node budget (0 = unlimited)")
		evalBudget   = fs.Int("eval-node-budget", 100_000, "per-candidate search-node budget (0 = unlimited)")
		timeLimit    = fs.Duration("time-limit", 0, "wall-clock budget for the whole run (0 = unlimited)")
		diagonals    = fs.Bool("diagonals", false, "allow diagonal movement")
		regionSafety = fs.Bool("region-safety", false, "require every spawn region to keep a path to a core")
		pngOut       = fs.String("png", "", "write a rendered plan PNG to this path")
		saveOut      = fs.String("save", "", "write the solved map document to this path as JSON")
		verbose      = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}
	if fs.NArg() != 1 {
		fs.Usage()

		return &exitError{code: 1, msg: "bulwark: exactly one map file is required"}
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Load and validate the map.
	doc, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}
	conn := grid.Conn4
	if *diagonals {
		conn = grid.Conn8
	}
	g, err := doc.Grid(grid.WithConnectivity(conn))
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}
	if err := g.RequireEndpoints(); err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}
	log.WithFields(log.Fields{
		"map":    doc.Name,
		"width":  g.Width(),
		"height": g.Height(),
		"spawns": len(g.Spawns()),
		"cores":  len(g.Cores()),
	}).Info("map loaded")

	// Search.
	opts := []placement.Option{
		placement.WithMaxBlocks(*maxBlocks),
		placement.WithWorkers(*workers),
		placement.WithNodeBudget(*nodeBudget),
		placement.WithEvalNodeBudget(*evalBudget),
		placement.WithTimeLimit(*timeLimit),
		placement.WithOnCommit(func(c placement.Commit) {
			log.WithFields(log.Fields{
				"iteration":   c.Iteration,
				"block":       fmt.Sprintf("(%d,%d)", c.Block.Row, c.Block.Col),
				"length":      c.Length,
				"evaluations": c.Evaluations,
			}).Info("block committed")
		}),
	}
	if *regionSafety {
		opts = append(opts, placement.WithRegionSafety())
	}

	plan, err := placement.Search(context.Background(), g, opts...)
	if err != nil {
		if errors.Is(err, placement.ErrBaselineUnreachable) {
			return &exitError{code: 2, msg: err.Error()}
		}

		return &exitError{code: 1, msg: err.Error()}
	}
	if plan.Reason == placement.BudgetExhausted {
		log.Warn("budget exhausted: result is best-effort, not converged")
	}

	writePlan(out, doc.Name, g, plan)

	// Optional artifacts.
	if *pngOut != "" {
		if err := writePNG(*pngOut, g, plan); err != nil {
			return &exitError{code: 1, msg: err.Error()}
		}
		log.WithField("path", *pngOut).Info("plan rendered")
	}
	if *saveOut != "" {
		doc.Annotate(g, plan)
		if err := mapfile.Save(*saveOut, doc); err != nil {
			return &exitError{code: 1, msg: err.Error()}
		}
		log.WithField("path", *saveOut).Info("solved map saved")
	}

	return nil
}

// writePlan prints the plan as an ASCII grid with the path overlaid.
func writePlan(out io.Writer, name string, g *grid.Grid, plan *placement.Plan) {
	onPath := make(map[grid.Position]bool, len(plan.Path))
	for _, p := range plan.Path {
		onPath[p] = true
	}

	fmt.Fprintf(out, "%s: path length %d (baseline %d, %d blocks, %s)\n",
		name, plan.Length, plan.Baseline, plan.Blocks.Len(), plan.Reason)
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			p := grid.Position{Row: r, Col: c}
			fmt.Fprintf(out, "%c", cellRune(g, plan, onPath, p))
		}
		fmt.Fprintln(out)
	}
}

// cellRune picks the display rune for one cell.
func cellRune(g *grid.Grid, plan *placement.Plan, onPath map[grid.Position]bool, p grid.Position) rune {
	switch t := g.TileAt(p); {
	case t == grid.Spawn:
		return 'S'
	case t == grid.Core:
		return 'C'
	case plan.Blocks.Has(p):
		return 'B'
	case onPath[p]:
		return '*'
	case t == grid.Pass:
		return '.'
	case t == grid.Impass:
		return '#'
	default:
		return ' '
	}
}

// writePNG renders the plan to path.
func writePNG(path string, g *grid.Grid, plan *placement.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bulwark: create %s: %w", path, err)
	}
	defer f.Close()

	return render.PNG(f, g, plan)
}
