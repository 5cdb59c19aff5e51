package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/viz"
	"github.com/banshee-data/walk.report/internal/walker"
	"github.com/banshee-data/walk.report/internal/walkstore"
)

// kernelFlags holds the kernel selection shared by compute and walk. The
// short names match the generators' own short names.
type kernelFlags struct {
	name        string
	persistence float64
	probability float64
	direction   string
	diffusion   float64
	size        int
}

func (kf *kernelFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&kf.name, "kernel", "srw", "kernel: srw, brw, crw, bcrw, lw, nd")
	fs.Float64Var(&kf.persistence, "persistence", 0.5, "step persistence (crw, bcrw)")
	fs.Float64Var(&kf.probability, "probability", 0.5, "bias strength (brw, bcrw)")
	fs.StringVar(&kf.direction, "direction", "north", "bias direction: north, east, south, west")
	fs.Float64Var(&kf.diffusion, "diffusion", 1.0, "diffusion of the normal kernel (nd)")
	fs.IntVar(&kf.size, "kernel-size", 5, "kernel side length (nd)")
}

func parseDirection(s string) (kernel.Direction, error) {
	switch strings.ToLower(s) {
	case "north", "n":
		return kernel.North, nil
	case "east", "e":
		return kernel.East, nil
	case "south", "s":
		return kernel.South, nil
	case "west", "w":
		return kernel.West, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// buildKernels turns the kernel flags into generated kernels. A single-kernel
// result drives a simple program, a multi-kernel result a multi program.
func buildKernels(kf kernelFlags) ([]*kernel.Kernel, error) {
	switch kf.name {
	case "srw":
		k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
		if err != nil {
			return nil, err
		}
		return []*kernel.Kernel{k}, nil
	case "brw":
		dir, err := parseDirection(kf.direction)
		if err != nil {
			return nil, err
		}
		k, err := kernel.FromGenerator(kernel.BiasedRwGenerator{Probability: kf.probability, Direction: dir})
		if err != nil {
			return nil, err
		}
		return []*kernel.Kernel{k}, nil
	case "crw":
		return kernel.MultipleFromGenerator(kernel.CorrelatedRwGenerator{Persistence: kf.persistence})
	case "bcrw":
		dir, err := parseDirection(kf.direction)
		if err != nil {
			return nil, err
		}
		return kernel.MultipleFromGenerator(kernel.BiasedCorrelatedRwGenerator{
			Probability: kf.probability,
			Direction:   dir,
			Persistence: kf.persistence,
		})
	case "lw":
		k, err := kernel.FromGenerator(kernel.LevyWalkGenerator{})
		if err != nil {
			return nil, err
		}
		return []*kernel.Kernel{k}, nil
	case "nd":
		k, err := kernel.FromGenerator(kernel.NormalDistGenerator{Diffusion: kf.diffusion, Size: kf.size})
		if err != nil {
			return nil, err
		}
		return []*kernel.Kernel{k}, nil
	default:
		return nil, fmt.Errorf("unknown kernel %q", kf.name)
	}
}

func openStore(path string) *walkstore.Store {
	s, err := walkstore.Open(path)
	if err != nil {
		log.Fatalf("Failed to open walk store: %v", err)
	}
	return s
}

// runCompute builds a dynamic program from the kernel flags, computes it, and
// stores the result as a named snapshot.
func runCompute(args []string) {
	fs := flag.NewFlagSet("compute", flag.ExitOnError)
	var kf kernelFlags
	kf.register(fs)
	timeLimit := fs.Int("time-limit", 50, "time horizon of the dynamic program")
	parallel := fs.Bool("parallel", false, "compute with the tiled worker pool")
	dbPath := fs.String("db", defaultDBFile, "walk store database file")
	name := fs.String("name", "default", "snapshot name")
	fs.Parse(args)

	kernels, err := buildKernels(kf)
	if err != nil {
		log.Fatalf("Failed to build kernels: %v", err)
	}

	b := dp.NewBuilder().TimeLimit(*timeLimit)
	if len(kernels) == 1 {
		b = b.Simple().Kernel(kernels[0])
	} else {
		b = b.Multi().Kernels(kernels)
	}

	prog, err := b.Build()
	if err != nil {
		log.Fatalf("Failed to build dynamic program: %v", err)
	}

	if *parallel {
		prog.ComputeParallel()
	} else {
		prog.Compute()
	}

	store := openStore(*dbPath)
	defer store.Close()
	if err := store.MigrateUp(defaultMigrationsDir); err != nil {
		log.Fatalf("Failed to migrate walk store: %v", err)
	}
	if err := store.SaveSnapshot(*name, prog); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}
	log.Printf("Computed %s (time limit %d) and saved snapshot %q", kernels[0].Name(false), *timeLimit, *name)
}

// buildWalker turns a walker short name into a walker. Loaded snapshots hold
// only a placeholder kernel, so the kernel-reweighting walkers (msw, lw) get
// the kernel rebuilt from the kernel flags.
func buildWalker(name string, maxStep int, jumpProbability float64, jumpDistance int, kf kernelFlags) (walker.Walker, error) {
	switch name {
	case "swg":
		return walker.Standard{}, nil
	case "cwg":
		return walker.Correlated{}, nil
	case "msw", "lw":
		kernels, err := buildKernels(kf)
		if err != nil {
			return nil, err
		}
		if len(kernels) != 1 {
			return nil, fmt.Errorf("walker %q needs a single-kernel model, not %q", name, kf.name)
		}
		if name == "msw" {
			return walker.MultiStep{MaxStepSize: maxStep, Kernel: kernels[0]}, nil
		}
		return walker.Levy{JumpProbability: jumpProbability, JumpDistance: jumpDistance, Kernel: kernels[0]}, nil
	default:
		return nil, fmt.Errorf("unknown walker %q", name)
	}
}

// runWalk samples walks toward a target cell from a stored snapshot,
// records them as a run, and optionally plots them.
func runWalk(args []string) {
	fs := flag.NewFlagSet("walk", flag.ExitOnError)
	var kf kernelFlags
	kf.register(fs)
	dbPath := fs.String("db", defaultDBFile, "walk store database file")
	name := fs.String("name", "default", "snapshot name")
	walkerName := fs.String("walker", "swg", "walker: swg, cwg, msw, lw")
	toX := fs.Int("to-x", 0, "target cell x")
	toY := fs.Int("to-y", 0, "target cell y")
	steps := fs.Int("steps", 10, "time steps per walk")
	count := fs.Int("count", 1, "number of walks to sample")
	maxStep := fs.Int("max-step", 2, "maximum step size (msw)")
	jumpProbability := fs.Float64("jump-probability", 0.05, "jump probability (lw)")
	jumpDistance := fs.Int("jump-distance", 10, "jump distance (lw)")
	plotPath := fs.String("plot", "", "write a PNG plot of the walks to this file")
	fs.Parse(args)

	store := openStore(*dbPath)
	defer store.Close()
	if err := store.MigrateUp(defaultMigrationsDir); err != nil {
		log.Fatalf("Failed to migrate walk store: %v", err)
	}

	prog, err := store.LoadSnapshot(*name)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	w, err := buildWalker(*walkerName, *maxStep, *jumpProbability, *jumpDistance, kf)
	if err != nil {
		log.Fatalf("Failed to build walker: %v", err)
	}

	walks, err := walker.GeneratePaths(w, prog, *count, *toX, *toY, *steps)
	if err != nil {
		log.Fatalf("Failed to generate walks: %v", err)
	}

	runID, err := store.InsertRun(w.Name(true), *name, *steps)
	if err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}
	if err := store.InsertWalks(runID, walks); err != nil {
		log.Fatalf("Failed to store walks: %v", err)
	}
	log.Printf("Generated %d walks to (%d, %d) with %s, run %s", len(walks), *toX, *toY, w.Name(false), runID)

	if *plotPath != "" {
		title := fmt.Sprintf("%s to (%d, %d)", w.Name(false), *toX, *toY)
		if err := viz.PlotWalks(*plotPath, title, walks); err != nil {
			log.Fatalf("Failed to plot walks: %v", err)
		}
	}
}

// runHeatmap renders a snapshot's occupancy probabilities at one time step.
func runHeatmap(args []string) {
	fs := flag.NewFlagSet("heatmap", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBFile, "walk store database file")
	name := fs.String("name", "default", "snapshot name")
	timeStep := fs.Int("t", 0, "time step to render")
	out := fs.String("out", "heatmap.html", "output HTML file")
	fs.Parse(args)

	store := openStore(*dbPath)
	defer store.Close()

	prog, err := store.LoadSnapshot(*name)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	if err := viz.RenderOccupancy(f, prog, *timeStep); err != nil {
		log.Fatalf("Failed to render heatmap: %v", err)
	}
	log.Printf("Rendered occupancy at t=%d to %s", *timeStep, *out)
}

// runListRuns prints the recorded runs.
func runListRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBFile, "walk store database file")
	fs.Parse(args)

	store := openStore(*dbPath)
	defer store.Close()

	runs, err := store.ListRuns()
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	for _, r := range runs {
		fmt.Println(r)
	}
}

// runMigrate handles the 'migrate' subcommand dispatching.
func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBFile, "walk store database file")
	migrationsDir := fs.String("migrations", defaultMigrationsDir, "migrations directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		log.Fatal("Usage: walk-report migrate [flags] <up|down|version|force <version>>")
	}

	store := openStore(*dbPath)
	defer store.Close()

	switch fs.Arg(0) {
	case "up":
		if err := store.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Print("Migrations applied")
	case "down":
		if err := store.MigrateDown(*migrationsDir); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Print("Rolled back one migration")
	case "version":
		version, dirty, err := store.MigrateVersion(*migrationsDir)
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		log.Printf("Version %d (dirty=%v)", version, dirty)
	case "force":
		if fs.NArg() < 2 {
			log.Fatal("Usage: walk-report migrate force <version>")
		}
		var version int
		if _, err := fmt.Sscanf(fs.Arg(1), "%d", &version); err != nil {
			log.Fatalf("Invalid version %q: %v", fs.Arg(1), err)
		}
		if err := store.MigrateForce(*migrationsDir, version); err != nil {
			log.Fatalf("Force migration failed: %v", err)
		}
		log.Printf("Forced version %d", version)
	default:
		log.Fatalf("Unknown migrate action %q", fs.Arg(0))
	}
}
