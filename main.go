package main

import (
	"fmt"
	"os"

	"github.com/banshee-data/walk.report/internal/version"
)

const defaultDBFile = "walks.db"
const defaultMigrationsDir = "migrations"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compute":
		runCompute(os.Args[2:])
	case "walk":
		runWalk(os.Args[2:])
	case "heatmap":
		runHeatmap(os.Args[2:])
	case "migrate":
		runMigrate(os.Args[2:])
	case "runs":
		runListRuns(os.Args[2:])
	case "version":
		fmt.Printf("walk-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: walk-report <command> [flags]

Commands:
  compute   build a dynamic program and save it as a snapshot
  walk      sample walks from a computed snapshot
  heatmap   render a snapshot's occupancy probabilities as HTML
  runs      list recorded walk generation runs
  migrate   manage the walk store database schema
  version   print build information
  help      show this help

Run 'walk-report <command> -h' for command flags.
`)
}
