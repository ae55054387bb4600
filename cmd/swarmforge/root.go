package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	runDirFlag  string
	workersFlag int
	verboseFlag bool

	logFileHandle *os.File
)

var rootCmd = &cobra.Command{
	Use:   "swarmforge",
	Short: "NEAT-evolved multi-ship combat agent trainer",
	Long:  "Trains, tournaments, and benchmarks NEAT-evolved combat agents against a deterministic battle simulator.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logFileHandle = setupLogging(verboseFlag)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFileHandle != nil {
			logFileHandle.Close()
		}
	},
}

// Execute runs the root command; errors are reported on stderr with a
// nonzero exit code, never a panic, per spec.md §7's configuration-error
// taxonomy.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&runDirFlag, "run-dir", "./runs", "directory containing run data")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "worker pool size (0 = auto); overridable via SWARMFORGE_WORKERS")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable file logging")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(tournamentCmd)
	rootCmd.AddCommand(benchCmd)
}
