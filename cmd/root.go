package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/workspace"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagSort    string
	flagMatches bool
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Terminal job notification tracker",
	Long: `jobtrack ranks a catalog of job postings against your preferences, tracks
application status and saved jobs, builds a daily digest and gates the final
submission behind a test checklist.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagSort, "sort", "", "initial sort: latest, score or salary")
	rootCmd.Flags().BoolVar(&flagMatches, "matches", false, "start with only matching jobs shown")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(shipCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jobtrack %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// postingID parses a posting id argument and checks it against the catalog.
func postingID(ws *workspace.Workspace, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	if _, ok := ws.Catalog.ByID(id); !ok {
		return 0, fmt.Errorf("no job with id %d", id)
	}
	return id, nil
}
