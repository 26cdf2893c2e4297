package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/filter"
	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/workspace"
)

var (
	flagListSearch     string
	flagListLocation   string
	flagListExperience string
	flagListMode       string
	flagListStatus     string
	flagListMatches    bool
	flagListSort       string
	flagListLimit      int
	flagListTrace      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the ranked job list",
	Long: `Print jobs filtered and sorted the same way as the dashboard.

Filters combine with AND. --matches keeps only jobs at or above your
minimum match score and needs saved preferences.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		strategy := s.cfg.Sort()
		if flagListSort != "" {
			if strategy, err = rank.ParseStrategy(flagListSort); err != nil {
				return fmt.Errorf("invalid --sort value: %w", err)
			}
		}
		q := workspace.Query{
			Filter: filter.State{
				Search:     flagListSearch,
				Location:   flagListLocation,
				Experience: flagListExperience,
				Mode:       flagListMode,
				Status:     flagListStatus,
			},
			MatchesOnly: flagListMatches || s.cfg.MatchesOnly,
			Sort:        strategy,
		}

		out := cmd.OutOrStdout()
		if q.MatchesOnly && !s.ws.HasPreferences() {
			fmt.Fprintln(out, "No preferences saved; --matches has no effect. Set them with `jobtrack prefs set`.")
		}

		view := s.ws.View(q)
		total := len(view)
		if flagListLimit > 0 && len(view) > flagListLimit {
			view = view[:flagListLimit]
		}
		writeJobTable(out, s.ws, view)
		fmt.Fprintf(out, "\nShowing %d of %d jobs (sorted by %s)\n", len(view), total, strategy.Label())

		if flagListTrace {
			fmt.Fprintln(out)
			for _, sc := range s.ws.Trace(q) {
				fmt.Fprintf(out, "  %-10s %d\n", sc.Stage, sc.Count)
			}
		}
		return nil
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&flagListSearch, "search", "", "match title or company")
	f.StringVar(&flagListLocation, "location", "", "location (e.g. Bangalore, Remote)")
	f.StringVar(&flagListExperience, "experience", "", "experience (Fresher, 0-1, 1-3, 3-5, 5+)")
	f.StringVar(&flagListMode, "mode", "", "work mode (Remote, Hybrid, Onsite)")
	f.StringVar(&flagListStatus, "status", "", "application status (Not Applied, Applied, Selected, Rejected)")
	f.BoolVar(&flagListMatches, "matches", false, "only jobs at or above your minimum match score")
	f.StringVar(&flagListSort, "sort", "", "latest, score or salary")
	f.IntVar(&flagListLimit, "limit", 0, "print at most n jobs (0 for all)")
	f.BoolVar(&flagListTrace, "trace", false, "print how many jobs survive each filter stage")
}

func writeJobTable(w io.Writer, ws *workspace.Workspace, jobs []match.Scored) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs match your search.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCORE\tTITLE\tCOMPANY\tLOCATION\tMODE\tEXPERIENCE\tSALARY\tSTATUS\tSAVED")
	for _, j := range jobs {
		saved := ""
		if ws.Saved.Has(j.ID) {
			saved = "★"
		}
		fmt.Fprintf(tw, "%d\t%d%%\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Score, j.Title, j.Company, j.Location, j.Mode, j.Experience,
			rank.FormatSalary(rank.SalaryValue(j.SalaryRange)), ws.Status.Get(j.ID), saved)
	}
	tw.Flush()
}
