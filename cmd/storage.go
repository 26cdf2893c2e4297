package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/gate"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/status"
)

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old daily digests from the local store",
	Long: `Delete stored digests older than the given age and reclaim disk space.

Defaults to 30d. Today's digest is never removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		retention, err := parseSince(flagPruneOlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}
		if retention < 0 {
			return fmt.Errorf("invalid --older-than value: %s is negative", flagPruneOlderThan)
		}

		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		deleted, err := s.db.PruneDigests(time.Now().Add(-retention))
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to prune.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d digest(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workspace and store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		dbPath := s.cfg.StorePath()
		keys, size, err := s.db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		sum := s.ws.Summary()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store: %s\n", dbPath)
		fmt.Fprintf(out, "Keys: %d\n", keys)
		fmt.Fprintf(out, "Size: %s\n\n", formatBytes(size))
		fmt.Fprintf(out, "Jobs: %d\n", sum.Postings)
		if s.ws.HasPreferences() {
			fmt.Fprintf(out, "Matches: %d\n", sum.Matches)
		} else {
			fmt.Fprintln(out, "Matches: - (no preferences)")
		}
		fmt.Fprintf(out, "Saved: %d\n", sum.Saved)
		for _, st := range status.All() {
			fmt.Fprintf(out, "%s: %d\n", st, sum.Statuses[st])
		}
		lock := "locked"
		if sum.Unlocked {
			lock = "unlocked"
		}
		fmt.Fprintf(out, "Checklist: %d/%d (%s)\n", sum.Checklist, gate.Total, lock)
		fmt.Fprintf(out, "Proof: %s\n", sum.Proof)
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "30d", "remove digests older than this (e.g., 7d, 720h)")
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
