package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/browser"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	queue := &notify.Queue{}
	s, err := openSession(queue)
	if err != nil {
		return err
	}
	defer s.Close()

	strategy := s.cfg.Sort()
	if flagSort != "" {
		if strategy, err = rank.ParseStrategy(flagSort); err != nil {
			return fmt.Errorf("invalid --sort value: %w", err)
		}
	}

	return tui.Run(tui.RunOpts{
		Workspace:   s.ws,
		Queue:       queue,
		Sort:        strategy,
		MatchesOnly: flagMatches || s.cfg.MatchesOnly,
		ToastTTL:    s.cfg.NotificationDuration(),
		Launcher:    browser.System,
		Now:         time.Now,
	})
}

// parseSince accepts Go durations plus a whole-day suffix ("7d").
func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
