package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/browser"
	"github.com/matheuskafuri/jobtrack/internal/digest"
	"github.com/matheuskafuri/jobtrack/internal/notify"
)

var flagDigestEmail bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print today's top matches",
	Long: `Print today's digest of the best matching jobs. The digest is generated
on the first run of the day and stays the same until tomorrow.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		d, err := s.ws.Digest(time.Now())
		if errors.Is(err, digest.ErrNoPreferences) {
			fmt.Fprintln(out, "Personalize Your Digest: set preferences with `jobtrack prefs set` first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("generating digest: %w", err)
		}

		fmt.Fprintln(out, d.Text())
		if flagDigestEmail {
			if err := browser.Open(d.MailtoURL()); err != nil {
				return fmt.Errorf("opening email draft: %w", err)
			}
		}
		return nil
	},
}

func init() {
	digestCmd.Flags().BoolVar(&flagDigestEmail, "email", false, "open the digest as an email draft")
}
