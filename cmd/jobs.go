package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/browser"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/status"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one job with its score breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := postingID(s.ws, args[0])
		if err != nil {
			return err
		}
		p, _ := s.ws.Posting(id)
		b, _ := s.ws.Breakdown(id)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s at %s\n", p.Title, p.Company)
		fmt.Fprintf(out, "%s · %s · %s · %s\n", p.Location, p.Mode, p.Experience, p.Source)
		fmt.Fprintf(out, "Salary: %s (~%s)\n", p.SalaryRange, rank.FormatSalary(rank.SalaryValue(p.SalaryRange)))
		fmt.Fprintf(out, "Skills: %s\n", strings.Join(p.Skills, ", "))
		fmt.Fprintf(out, "Status: %s\n", s.ws.Status.Get(id))
		if note, ok := s.ws.Notes.Get(id); ok {
			fmt.Fprintf(out, "Note:   %s\n", note)
		}
		fmt.Fprintf(out, "\n%s\n\n", p.Description)
		if !s.ws.HasPreferences() {
			fmt.Fprintln(out, "Match: set preferences to see a score.")
		} else {
			fmt.Fprintf(out, "Match: %d%%\n", b.Final)
			fmt.Fprintf(out, "  role %d · description %d · location %d · mode %d\n", b.Role, b.Description, b.Location, b.Mode)
			fmt.Fprintf(out, "  experience %d · skills %d · fresh %d · source %d\n", b.Experience, b.Skills, b.Fresh, b.Source)
		}
		fmt.Fprintf(out, "Apply: %s\n", p.ApplyURL)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <id> [status]",
	Short: "Get or set the application status of a job",
	Long: `Print the status of a job, or set it. Valid statuses:
Not Applied, Applied, Rejected, Selected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Writer{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := postingID(s.ws, args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			e, ok := s.ws.Status.Entry(id)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", id, status.NotApplied)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (since %s)\n", id, e.Status, e.Timestamp.Local().Format("Jan 2 15:04"))
			return nil
		}

		st, err := status.Parse(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return s.ws.SetStatus(id, st)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save a job, or remove it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Writer{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := postingID(s.ws, args[0])
		if err != nil {
			return err
		}
		_, err = s.ws.ToggleSaved(id)
		return err
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		jobs := s.ws.SavedPostings()
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved jobs yet. Save one with `jobtrack save <id>`.")
			return nil
		}
		writeJobTable(cmd.OutOrStdout(), s.ws, jobs)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <id> [text]",
	Short: "Print, set or clear (with empty text) the note on a job",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := postingID(s.ws, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			if note, ok := s.ws.Notes.Get(id); ok {
				fmt.Fprintln(out, note)
			} else {
				fmt.Fprintf(out, "No note on job %d.\n", id)
			}
			return nil
		}

		text := strings.Join(args[1:], " ")
		if err := s.ws.Notes.Set(id, text); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(out, "Note removed.")
		} else {
			fmt.Fprintln(out, "Note saved.")
		}
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open the apply link of a job in your browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := postingID(s.ws, args[0])
		if err != nil {
			return err
		}
		p, _ := s.ws.Posting(id)
		if err := browser.Open(p.ApplyURL); err != nil {
			return fmt.Errorf("opening %s: %w", p.ApplyURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", p.ApplyURL)
		return nil
	},
}
