package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/gate"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/proof"
)

// errShipLocked is returned by ship while the checklist is incomplete.
var errShipLocked = errors.New("ship is locked: complete all tests first (see `jobtrack checklist`)")

var flagResetYes bool

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Show the pre-ship test checklist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		printChecklist(cmd.OutOrStdout(), s.ws.Gate)
		return nil
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <item>...",
	Short: "Check or uncheck checklist items by number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		for _, a := range args {
			id, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid checklist item %q", a)
			}
			if err := s.ws.Gate.Toggle(id); err != nil {
				return err
			}
		}
		printChecklist(cmd.OutOrStdout(), s.ws.Gate)
		return nil
	},
}

var checklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Uncheck every checklist item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		s.ws.Gate.RequestReset()
		if !flagResetYes {
			s.ws.Gate.CancelReset()
			fmt.Fprintln(out, "Reset all test progress? Re-run with --yes to confirm.")
			return nil
		}
		if err := s.ws.Gate.ConfirmReset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Checklist reset.")
		return nil
	},
}

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Show the ship view; fails while the checklist is incomplete",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.ws.Gate.IsUnlocked() {
			done, total := s.ws.Gate.Progress()
			fmt.Fprintf(cmd.ErrOrStderr(), "Tests passed: %d / %d\n", done, total)
			return errShipLocked
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Ready to ship. All tests passed.")
		fmt.Fprintf(out, "Status: %s\n\n", s.ws.ProofStage())
		for i, step := range proof.Steps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
		return nil
	},
}

func init() {
	checklistResetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "confirm the reset")

	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistResetCmd)
}

func printChecklist(w io.Writer, g *gate.Gate) {
	state := g.State()
	done, total := g.Progress()
	fmt.Fprintf(w, "Tests Passed: %d / %d\n", done, total)
	for _, item := range gate.Items {
		mark := " "
		if state.Has(item.ID) {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %2d. %s\n", mark, item.ID, item.Label)
	}
	if !g.IsUnlocked() {
		fmt.Fprintln(w, "\nResolve all issues before shipping.")
	}
}
