package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/proof"
)

var (
	flagProofProject string
	flagProofRepo    string
	flagProofDeploy  string
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Show or record the submission links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		links := s.ws.Proof.Load()
		f := cmd.Flags()
		if f.Changed("project") || f.Changed("repo") || f.Changed("deploy") {
			if f.Changed("project") {
				links.Project = flagProofProject
			}
			if f.Changed("repo") {
				links.Repository = flagProofRepo
			}
			if f.Changed("deploy") {
				links.Deployment = flagProofDeploy
			}
			if err := s.ws.Proof.Save(links); err != nil {
				return err
			}
			links = s.ws.Proof.Load()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Status: %s\n\n", s.ws.ProofStage())
		for _, l := range []struct{ label, value string }{
			{"Project", links.Project},
			{"GitHub Repository", links.Repository},
			{"Live Deployment", links.Deployment},
		} {
			mark := "missing"
			switch {
			case proof.ValidURL(l.value):
				mark = "ok"
			case l.value != "":
				mark = "invalid"
			}
			fmt.Fprintf(out, "  %-18s %-8s %s\n", l.label, mark, l.value)
		}
		return nil
	},
}

var proofExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the final submission text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		links := s.ws.Proof.Load()
		if !links.Complete() {
			return errors.New("all three links must be valid http(s) URLs (see `jobtrack proof --help`)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), proof.Submission(links))
		return nil
	},
}

func init() {
	f := proofCmd.Flags()
	f.StringVar(&flagProofProject, "project", "", "project link")
	f.StringVar(&flagProofRepo, "repo", "", "GitHub repository link")
	f.StringVar(&flagProofDeploy, "deploy", "", "live deployment link")

	proofCmd.AddCommand(proofExportCmd)
}
