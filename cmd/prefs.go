package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/prefs"
)

var (
	flagPrefRoles      string
	flagPrefLocations  string
	flagPrefModes      string
	flagPrefExperience string
	flagPrefSkills     string
	flagPrefMinScore   int
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change your matching preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsShowCmd.RunE(cmd, args)
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Discard{})
		if err != nil {
			return err
		}
		defer s.Close()

		printPreferences(cmd.OutOrStdout(), s.ws.Preferences())
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences; omitted flags keep their saved values",
	Long: `Update preferences. List flags take comma-separated values, for example

  jobtrack prefs set --roles "react,frontend" --locations Bangalore --modes Remote,Hybrid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Writer{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer s.Close()

		var p prefs.Preferences
		if cur := s.ws.Preferences(); cur != nil {
			p = *cur
		}
		f := cmd.Flags()
		if f.Changed("roles") {
			p.RoleKeywords = prefs.ParseList(flagPrefRoles)
		}
		if f.Changed("locations") {
			p.PreferredLocations = prefs.ParseList(flagPrefLocations)
		}
		if f.Changed("modes") {
			p.PreferredModes = prefs.ParseList(flagPrefModes)
		}
		if f.Changed("experience") {
			p.ExperienceLevel = flagPrefExperience
		}
		if f.Changed("skills") {
			p.Skills = prefs.ParseList(flagPrefSkills)
		}
		if f.Changed("min-score") {
			p = p.WithMinScore(flagPrefMinScore)
		}

		if err := s.ws.SavePreferences(p); err != nil {
			return err
		}
		printPreferences(cmd.OutOrStdout(), s.ws.Preferences())
		return nil
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(notify.Writer{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer s.Close()

		return s.ws.ClearPreferences()
	},
}

func init() {
	f := prefsSetCmd.Flags()
	f.StringVar(&flagPrefRoles, "roles", "", "role keywords, comma-separated")
	f.StringVar(&flagPrefLocations, "locations", "", "preferred locations, comma-separated")
	f.StringVar(&flagPrefModes, "modes", "", "preferred modes: Remote, Hybrid, Onsite")
	f.StringVar(&flagPrefExperience, "experience", "", "experience level (Fresher, 0-1, 1-3, 3-5, 5+)")
	f.StringVar(&flagPrefSkills, "skills", "", "skills, comma-separated")
	f.IntVar(&flagPrefMinScore, "min-score", prefs.DefaultMinScore, "minimum match score (0-100)")

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsClearCmd)
}

func printPreferences(w io.Writer, p *prefs.Preferences) {
	if p == nil {
		fmt.Fprintln(w, "No preferences saved. Set them with `jobtrack prefs set` to activate matching.")
		return
	}
	fmt.Fprintf(w, "Roles:       %s\n", orDash(p.RoleKeywords.String()))
	fmt.Fprintf(w, "Locations:   %s\n", orDash(p.PreferredLocations.String()))
	fmt.Fprintf(w, "Modes:       %s\n", orDash(p.PreferredModes.String()))
	fmt.Fprintf(w, "Experience:  %s\n", orDash(p.ExperienceLevel))
	fmt.Fprintf(w, "Skills:      %s\n", orDash(p.Skills.String()))
	fmt.Fprintf(w, "Min score:   %d\n", p.Threshold())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
