package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage job preferences used for matching and the digest",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences. Only the given flags change",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		prefs := s.preferences()
		if prefs == nil {
			prefs = &preferences.Preferences{MinMatchScore: defaultMinMatchScore}
		}

		flags := cmd.Flags()
		if flags.Changed("keywords") {
			v, _ := flags.GetString("keywords")
			prefs.RoleKeywords = preferences.ParseCommaSeparated(v)
		}
		if flags.Changed("locations") {
			v, _ := flags.GetString("locations")
			prefs.PreferredLocations = preferences.ParseCommaSeparated(v)
		}
		if flags.Changed("modes") {
			v, _ := flags.GetString("modes")
			prefs.PreferredModes = parseModes(v)
		}
		if flags.Changed("experience") {
			prefs.ExperienceLevel, _ = flags.GetString("experience")
		}
		if flags.Changed("skills") {
			v, _ := flags.GetString("skills")
			prefs.Skills = preferences.ParseCommaSeparated(v)
		}
		if flags.Changed("min-score") {
			prefs.MinMatchScore, _ = flags.GetInt("min-score")
		}

		if err := prefs.Validate(); err != nil {
			s.logger.Fatal("validating preferences", zap.Error(err))
		}
		if prefs.ExperienceLevel != "" && !isExperienceLevel(prefs.ExperienceLevel) {
			s.logger.Fatal("validating preferences",
				zap.String("experience", prefs.ExperienceLevel),
				zap.Strings("expected", preferences.ExperienceLevels),
			)
		}

		s.savePreferences(prefs)
		s.logger.Info("preferences saved")
		printPreferences(cmd, prefs)
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preferences",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		prefs := s.preferences()
		if prefs == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No preferences set. Use 'careerdeck prefs set' to activate matching.")
			return
		}
		printPreferences(cmd, prefs)
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored preferences",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		if err := s.store.Remove(s.ctx, preferences.StorageKey); err != nil {
			s.logger.Fatal("removing preferences", zap.Error(err))
		}
		s.logger.Info("preferences removed")
	},
}

const defaultMinMatchScore = 40

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSetCmd, prefsShowCmd, prefsClearCmd)

	f := prefsSetCmd.Flags()
	f.String("keywords", "", "comma separated role keywords, e.g. \"frontend, react developer\"")
	f.String("locations", "", "comma separated preferred locations")
	f.String("modes", "", "comma separated work modes: Remote, Hybrid, Onsite")
	f.String("experience", "", "experience level: "+strings.Join(preferences.ExperienceLevels, ", "))
	f.String("skills", "", "comma separated skills")
	f.Int("min-score", defaultMinMatchScore, "minimum match score (0-100) for the digest and --only-matches")
}

// parseModes accepts modes in any case. Unknown values are kept so that
// validation can report them.
func parseModes(input string) []jobs.Mode {
	modes := []jobs.Mode{}
	for _, item := range preferences.ParseCommaSeparated(input) {
		mode := jobs.Mode(item)
		for _, known := range jobs.Modes {
			if strings.EqualFold(item, string(known)) {
				mode = known
			}
		}
		modes = append(modes, mode)
	}
	return modes
}

func isExperienceLevel(level string) bool {
	for _, known := range preferences.ExperienceLevels {
		if level == known {
			return true
		}
	}
	return false
}

func printPreferences(cmd *cobra.Command, prefs *preferences.Preferences) {
	out := cmd.OutOrStdout()
	modes := make([]string, 0, len(prefs.PreferredModes))
	for _, m := range prefs.PreferredModes {
		modes = append(modes, string(m))
	}

	fmt.Fprintf(out, "Role keywords:   %s\n", preferences.FormatList(prefs.RoleKeywords))
	fmt.Fprintf(out, "Locations:       %s\n", preferences.FormatList(prefs.PreferredLocations))
	fmt.Fprintf(out, "Work modes:      %s\n", preferences.FormatList(modes))
	fmt.Fprintf(out, "Experience:      %s\n", prefs.ExperienceLevel)
	fmt.Fprintf(out, "Skills:          %s\n", preferences.FormatList(prefs.Skills))
	fmt.Fprintf(out, "Min match score: %d\n", prefs.MinMatchScore)
}
