package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/resume"
	"github.com/spigell/careerdeck/internal/storage"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Work with the stored résumé",
}

var resumeScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the ATS readiness score with a breakdown and suggestions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		result := resume.Score(s.resume())
		s.logger.Debug("résumé scored", zap.Int("score", result.Score), zap.Strings("suggestions", result.Suggestions))
		printATS(cmd.OutOrStdout(), result)
	},
}

var resumeImproveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Print the top three improvements",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		out := cmd.OutOrStdout()
		improvements := resume.TopImprovements(s.resume(), nil)
		if len(improvements) == 0 {
			fmt.Fprintln(out, "Nothing to improve. Your résumé covers every check.")
			return
		}
		for i, item := range improvements {
			fmt.Fprintf(out, "%d. [%s] %s\n", i+1, item.Priority, item.Message)
		}
	},
}

var resumeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the résumé as plain text",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		record := s.resume()
		for _, warning := range resume.ValidateForExport(record) {
			s.logger.Warn(warning)
		}

		text := resume.PlainText(record) + "\n"
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			fmt.Fprint(cmd.OutOrStdout(), text)
			return
		}

		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			s.logger.Fatal("writing résumé", zap.Error(err))
		}
		s.logger.Info("résumé exported", zap.String("filename", path))
	},
}

var resumeBulletCmd = &cobra.Command{
	Use:   "bullet TEXT",
	Short: "Check a single experience or project bullet",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		feedback := resume.AnalyzeBullet(strings.Join(args, " "))

		fmt.Fprintf(out, "Action verb: %s\n", yesNo(feedback.HasActionVerb))
		fmt.Fprintf(out, "Numbers: %s\n", yesNo(feedback.HasNumbers))
		for _, suggestion := range feedback.Suggestions {
			fmt.Fprintf(out, "- %s\n", suggestion)
		}
	},
}

var resumeImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Store a résumé from a JSON file, upgrading older layouts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		defer s.close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			s.logger.Fatal("reading résumé file", zap.Error(err))
		}

		record, err := resume.Decode(data)
		if err != nil {
			s.logger.Fatal("parsing résumé file", zap.Error(err), zap.String("filename", args[0]))
		}

		if err := storage.SetJSON(s.ctx, s.store, resume.StorageKey, record); err != nil {
			s.logger.Fatal("storing résumé", zap.Error(err))
		}

		s.logger.Info("résumé imported",
			zap.String("filename", args[0]),
			zap.Int("projects", len(record.Projects)),
			zap.Int("experience", len(record.Experience)),
			zap.Int("skills", record.Skills.Len()),
		)
		printATS(cmd.OutOrStdout(), resume.Score(record))
	},
}

var resumeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored résumé",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		if err := s.store.Remove(s.ctx, resume.StorageKey); err != nil {
			s.logger.Fatal("removing résumé", zap.Error(err))
		}
		s.logger.Info("résumé removed")
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(resumeScoreCmd, resumeImproveCmd, resumeExportCmd, resumeBulletCmd, resumeImportCmd, resumeClearCmd)

	resumeExportCmd.Flags().StringP("file", "o", "", "write to file instead of stdout")
}

func printATS(out io.Writer, result *resume.ATSResult) {
	b := result.Breakdown
	fmt.Fprintf(out, "ATS score: %d/100\n\n", result.Score)
	rows := []struct {
		name  string
		value int
	}{
		{"Summary", b.Summary},
		{"Projects", b.Projects},
		{"Experience", b.Experience},
		{"Skills", b.Skills},
		{"Links", b.Links},
		{"Measurable impact", b.MeasurableImpact},
		{"Education", b.Education},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %-18s %2d\n", row.name, row.value)
	}

	if len(result.Suggestions) == 0 {
		return
	}
	fmt.Fprintln(out, "\nSuggestions:")
	for _, suggestion := range result.Suggestions {
		fmt.Fprintf(out, "- %s\n", suggestion)
	}
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
