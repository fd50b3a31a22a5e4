package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/filtering"
	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/matching"
	"github.com/spigell/careerdeck/internal/preferences"
	"github.com/spigell/careerdeck/internal/tracker"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse, save and track job listings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job listings with their match score",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		listJobs(cmd, s)
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one listing in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		defer s.close()

		listing := mustFind(s, args[0])
		prefs := s.preferences()
		tr := tracker.New(s.store, s.logger)

		status, err := tr.StatusOf(s.ctx, listing.ID)
		if err != nil {
			s.logger.Fatal("reading job status", zap.Error(err))
		}
		saved, err := tr.SavedSet(s.ctx)
		if err != nil {
			s.logger.Fatal("reading saved jobs", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n%s\n\n", listing.Title, listing.Company)
		fmt.Fprintf(out, "Location:   %s (%s)\n", listing.Location, listing.Mode)
		fmt.Fprintf(out, "Experience: %s\n", listing.Experience)
		fmt.Fprintf(out, "Salary:     %s\n", listing.SalaryRange)
		fmt.Fprintf(out, "Skills:     %s\n", strings.Join(listing.Skills, ", "))
		fmt.Fprintf(out, "Posted:     %s on %s\n", postedAgo(listing.PostedDaysAgo), listing.Source)
		fmt.Fprintf(out, "Status:     %s\n", status)
		fmt.Fprintf(out, "Saved:      %s\n", yesNo(saved[listing.ID]))
		if prefs != nil {
			score := matching.Score(listing, prefs)
			fmt.Fprintf(out, "Match:      %d%% (%s)\n", score, preferences.BandFor(score))
		}
		fmt.Fprintf(out, "\n%s\n\nApply: %s\n", listing.Description, listing.ApplyURL)
	},
}

var jobsSaveCmd = &cobra.Command{
	Use:   "save ID",
	Short: "Save a listing for later",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s := newSession()
		defer s.close()

		listing := mustFind(s, args[0])
		if err := tracker.New(s.store, s.logger).Save(s.ctx, listing.ID); err != nil {
			s.logger.Fatal("saving job", zap.Error(err))
		}
	},
}

var jobsUnsaveCmd = &cobra.Command{
	Use:   "unsave ID",
	Short: "Remove a listing from saved jobs",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s := newSession()
		defer s.close()

		if err := tracker.New(s.store, s.logger).Unsave(s.ctx, args[0]); err != nil {
			s.logger.Fatal("removing saved job", zap.Error(err))
		}
	},
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Set the application status: not-applied, applied, rejected or selected",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		s := newSession()
		defer s.close()

		listing := mustFind(s, args[0])
		status, err := tracker.ParseStatus(args[1])
		if err != nil {
			s.logger.Fatal("parsing status", zap.Error(err))
		}
		if err := tracker.New(s.store, s.logger).SetStatus(s.ctx, listing, status); err != nil {
			s.logger.Fatal("updating status", zap.Error(err))
		}
	},
}

var jobsUpdatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Show the most recent status changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		limit, _ := cmd.Flags().GetInt("limit")
		updates, err := tracker.New(s.store, s.logger).Recent(s.ctx, limit)
		if err != nil {
			s.logger.Fatal("reading status updates", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		if len(updates) == 0 {
			fmt.Fprintln(out, "No status updates yet.")
			return
		}
		for _, u := range updates {
			fmt.Fprintf(out, "%s  %-11s %s at %s\n", u.Time().Format("2006-01-02 15:04"), u.Status, u.JobTitle, u.Company)
		}
	},
}

var jobsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the filtered listings grouped by company",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		defer s.close()

		listings, _ := filteredListings(cmd, s)
		pretty, _ := json.MarshalIndent(listings.ReportByCompany(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("listings count", listings.Len()))
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsSaveCmd, jobsUnsaveCmd, jobsStatusCmd, jobsUpdatesCmd, jobsReportCmd)

	for _, c := range []*cobra.Command{jobsListCmd, jobsReportCmd} {
		f := c.Flags()
		f.StringP("keyword", "k", "", "keep listings whose title or company contains the keyword")
		f.String("location", "", "keep listings in this location")
		f.String("mode", "", "keep listings with this work mode: Remote, Hybrid or Onsite")
		f.String("experience", "", "keep listings for this experience level")
		f.String("source", "", "keep listings from this source, e.g. LinkedIn")
		f.String("status", "", "keep listings with this application status")
		f.Bool("saved-only", false, "keep saved listings only")
		f.Bool("only-matches", false, "keep listings reaching the minimum match score")
		f.String("sort", string(filtering.SortLatest), "sort order: latest, match or salary")
	}
	jobsListCmd.Flags().IntP("limit", "n", 0, "show at most this many listings (0 shows all)")
	jobsListCmd.Flags().Bool("dump", false, "also dump the listings to a temporary json file")
	jobsUpdatesCmd.Flags().IntP("limit", "n", tracker.DefaultRecent, "number of updates to show")
}

func mustFind(s *session, id string) *jobs.Listing {
	listing := s.catalog().FindByID(id)
	if listing == nil {
		s.logger.Fatal("there is no such job", zap.String("id", id))
	}
	return listing
}

// filteredListings runs the dashboard filters configured by the command
// flags and the "dashboard" config section, flags taking precedence.
func filteredListings(cmd *cobra.Command, s *session) (*jobs.Listings, *preferences.Preferences) {
	sub := viper.Sub("dashboard")
	if sub == nil {
		sub = viper.New()
	}
	if err := sub.BindPFlags(cmd.Flags()); err != nil {
		s.logger.Fatal("binding filter flags", zap.Error(err))
	}

	var cfg filtering.Config
	if err := sub.Unmarshal(&cfg); err != nil {
		s.logger.Fatal("reading filter config", zap.Error(err))
	}

	order, err := filtering.ParseSortOrder(cfg.Sort)
	if err != nil {
		s.logger.Fatal("parsing sort order", zap.Error(err))
	}

	prefs := s.preferences()
	tr := tracker.New(s.store, s.logger)
	statuses, err := tr.Statuses(s.ctx)
	if err != nil {
		s.logger.Fatal("reading job statuses", zap.Error(err))
	}
	saved, err := tr.SavedSet(s.ctx)
	if err != nil {
		s.logger.Fatal("reading saved jobs", zap.Error(err))
	}

	steps := filtering.Defaults(prefs)
	deps := filtering.Deps{Logger: s.logger, Preferences: prefs, Statuses: statuses, Saved: saved}

	listings, err := filtering.Run(s.ctx, &cfg, deps, steps, s.catalog())
	if err != nil {
		s.logger.Fatal("filtering failed", zap.Error(err))
	}
	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	filtering.Sort(listings, order, prefs)
	return listings, prefs
}

func listJobs(cmd *cobra.Command, s *session) {
	listings, prefs := filteredListings(cmd, s)
	out := cmd.OutOrStdout()

	if listings.Len() == 0 {
		fmt.Fprintln(out, "No jobs match your search.")
		return
	}
	if prefs == nil {
		s.logger.Info("set your preferences to activate intelligent matching", zap.String("hint", "careerdeck prefs set --help"))
	}

	items := listings.Items
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for _, l := range items {
		writeListing(out, l, prefs)
	}
	fmt.Fprintf(out, "\n%d of %d listings\n", len(items), listings.Len())

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := listings.DumpToTmpFile()
		if err != nil {
			s.logger.Fatal("dump results to file", zap.Error(err))
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
	}
}

func writeListing(out io.Writer, l *jobs.Listing, prefs *preferences.Preferences) {
	match := ""
	if prefs != nil {
		score := matching.Score(l, prefs)
		match = fmt.Sprintf("  match %d%% (%s)", score, preferences.BandFor(score))
	}
	fmt.Fprintf(out, "%s  %s @ %s\n", l.ID, l.Title, l.Company)
	fmt.Fprintf(out, "         %s | %s | %s | %s | %s%s\n", l.Location, l.Mode, l.Experience, l.SalaryRange, postedAgo(l.PostedDaysAgo), match)
}

func postedAgo(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
