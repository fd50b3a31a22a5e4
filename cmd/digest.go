package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/digest"
)

const (
	PromptPlainText = "Show as plain text"
	PromptEmail     = "Show email draft"
	PromptMailto    = "Print mailto link"
	PromptToFile    = "Dump digest to file"
	PromptExit      = "Exit"

	formatText   = "text"
	formatEmail  = "email"
	formatMailto = "mailto"
	formatJSON   = "json"
)

var errExit = errors.New("exit requested")

var digestPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPlainText, PromptEmail, PromptMailto, PromptToFile, PromptExit},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build or show today's top 10 matching jobs",
	Long: `Build or show today's top 10 matching jobs.

The digest is generated once per day and then kept as is, even when
preferences or listings change later that day. Use --regenerate to
throw it away and build it again.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runDigest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do, print the digest in --format and exit")
	digestCmd.Flags().StringP("format", "f", formatText, "output format with -y: text, email, mailto or json")
	digestCmd.Flags().String("date", "", "digest date as YYYY-MM-DD (default is today)")
	digestCmd.Flags().Bool("regenerate", false, "discard the stored digest for the date and build a new one")
}

func runDigest(cmd *cobra.Command) {
	s := newSession()
	defer s.close()

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = digest.Today(time.Now().In(s.location()))
	} else if _, err := time.Parse(digest.DateLayout, date); err != nil {
		s.logger.Fatal("parsing digest date", zap.Error(err), zap.String("date", date))
	}

	svc := digest.NewService(s.store, s.logger)

	if regenerate, _ := cmd.Flags().GetBool("regenerate"); regenerate {
		if err := svc.Discard(s.ctx, date); err != nil {
			s.logger.Fatal("discarding stored digest", zap.Error(err))
		}
	}

	d, created, err := svc.GetOrCreate(s.ctx, s.catalog().Items, s.preferences(), date)
	if err != nil {
		s.logger.Fatal("building digest", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if d == nil {
		fmt.Fprintln(out, "Set preferences to generate a personalized digest: careerdeck prefs set --help")
		return
	}
	if len(d.Jobs) == 0 {
		fmt.Fprintln(out, "No matching roles today. Check again tomorrow.")
		return
	}

	s.logger.Info("digest ready",
		zap.String("date", d.Date),
		zap.Int("jobs", len(d.Jobs)),
		zap.Bool("created", created),
		zap.Time("generated_at", d.GeneratedAt),
	)

	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		format, _ := cmd.Flags().GetString("format")
		if err := printDigest(out, d, format); err != nil {
			s.logger.Fatal("printing digest", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := digestPrompt.Run()
		if err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleDigestAction(action, out, s.logger, d); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleDigestAction(action string, out io.Writer, logger *zap.Logger, d *digest.Digest) error {
	switch action {
	case PromptPlainText:
		return printDigest(out, d, formatText)
	case PromptEmail:
		return printDigest(out, d, formatEmail)
	case PromptMailto:
		return printDigest(out, d, formatMailto)
	case PromptToFile:
		filename, err := dumpDigest(d)
		if err != nil {
			return fmt.Errorf("dump digest to file: %w", err)
		}
		logger.Info("dumping digest to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printDigest(out io.Writer, d *digest.Digest, format string) error {
	switch format {
	case formatText, "":
		fmt.Fprint(out, digest.FormatPlainText(d))
	case formatEmail:
		email := digest.FormatEmail(d)
		fmt.Fprintf(out, "Subject: %s\n\n%s", email.Subject, email.Body)
	case formatMailto:
		fmt.Fprintln(out, digest.FormatEmail(d).MailtoURL())
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func dumpDigest(d *digest.Digest) (string, error) {
	file, err := os.CreateTemp("", "digest_"+d.Date+"_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return "", err
	}
	return file.Name(), nil
}
