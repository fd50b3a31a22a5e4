package digest

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	header    = "TOP 10 JOBS FOR YOU — 9AM DIGEST"
	footer    = "This digest was generated based on your preferences."
	separator = 50

	longDateLayout  = "Monday, January 2, 2006"
	emailDateLayout = "Monday, January 2"
)

// Email is a ready to send digest.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MailtoURL returns a mailto: link that opens the draft in a mail client.
func (e Email) MailtoURL() string {
	return fmt.Sprintf("mailto:?subject=%s&body=%s", escape(e.Subject), escape(e.Body))
}

// FormatPlainText renders d for copying to the clipboard.
func FormatPlainText(d *Digest) string {
	var b strings.Builder
	rule := strings.Repeat("=", separator)

	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "%s\n", formatDate(d.Date, longDateLayout))
	fmt.Fprintf(&b, "\n%s\n\n", rule)
	writeJobs(&b, d.Jobs)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%s\n", footer)

	return b.String()
}

// FormatEmail renders d as an email subject and body.
func FormatEmail(d *Digest) Email {
	date := formatDate(d.Date, emailDateLayout)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", header)
	fmt.Fprintf(&b, "%s\n\n", date)
	writeJobs(&b, d.Jobs)
	fmt.Fprintf(&b, "%s\n", footer)

	return Email{
		Subject: "My 9AM Job Digest - " + date,
		Body:    b.String(),
	}
}

func writeJobs(b *strings.Builder, jobs []Job) {
	for i, job := range jobs {
		fmt.Fprintf(b, "%d. %s\n", i+1, job.Title)
		fmt.Fprintf(b, "   Company: %s\n", job.Company)
		fmt.Fprintf(b, "   Location: %s\n", job.Location)
		fmt.Fprintf(b, "   Experience: %s\n", job.Experience)
		fmt.Fprintf(b, "   Match Score: %d%%\n", job.MatchScore)
		fmt.Fprintf(b, "   Apply: %s\n\n", job.ApplyURL)
	}
}

// formatDate spells out a YYYY-MM-DD date. Unparseable dates are returned
// unchanged.
func formatDate(date, layout string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
