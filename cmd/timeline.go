package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/adnanhd/adnanhd.github.io/internal/loader"
	"github.com/adnanhd/adnanhd.github.io/internal/site"
	"github.com/adnanhd/adnanhd.github.io/internal/timeline"
)

var icsPath string

var (
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(22)
	kindStyle  = lipgloss.NewStyle().Width(13)
	titleStyle = lipgloss.NewStyle().Bold(true)
	orgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Italic(true)

	kindStyles = map[timeline.Kind]lipgloss.Style{
		timeline.KindExperience:  kindStyle.Foreground(lipgloss.Color("#4CAF50")),
		timeline.KindPublication: kindStyle.Foreground(lipgloss.Color("#F7B801")),
	}
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Prints the merged timeline",
	Long: `Loads the data records and prints the merged timeline, newest first, the
same way the news page shows it. With --ics the timeline is also exported as
an iCalendar file ("-" writes to stdout).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loader.New(site.NewSource(appConfig), logger).Load(cmd.Context())
		if err != nil {
			return err
		}
		now := time.Now()
		events := timeline.FromSnapshot(snap, now)

		if icsPath != "-" {
			fmt.Fprint(cmd.OutOrStdout(), renderTimeline(events))
		}
		if icsPath == "" {
			return nil
		}
		return exportICS(cmd.OutOrStdout(), icsPath, events, now)
	},
}

func renderTimeline(events []timeline.Event) string {
	if len(events) == 0 {
		return emptyStyle.Render("No timeline entries.") + "\n"
	}

	var sb strings.Builder
	for _, ev := range events {
		when := ev.Date
		if ev.EndDate != "" {
			when += " - " + ev.EndDate
		}
		if when == "" {
			when = "undated"
		}
		line := dateStyle.Render(when) + kindStyles[ev.Kind].Render(string(ev.Kind)) + titleStyle.Render(ev.Title)
		switch {
		case ev.Organization != "":
			line += "  " + orgStyle.Render(ev.Organization)
		case ev.Venue != "":
			line += "  " + orgStyle.Render(ev.Venue)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// exportICS writes the calendar to path, or to stdout when path is "-".
// Nothing is written when the timeline has no dated events.
func exportICS(stdout io.Writer, path string, events []timeline.Event, now time.Time) error {
	var buf bytes.Buffer
	if err := timeline.WriteICS(&buf, events, now); err != nil {
		if errors.Is(err, timeline.ErrNoDatedEvents) {
			logger.Warn("Timeline has no dated events, skipping calendar export")
			return nil
		}
		return err
	}
	if path == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Calendar exported", "path", path)
	return nil
}

func init() {
	timelineCmd.Flags().StringVar(&icsPath, "ics", "", "also export the timeline as iCalendar to this file (\"-\" for stdout)")
	rootCmd.AddCommand(timelineCmd)
}
