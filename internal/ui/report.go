package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/thesavant42/launchdeck/internal/api"
	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/models"
)

var (
	// Color palette for CLI output
	purple = lipgloss.Color("99")  // for borders
	pink   = lipgloss.Color("205") // for header text
	cyan   = lipgloss.Color("86")
	white  = lipgloss.Color("255")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")

	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(pink).
				MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(cyan)

	headerStyle = lipgloss.NewStyle().
			Foreground(pink).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(white)

	borderStyle = lipgloss.NewStyle().
			Foreground(purple)

	highlightStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true)
)

// Column widths for the CLI launch table: star, flight, mission, date, rocket, status
var reportColWidths = []int{1, 6, 32, 10, 14, 10}

// PrintLaunchTable prints the launch list as a bordered table on stdout.
// Favorites are highlighted.
//
// This is a non-interactive report, so structure is plain string formatting
// and lipgloss only colors it. The TUI uses bubbles/table.
func PrintLaunchTable(launches []models.Launch, cfg filter.Config, favoriteIDs []string) {
	FprintLaunchTable(os.Stdout, launches, cfg, favoriteIDs)
}

// FprintLaunchTable is PrintLaunchTable to any writer
func FprintLaunchTable(w io.Writer, launches []models.Launch, cfg filter.Config, favoriteIDs []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, reportTitleStyle.Render("SpaceX Launches"))

	labels := cfg.Labels()
	if len(labels) > 0 {
		fmt.Fprintln(w, subtitleStyle.Render("Filters: "+strings.Join(labels, ", ")))
	}

	if len(launches) == 0 {
		if cfg.Active() {
			fmt.Fprintln(w, subtitleStyle.Render("No launches match your filters."))
		} else {
			fmt.Fprintln(w, subtitleStyle.Render("No launches."))
		}
		fmt.Fprintln(w)
		return
	}

	favs := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favs[id] = true
	}

	totalWidth := 2 // left border
	for _, cw := range reportColWidths {
		totalWidth += cw + 3 // column width + " │ " separator
	}
	totalWidth -= 1
	separator := strings.Repeat("─", totalWidth-2)

	formatRow := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			c = truncate(c, reportColWidths[i])
			parts[i] = c + strings.Repeat(" ", reportColWidths[i]-StringWidth(c))
		}
		return "│ " + strings.Join(parts, " │ ") + " │"
	}

	fmt.Fprintln(w, borderStyle.Render("┌"+separator+"┐"))
	fmt.Fprintln(w, headerStyle.Render(formatRow([]string{"★", "Flight", "Mission", "Date", "Rocket", "Status"})))
	fmt.Fprintln(w, borderStyle.Render("├"+separator+"┤"))

	for _, l := range launches {
		star := ""
		if favs[l.ID] {
			star = "★"
		}
		row := formatRow([]string{
			star,
			fmt.Sprintf("#%d", l.FlightNumber),
			l.Name,
			formatLaunchDate(l),
			l.Rocket.Label(),
			statusLabel(l),
		})
		if favs[l.ID] {
			fmt.Fprintln(w, highlightStyle.Render(row))
		} else {
			fmt.Fprintln(w, rowStyle.Render(row))
		}
	}

	fmt.Fprintln(w, borderStyle.Render("└"+separator+"┘"))
	fmt.Fprintln(w)
}

// PrintLaunchDetail prints one launch in full
func PrintLaunchDetail(l models.Launch, favorite bool) {
	fmt.Println()
	title := l.Name
	if favorite {
		title += " ★"
	}
	fmt.Println(reportTitleStyle.Render(title))

	field := func(label, value string) {
		fmt.Printf("%s %s\n", subtitleStyle.Render(fmt.Sprintf("%-12s", label)), rowStyle.Render(value))
	}
	field("Status", detailStatus(l))
	field("Flight", fmt.Sprintf("#%d", l.FlightNumber))
	field("Date (UTC)", formatLaunchDate(l))
	field("Rocket", l.Rocket.Label())
	if l.Launchpad.Name != "" {
		field("Launchpad", l.Launchpad.Name)
	}
	for i, c := range l.Cores {
		field(fmt.Sprintf("Core %d", i+1), c.LandingLabel())
	}
	if desc := l.Description(); desc != "" {
		fmt.Println()
		fmt.Println(wrapWords(desc, 80))
	}

	links := api.LaunchLinks(l.Links, maxDetailPhotos)
	if len(links) > 0 {
		fmt.Println()
		for _, link := range links {
			field(link.Kind, fmt.Sprintf("%s (%s)", link.URL, link.Site))
		}
	}
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	successStyle := lipgloss.NewStyle().
		Foreground(green).
		Bold(true)
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+message))
}

// PrintSummary prints a brief summary after the table. savedAt is when the
// favorites were last persisted; zero omits it.
func PrintSummary(shown, total, favorites int, savedAt time.Time) {
	summaryStyle := lipgloss.NewStyle().
		Foreground(cyan).
		Italic(true)

	fmt.Println(summaryStyle.Render(summaryLine(shown, total, favorites, savedAt)))
	fmt.Println()
}

func summaryLine(shown, total, favorites int, savedAt time.Time) string {
	line := fmt.Sprintf("Showing %d of %d launches, %d favorites", shown, total, favorites)
	if !savedAt.IsZero() {
		line += fmt.Sprintf(" (saved %s)", savedAt.Local().Format("2006-01-02 15:04"))
	}
	return line
}
