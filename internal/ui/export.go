package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/models"
)

// DefaultExportFilename returns the timestamped export file name
func DefaultExportFilename(now time.Time) string {
	return fmt.Sprintf("launches-%s.md", now.Format("20060102-150405"))
}

// ExportLaunchesToMarkdown writes the launches to a timestamped markdown file
// in dir (the working directory when empty) and returns its path
func ExportLaunchesToMarkdown(dir string, launches []models.Launch, cfg filter.Config, favoriteIDs []string, now time.Time) (string, error) {
	path := DefaultExportFilename(now)
	if dir != "" {
		path = filepath.Join(dir, path)
	}
	if err := WriteMarkdownReport(path, launches, cfg, favoriteIDs, now); err != nil {
		return "", err
	}
	return path, nil
}

// WriteMarkdownReport writes the markdown report to path
func WriteMarkdownReport(path string, launches []models.Launch, cfg filter.Config, favoriteIDs []string, now time.Time) error {
	content := GenerateMarkdownReport(launches, cfg, favoriteIDs, now)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// GenerateMarkdownReport renders launches as a markdown document
func GenerateMarkdownReport(launches []models.Launch, cfg filter.Config, favoriteIDs []string, now time.Time) string {
	favs := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favs[id] = true
	}

	var sb strings.Builder

	sb.WriteString("# SpaceX Launches\n\n")
	sb.WriteString(fmt.Sprintf("**Launches:** %d\n", len(launches)))
	if labels := cfg.Labels(); len(labels) > 0 {
		sb.WriteString(fmt.Sprintf("**Filters:** %s\n", strings.Join(labels, ", ")))
	}
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", now.Format("2006-01-02 15:04:05")))

	if len(launches) == 0 {
		sb.WriteString("No launches\n")
		return sb.String()
	}

	sb.WriteString("| ★ | Flight | Mission | Date (UTC) | Rocket | Status | Links |\n")
	sb.WriteString("|---|--------|---------|------------|--------|--------|-------|\n")

	for _, l := range launches {
		star := ""
		if favs[l.ID] {
			star = "★"
		}

		var links []string
		if l.Links.Webcast != "" {
			links = append(links, fmt.Sprintf("[Webcast](%s)", l.Links.Webcast))
		}
		if l.Links.Wikipedia != "" {
			links = append(links, fmt.Sprintf("[Wikipedia](%s)", l.Links.Wikipedia))
		}
		if l.Links.Article != "" {
			links = append(links, fmt.Sprintf("[Article](%s)", l.Links.Article))
		}
		linkCell := "-"
		if len(links) > 0 {
			linkCell = strings.Join(links, " ")
		}

		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s |\n",
			star, l.FlightNumber, escapeMarkdownCell(l.Name), formatLaunchDate(l),
			escapeMarkdownCell(l.Rocket.Label()), statusLabel(l), linkCell))
	}

	return sb.String()
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
