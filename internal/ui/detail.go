package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/launchdeck/internal/api"
	"github.com/thesavant42/launchdeck/internal/fetch"
	"github.com/thesavant42/launchdeck/internal/models"
)

// maxDetailPhotos caps the photos listed in the detail overlay
const maxDetailPhotos = 6

func (m CatalogModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	launch, ok := m.detailLaunch()

	switch msg.String() {
	case "esc", "backspace", "q":
		m.mode = catalogModeList
		m.detailID = ""
		if m.state.Details != nil {
			m.state.Details.Close()
		}
		m.refreshTable()
		return m, nil

	case "f", " ":
		if ok {
			if m.state.ToggleFavorite(launch.ID) {
				m.statusMsg = "Added to favorites"
			} else {
				m.statusMsg = "Removed from favorites"
			}
			m.syncDetail()
		}
		return m, nil

	case "o":
		return m.openLink(launch.Links.Webcast, "webcast", ok), nil
	case "w":
		return m.openLink(launch.Links.Wikipedia, "Wikipedia article", ok), nil
	case "a":
		return m.openLink(launch.Links.Article, "article", ok), nil

	case "r":
		cmd := m.fetchDetail(m.detailID)
		m.syncDetail()
		return m, cmd
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m CatalogModel) openLink(url, what string, ok bool) CatalogModel {
	if !ok || url == "" {
		m.statusMsg = fmt.Sprintf("No %s for this launch", what)
	} else if err := m.openURL(url); err != nil {
		m.statusMsg = fmt.Sprintf("Could not open %s: %v", what, err)
		if m.logger != nil {
			m.logger.Warn("Could not open link", "url", url, "error", err)
		}
	} else {
		m.statusMsg = fmt.Sprintf("Opened %s", what)
	}
	m.syncDetail()
	return m
}

// detailLaunch returns the populated record once loaded, else the list record
func (m CatalogModel) detailLaunch() (models.Launch, bool) {
	if m.state.Details != nil {
		if l := m.state.Details.Launch(); l != nil && l.ID == m.detailID {
			return *l, true
		}
	}
	return m.state.FindLaunch(m.detailID)
}

func (m CatalogModel) renderDetail() string {
	l, ok := m.detailLaunch()
	if !ok {
		return DimStyle.Render(" Launch not found")
	}

	var b strings.Builder
	width := m.layout.InnerWidth - 4

	// Title line
	star := ""
	if m.state.IsFavorite(l.ID) {
		star = FavoriteStyle.Render(" ★")
	}
	b.WriteString(" " + RenderTitle(l.Name) + star)
	b.WriteString("\n")
	b.WriteString(" " + RenderOutcome(l.Outcome, detailStatus(l)))
	if m.state.Details != nil {
		switch m.state.Details.Phase() {
		case fetch.PhaseLoading:
			b.WriteString("  " + m.spinner.View() + DimStyle.Render(" loading details..."))
		case fetch.PhaseFailed:
			b.WriteString("  " + StatusMsgStyle.Render(truncate(m.state.Details.Err(), width/2)))
		}
	}
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(DimStyle.Render(fmt.Sprintf(" %-12s", label)))
		b.WriteString(NormalStyle.Render(value))
		b.WriteString("\n")
	}

	field("Flight", fmt.Sprintf("#%d", l.FlightNumber))
	field("Date (UTC)", formatLaunchDate(l))
	field("Rocket", l.Rocket.Label())
	if l.Launchpad.Name != "" {
		field("Launchpad", l.Launchpad.Name)
	}

	if desc := l.Description(); desc != "" {
		b.WriteString("\n")
		b.WriteString(indent(wrapWords(desc, width), " "))
		b.WriteString("\n")
	}

	// Payloads with details only
	var payloads []string
	for _, p := range l.Payloads {
		if p.Name == "" {
			continue
		}
		line := p.Name
		if p.Type != "" {
			line += " (" + p.Type + ")"
		}
		if p.MassKg != nil {
			line += fmt.Sprintf(", %.0f kg", *p.MassKg)
		}
		payloads = append(payloads, line)
	}
	if len(payloads) > 0 {
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render(" Payloads"))
		b.WriteString("\n")
		for _, p := range payloads {
			b.WriteString("   • " + NormalStyle.Render(p) + "\n")
		}
	}

	if len(l.Cores) > 0 {
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render(" Boosters"))
		b.WriteString("\n")
		for i, c := range l.Cores {
			line := fmt.Sprintf("Core %d", i+1)
			if c.Flight != nil {
				line += fmt.Sprintf(", flight %d", *c.Flight)
			}
			if c.LandingType != "" {
				line += ", " + c.LandingType
			}
			b.WriteString("   • " + NormalStyle.Render(line) + "  " + RenderOutcome(c.Landing, c.LandingLabel()) + "\n")
		}
	}

	links := api.LaunchLinks(l.Links, maxDetailPhotos)
	if len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(AccentStyle.Render(" Links"))
		b.WriteString("\n")
		for _, link := range links {
			label := fmt.Sprintf("   %-10s %-18s ", link.Kind, link.Site)
			b.WriteString(DimStyle.Render(label))
			wrapped := strings.Split(wrapURL(link.URL, width-StringWidth(label)), "\n")
			for i, part := range wrapped {
				if i > 0 {
					b.WriteString(strings.Repeat(" ", StringWidth(label)))
				}
				b.WriteString(NormalStyle.Render(part))
				b.WriteString("\n")
			}
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render(" " + m.statusMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// launchRow builds one table row, truncated to the column widths
func launchRow(l models.Launch, favorite bool, columns []table.Column) table.Row {
	star := ""
	if favorite {
		star = "★"
	}
	cells := []string{
		star,
		fmt.Sprintf("#%d", l.FlightNumber),
		l.Name,
		formatLaunchDate(l),
		l.Rocket.Label(),
		statusLabel(l),
	}
	if len(columns) == len(cells) {
		for i := range cells {
			cells[i] = truncate(cells[i], columns[i].Width)
		}
	}
	return table.Row(cells)
}

// statusLabel is the short outcome shown in tables
func statusLabel(l models.Launch) string {
	if l.Upcoming && l.Outcome == models.OutcomeUnknown {
		return "Upcoming"
	}
	return l.Outcome.String()
}

// detailStatus is the outcome headline of the detail overlay
func detailStatus(l models.Launch) string {
	switch l.Outcome {
	case models.OutcomeSucceeded:
		return "Successful"
	case models.OutcomeFailed:
		return "Failed"
	}
	if l.Upcoming {
		return "Upcoming"
	}
	return "Status Unknown"
}

func formatLaunchDate(l models.Launch) string {
	if l.DateUTC.IsZero() {
		return "-"
	}
	return l.DateUTC.UTC().Format("2006-01-02")
}
