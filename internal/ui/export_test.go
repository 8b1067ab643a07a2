package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/models"
)

var reportTime = time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

func TestGenerateMarkdownReport(t *testing.T) {
	l := testLaunch("b22", "CRS-1 | resupply", 2012, models.OutcomeSucceeded)
	l.Links.Wikipedia = "https://en.wikipedia.org/wiki/SpaceX_CRS-1"
	cfg := filter.Config{SuccessOnly: true}

	md := GenerateMarkdownReport([]models.Launch{l}, cfg, []string{"b22"}, reportTime)

	assert.Contains(t, md, "# SpaceX Launches")
	assert.Contains(t, md, "**Launches:** 1")
	assert.Contains(t, md, "**Filters:** Status: Successful Only")
	assert.Contains(t, md, "**Generated:** 2024-01-02 15:04:05")
	assert.Contains(t, md, "| ★ | 3 | CRS-1 \\| resupply | 2012-03-24 | Falcon 9 | Successful | [Wikipedia](https://en.wikipedia.org/wiki/SpaceX_CRS-1) |")
}

func TestGenerateMarkdownReportEmpty(t *testing.T) {
	md := GenerateMarkdownReport(nil, filter.Default(), nil, reportTime)

	assert.Contains(t, md, "No launches")
	assert.NotContains(t, md, "**Filters:**")
	assert.NotContains(t, md, "| Flight |")
}

func TestWriteMarkdownReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	launches := sampleSource().launches

	require.NoError(t, WriteMarkdownReport(path, launches, filter.Default(), nil, reportTime))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, l := range launches {
		assert.Contains(t, string(data), l.Name)
	}
}

func TestWriteMarkdownReportBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.md")

	err := WriteMarkdownReport(path, nil, filter.Default(), nil, reportTime)
	assert.ErrorContains(t, err, "failed to write markdown file")
}

func TestFprintLaunchTable(t *testing.T) {
	var buf bytes.Buffer
	FprintLaunchTable(&buf, sampleSource().launches, filter.Default(), []string{"c333"})

	out := buf.String()
	assert.Contains(t, out, "SpaceX Launches")
	assert.Contains(t, out, "FalconSat")
	assert.Contains(t, out, "2019-03-24")
	assert.NotContains(t, out, "Filters:")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var starred int
	for _, line := range lines {
		if strings.Contains(line, "★") && !strings.Contains(line, "Flight") {
			starred++
		}
	}
	assert.Equal(t, 1, starred)
}

func TestFprintLaunchTableNoMatches(t *testing.T) {
	var buf bytes.Buffer
	FprintLaunchTable(&buf, nil, filter.Config{Search: "zzz"}, nil)

	assert.Contains(t, buf.String(), `Filters: Search: "zzz"`)
	assert.Contains(t, buf.String(), "No launches match your filters.")
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Starlink", sanitizeInput("Star\x00link\x07"))
	assert.Equal(t, "a\tb", sanitizeInput("a\tb"))
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "Showing 2 of 5 launches, 1 favorites", summaryLine(2, 5, 1, time.Time{}))

	saved := time.Date(2024, 1, 2, 15, 4, 0, 0, time.Local)
	assert.Equal(t, "Showing 2 of 5 launches, 1 favorites (saved 2024-01-02 15:04)", summaryLine(2, 5, 1, saved))
}
