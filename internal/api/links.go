package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/thesavant42/launchdeck/internal/models"
	"golang.org/x/net/publicsuffix"
)

// ExtractRootDomain extracts the registrable domain from a URL or hostname.
// Uses publicsuffix so multi-label TLDs like .co.uk resolve correctly.
// Examples:
//   - "https://www.youtube.com/watch?v=x" -> "youtube.com"
//   - "en.wikipedia.org" -> "wikipedia.org"
//   - "https://www.bbc.co.uk/news" -> "bbc.co.uk"
func ExtractRootDomain(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty input")
	}

	if strings.Contains(input, "://") {
		parsed, err := url.Parse(input)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		input = parsed.Hostname()
	}

	input = strings.TrimSuffix(input, ".")

	rootDomain, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return "", fmt.Errorf("failed to extract root domain: %w", err)
	}
	return rootDomain, nil
}

// Link is a labelled reference URL of a launch
type Link struct {
	Kind string // Webcast, Wikipedia, Article, Photo
	Site string // root domain, or the raw host when it has none
	URL  string
}

// LaunchLinks lists the reference links of a launch with site labels, in
// Links.URLs order. Photos are capped at maxPhotos (no cap when maxPhotos < 0).
func LaunchLinks(l models.Links, maxPhotos int) []Link {
	var links []Link
	photos := 0
	for _, raw := range l.URLs() {
		kind := linkKind(l, raw)
		if kind == "Photo" {
			if maxPhotos >= 0 && photos >= maxPhotos {
				break
			}
			photos++
		}
		links = append(links, Link{Kind: kind, Site: siteLabel(raw), URL: raw})
	}
	return links
}

func linkKind(l models.Links, raw string) string {
	switch raw {
	case l.Webcast:
		return "Webcast"
	case l.Wikipedia:
		return "Wikipedia"
	case l.Article:
		return "Article"
	}
	return "Photo"
}

func siteLabel(raw string) string {
	if root, err := ExtractRootDomain(raw); err == nil {
		return root
	}
	if parsed, err := url.Parse(raw); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return raw
}
