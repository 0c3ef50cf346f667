package apotheek

import (
	"strings"
	"unicode/utf8"
)

// WidgetFilterConfig is the immutable configuration for a WidgetFilter.
// Separate configurations allow the same classifier to serve other site
// conventions.
type WidgetFilterConfig struct {
	// SkipTitles are heading strings that name navigational, legal or meta
	// widgets. Matched exactly after normalization.
	SkipTitles []string

	// Substrings mark login/subscribe/call-to-action widgets when they
	// occur anywhere in a normalized heading.
	Substrings []string

	// ShortTitleLimit is the maximum normalized length (in runes) at or
	// below which a heading is too short to be real content.
	ShortTitleLimit int
}

// DefaultWidgetFilterConfig returns the configuration tuned to apotheek.nl.
func DefaultWidgetFilterConfig() WidgetFilterConfig {
	return WidgetFilterConfig{
		SkipTitles: []string{
			"Vind een apotheek",
			"Vraag het de webapotheker",
			"Disclaimer",
			"Nieuws",
			"Meer over",
			"Meer informatie",
			"Gerelateerde onderwerpen",
			"Over deze site",
			"Veelgestelde vragen",
		},
		Substrings: []string{
			"webapotheker",
			"aanmelden",
			"inloggen",
			"nieuwsbrief",
		},
		ShortTitleLimit: 2,
	}
}

// WidgetFilter classifies heading titles as widgets (navigation, legal,
// call-to-action) versus real content. All matching is case- and
// whitespace-insensitive.
type WidgetFilter struct {
	skip       map[string]struct{}
	substrings []string
	shortLimit int
}

// NewWidgetFilter creates a WidgetFilter from the given configuration.
// The configuration is copied; later mutation of cfg has no effect.
func NewWidgetFilter(cfg WidgetFilterConfig) *WidgetFilter {
	skip := make(map[string]struct{}, len(cfg.SkipTitles))
	for _, t := range cfg.SkipTitles {
		skip[NormalizeKey(t)] = struct{}{}
	}
	subs := make([]string, len(cfg.Substrings))
	for i, s := range cfg.Substrings {
		subs[i] = NormalizeKey(s)
	}
	return &WidgetFilter{
		skip:       skip,
		substrings: subs,
		shortLimit: cfg.ShortTitleLimit,
	}
}

// DefaultWidgetFilter returns a WidgetFilter with the apotheek.nl defaults.
func DefaultWidgetFilter() *WidgetFilter {
	return NewWidgetFilter(DefaultWidgetFilterConfig())
}

// IsWidgetTitle reports whether a heading title names a non-content widget.
// Empty or whitespace-only titles are widgets.
func (f *WidgetFilter) IsWidgetTitle(title string) bool {
	t := NormalizeKey(title)
	if t == "" {
		return true
	}
	if _, ok := f.skip[t]; ok {
		return true
	}
	for _, sub := range f.substrings {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return utf8.RuneCountInString(t) <= f.shortLimit
}
