// Package parser extracts section structure and labeled metadata from sheets.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultThicknessKeywords are the thickness labels tried in priority order.
var DefaultThicknessKeywords = []string{"толщина стенки", "средняя толщина ноги", "толщина"}

// DefaultNameTerminators end a section name inside a marker string.
var DefaultNameTerminators = []string{"толщина", "thickness"}

const (
	// DefaultSectionMarker opens a section.
	DefaultSectionMarker = "section:"
	// DefaultLogisticsLabel precedes the section logistics cost.
	DefaultLogisticsLabel = "Logistics Cost:"
	// DefaultTubeCountLabel precedes a tube count.
	DefaultTubeCountLabel = "Tube Count:"
	// TotalsLabelPrefix starts every label written into a totals row.
	TotalsLabelPrefix = "Total "
)

// labelRule holds the compiled value pattern of one label.
type labelRule struct {
	re *regexp.Regexp
}

// LabelExtractor reads numbers that follow one of several labels in free
// text. Labels are tried in order and the first one that yields a value wins.
type LabelExtractor struct {
	rules []labelRule
}

// NewLabelExtractor builds an extractor for keywords, in priority order.
// Matching is case-insensitive.
func NewLabelExtractor(keywords ...string) *LabelExtractor {
	e := &LabelExtractor{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		e.rules = append(e.rules, labelRule{
			re: regexp.MustCompile(regexp.QuoteMeta(kw) + `[^\d]*([\d,.]+)`),
		})
	}
	return e
}

// Extract returns the value of the first label found in text.
func (e *LabelExtractor) Extract(text string) (float64, bool) {
	lower := strings.ToLower(text)
	for _, r := range e.rules {
		if v, ok := matchLast(r.re, lower); ok {
			return v, true
		}
	}
	return 0, false
}

// ExtractAll returns the value of every label found in text, in label order.
func (e *LabelExtractor) ExtractAll(text string) []float64 {
	lower := strings.ToLower(text)
	var out []float64
	for _, r := range e.rules {
		if v, ok := matchLast(r.re, lower); ok {
			out = append(out, v)
		}
	}
	return out
}

// ExtractLabeledNumber returns the number following keyword in text. When the
// keyword occurs several times the last occurrence wins. A decimal comma is
// accepted.
func ExtractLabeledNumber(text, keyword string) (float64, bool) {
	return NewLabelExtractor(keyword).Extract(text)
}

func matchLast(re *regexp.Regexp, text string) (float64, bool) {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	raw := strings.ReplaceAll(matches[len(matches)-1][1], ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractCount returns the integer following label (for example
// "tube count: 12"). Matching is case-insensitive.
func ExtractCount(text, label string) (int, bool) {
	re := regexp.MustCompile(regexp.QuoteMeta(strings.ToLower(label)) + `\s*(\d+)`)
	m := re.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ContainsFold reports whether text contains label, ignoring case.
func ContainsFold(text, label string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(label))
}

// SectionMatcher recognizes section markers and extracts section names.
type SectionMatcher struct {
	marker string
	name   *regexp.Regexp
}

// NewSectionMatcher builds a matcher for marker (e.g. "section:"). A name
// runs from the marker to the first terminator keyword or end of text.
func NewSectionMatcher(marker string, terminators ...string) *SectionMatcher {
	marker = strings.ToLower(strings.TrimSpace(marker))

	var alts []string
	for _, t := range terminators {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			alts = append(alts, regexp.QuoteMeta(t))
		}
	}
	tail := `$`
	if len(alts) > 0 {
		tail = `(?:\s*(?:` + strings.Join(alts, "|") + `)|$)`
	}

	return &SectionMatcher{
		marker: marker,
		name:   regexp.MustCompile(regexp.QuoteMeta(marker) + `\s*(.+?)` + tail),
	}
}

// Marker returns the marker token.
func (m *SectionMatcher) Marker() string { return m.marker }

// IsMarker reports whether text contains the section marker. Totals labels
// such as "Total Price Section: 280.00" are never markers.
func (m *SectionMatcher) IsMarker(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(lower, strings.ToLower(TotalsLabelPrefix)) {
		return false
	}
	return strings.Contains(lower, m.marker)
}

// Name extracts the normalized section name from a marker string.
func (m *SectionMatcher) Name(text string) (string, bool) {
	if !m.IsMarker(text) {
		return "", false
	}
	match := m.name.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return "", false
	}
	name := NormalizeName(match[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// ExtractSectionName extracts a section name using the default marker and
// terminators.
func ExtractSectionName(text string) (string, bool) {
	return defaultMatcher.Name(text)
}

var defaultMatcher = NewSectionMatcher(DefaultSectionMarker, DefaultNameTerminators...)

// NormalizeName canonicalizes a section name for matching: NFC form, lower
// case, inner whitespace collapsed to single spaces.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
