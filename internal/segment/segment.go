// Package segment turns an ordered stream of page text into a structured
// document: an optional title plus (heading, body) sections.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/papergest/internal/paper"
)

// headingRe recognizes the start of an academic section heading: an optional
// numeral-and-dot prefix followed by one of the usual section names. It is a
// prefix match, so "Results and Discussion" qualifies on "Results".
var headingRe = regexp.MustCompile(`(?i)^(?:\d+\.?\s*)?(abstract|introduction|related\s*work|background|methodology|methods?|approach|experiments?|results?|discussion|conclusions?|references|acknowledgements?|appendix)`)

// IsHeading reports whether a trimmed line begins a new section.
func IsHeading(line string) bool {
	return headingRe.MatchString(line)
}

// accumulator is the in-progress section. It is replaced wholesale at each
// heading transition rather than mutated in place.
type accumulator struct {
	title string
	lines []string
}

func (a accumulator) finish() paper.Section {
	return paper.Section{Title: a.title, Content: strings.Join(a.lines, "\n")}
}

// Pages segments ordered page text into sections. A section opens at each
// heading line and closes at the next heading or end of input. Sections that
// never accumulate a non-empty content line are discarded, including the
// initial "Beginning" section that collects text before the first heading.
// Non-heading lines are appended trimmed; blank lines are dropped.
func Pages(pages []string) []paper.Section {
	cur := accumulator{title: "Beginning"}
	var sections []paper.Section

	for _, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if IsHeading(line) {
				if len(cur.lines) > 0 {
					sections = append(sections, cur.finish())
				}
				cur = accumulator{title: line}
				continue
			}
			if line != "" {
				cur.lines = append(cur.lines, line)
			}
		}
	}

	if len(cur.lines) > 0 {
		sections = append(sections, cur.finish())
	}
	return sections
}

// Title bounds for candidate lines, exclusive.
const (
	titleMinRunes = 10
	titleMaxRunes = 200
)

// Title scans the first page for a document title: among the first five
// non-empty trimmed lines, the first whose rune length falls strictly
// between 10 and 200. The second return is false when no line qualifies.
func Title(firstPage string) (string, bool) {
	candidates := 0
	for _, raw := range strings.Split(firstPage, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if n := utf8.RuneCountInString(line); n > titleMinRunes && n < titleMaxRunes {
			return line, true
		}
		candidates++
		if candidates == 5 {
			break
		}
	}
	return "", false
}
