package naming

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rule is one named extraction pattern. Rules are evaluated in declaration
// order and write to disjoint tag keys, so combining their results never
// conflicts. The earliest match position across all rules also bounds the
// title prefix.
type rule struct {
	name  string
	re    *regexp.Regexp
	apply func(t *Tags, m []string)
}

// Extractor applies the fixed rule set to entry names. It is stateless and
// safe for concurrent use by independent traversals.
type Extractor struct {
	rules []rule
}

// NewExtractor builds the extractor with the repository's pattern rules.
func NewExtractor() *Extractor {
	return &Extractor{
		rules: []rule{
			{
				name: "season",
				re:   regexp.MustCompile(`(?i)s(?:eason.?)?(\d+)`),
				apply: func(t *Tags, m []string) {
					t.Season = parseNumber(m[1])
				},
			},
			{
				// A bare number needs two digits plus an episode or part
				// prefix to count as an episode; single digits after "s"
				// belong to season numbering.
				name: "episode",
				re:   regexp.MustCompile(`(?i)(?:(part).?|e(?:pisode.?)?)(\d{2,})`),
				apply: func(t *Tags, m []string) {
					value := parseNumber(m[2])
					t.Episode = value
					if m[1] != "" {
						t.Part = value
					}
				},
			},
			{
				name: "resolution",
				re:   regexp.MustCompile(`(\d{3,4})p`),
				apply: func(t *Tags, m []string) {
					t.Resolution = parseNumber(m[1])
				},
			},
			{
				name: "year",
				re:   regexp.MustCompile(`[.(](\d{4})[.)]`),
				apply: func(t *Tags, m []string) {
					t.Year = parseNumber(m[1])
				},
			},
			{
				name: "tracker",
				re:   regexp.MustCompile(`\[(\D+)\](?:\.\w+)?$`),
				apply: func(t *Tags, m []string) {
					t.Tracker = m[1]
				},
			},
			{
				name: "extension",
				re:   extensionPattern,
				apply: func(t *Tags, m []string) {
					t.Extension = strings.ToLower(m[1])
				},
			},
		},
	}
}

// Extract applies every rule to the name and derives the title from the text
// preceding the earliest rule match. When no rule matches, the whole name is
// the title source. Digit groups that fail to parse leave their tag absent.
func (e *Extractor) Extract(name string) Tags {
	var tags Tags
	titleEnd := -1
	for _, r := range e.rules {
		loc := r.re.FindStringIndex(name)
		if loc == nil {
			continue
		}
		if titleEnd == -1 || loc[0] < titleEnd {
			titleEnd = loc[0]
		}
		r.apply(&tags, r.re.FindStringSubmatch(name))
	}

	raw := name
	if titleEnd >= 0 {
		raw = name[:titleEnd]
	}
	tags.Title = e.normalizeTitle(raw)
	return tags
}

// normalizeTitle converts whitespace to dots, trims trailing separators, and
// capitalizes each dot-delimited word. Running it over an already-normalized
// title is a no-op.
func (e *Extractor) normalizeTitle(raw string) string {
	raw = strings.ReplaceAll(raw, " ", ".")
	raw = strings.TrimRight(raw, ".-_")
	if raw == "" {
		return ""
	}
	caser := cases.Title(language.Und)
	words := strings.Split(raw, ".")
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.Join(words, ".")
}

func parseNumber(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
