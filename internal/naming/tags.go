package naming

import (
	"fmt"
	"strings"
)

// Tags is the structured record of attributes recognized in one entry name.
// Integer fields are nil when the corresponding pattern did not match or its
// digit group failed to parse; they are never zero-as-absent.
type Tags struct {
	Title      string
	Season     *int
	Episode    *int
	Part       *int
	Year       *int
	Resolution *int
	Tracker    string
	Extension  string
}

// Merge folds non-empty values from other into t, last write wins per key.
// This is how a traversal accumulates context from ancestor directories.
func (t *Tags) Merge(other Tags) {
	if other.Title != "" {
		t.Title = other.Title
	}
	if other.Season != nil {
		t.Season = other.Season
	}
	if other.Episode != nil {
		t.Episode = other.Episode
	}
	if other.Part != nil {
		t.Part = other.Part
	}
	if other.Year != nil {
		t.Year = other.Year
	}
	if other.Resolution != nil {
		t.Resolution = other.Resolution
	}
	if other.Tracker != "" {
		t.Tracker = other.Tracker
	}
	if other.Extension != "" {
		t.Extension = other.Extension
	}
}

// SeasonOrDefault returns the season value, defaulting to 1 when absent.
func (t Tags) SeasonOrDefault() int {
	if t.Season != nil {
		return *t.Season
	}
	return 1
}

// String renders the non-empty tags for log lines.
func (t Tags) String() string {
	parts := make([]string, 0, 8)
	if t.Title != "" {
		parts = append(parts, "title="+t.Title)
	}
	appendInt := func(key string, value *int) {
		if value != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", key, *value))
		}
	}
	appendInt("season", t.Season)
	appendInt("episode", t.Episode)
	appendInt("part", t.Part)
	appendInt("year", t.Year)
	appendInt("resolution", t.Resolution)
	if t.Tracker != "" {
		parts = append(parts, "tracker="+t.Tracker)
	}
	if t.Extension != "" {
		parts = append(parts, "extension="+t.Extension)
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}

func intPtr(v int) *int { return &v }
