package naming

import "testing"

func TestExtractEpisodeName(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Show.Name.S02E05.1080p.mkv")

	if tags.Title != "Show.Name" {
		t.Fatalf("unexpected title %q", tags.Title)
	}
	if tags.Season == nil || *tags.Season != 2 {
		t.Fatalf("unexpected season %v", tags.Season)
	}
	if tags.Episode == nil || *tags.Episode != 5 {
		t.Fatalf("unexpected episode %v", tags.Episode)
	}
	if tags.Resolution == nil || *tags.Resolution != 1080 {
		t.Fatalf("unexpected resolution %v", tags.Resolution)
	}
	if tags.Extension != "mkv" {
		t.Fatalf("unexpected extension %q", tags.Extension)
	}
	if tags.Part != nil {
		t.Fatalf("part should be absent, got %v", tags.Part)
	}
}

func TestExtractSeasonSpellings(t *testing.T) {
	e := NewExtractor()
	for _, name := range []string{"Show.S03", "Show.Season.3", "show season 3", "Show.s03e01.mkv"} {
		tags := e.Extract(name)
		if tags.Season == nil || *tags.Season != 3 {
			t.Fatalf("%q: unexpected season %v", name, tags.Season)
		}
	}
}

func TestExtractEpisodeSpellings(t *testing.T) {
	e := NewExtractor()
	cases := map[string]int{
		"Show.E07.mkv":        7,
		"Show.Episode.12.mkv": 12,
		"Show.Part.04.mkv":    4,
	}
	for name, want := range cases {
		tags := e.Extract(name)
		if tags.Episode == nil || *tags.Episode != want {
			t.Fatalf("%q: unexpected episode %v", name, tags.Episode)
		}
	}
}

func TestExtractPartSetsBothFields(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Movie.Part.02.mkv")
	if tags.Episode == nil || *tags.Episode != 2 {
		t.Fatalf("unexpected episode %v", tags.Episode)
	}
	if tags.Part == nil || *tags.Part != 2 {
		t.Fatalf("unexpected part %v", tags.Part)
	}
}

func TestExtractSingleDigitEpisodeIgnored(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Show.E1.mkv")
	if tags.Episode != nil {
		t.Fatalf("single digit should not count as episode, got %v", tags.Episode)
	}
}

func TestExtractYear(t *testing.T) {
	e := NewExtractor()
	for _, name := range []string{"Movie.Title.2020.mkv", "Movie Title (2020).mkv"} {
		tags := e.Extract(name)
		if tags.Year == nil || *tags.Year != 2020 {
			t.Fatalf("%q: unexpected year %v", name, tags.Year)
		}
	}
}

func TestExtractTracker(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Movie.Title.2020.1080p.[GROUP].mkv")
	if tags.Tracker != "GROUP" {
		t.Fatalf("unexpected tracker %q", tags.Tracker)
	}
}

func TestExtractTrackerRejectsDigits(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Movie.[x265].mkv")
	if tags.Tracker != "" {
		t.Fatalf("digit-bearing bracket should not match, got %q", tags.Tracker)
	}
}

func TestExtractTitleWhenNothingMatches(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("some random folder")
	if tags.Title != "Some.Random.Folder" {
		t.Fatalf("unexpected title %q", tags.Title)
	}
	if tags.Season != nil || tags.Episode != nil || tags.Year != nil {
		t.Fatalf("no tags expected, got %s", tags.String())
	}
}

func TestExtractTitleNormalizationIsIdempotent(t *testing.T) {
	e := NewExtractor()
	first := e.Extract("show name s01e02 720p.mkv")
	second := e.Extract(first.Title)
	if first.Title != second.Title {
		t.Fatalf("normalization not idempotent: %q then %q", first.Title, second.Title)
	}
}

func TestExtractTitleTrimsTrailingSeparators(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("Show.Name_-.S01E02.mkv")
	if tags.Title != "Show.Name" {
		t.Fatalf("unexpected title %q", tags.Title)
	}
}

func TestExtractUnknownExtensionIgnored(t *testing.T) {
	e := NewExtractor()
	tags := e.Extract("notes.txt")
	if tags.Extension != "" {
		t.Fatalf("txt should not be recognized, got %q", tags.Extension)
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	base := Tags{Title: "Old", Season: intPtr(1)}
	base.Merge(Tags{Title: "New", Episode: intPtr(4)})

	if base.Title != "New" {
		t.Fatalf("unexpected title %q", base.Title)
	}
	if base.Season == nil || *base.Season != 1 {
		t.Fatalf("season should survive merge, got %v", base.Season)
	}
	if base.Episode == nil || *base.Episode != 4 {
		t.Fatalf("unexpected episode %v", base.Episode)
	}

	base.Merge(Tags{})
	if base.Title != "New" || base.Season == nil || base.Episode == nil {
		t.Fatalf("empty merge must not clear values: %s", base.String())
	}
}

func TestSeasonOrDefault(t *testing.T) {
	if got := (Tags{}).SeasonOrDefault(); got != 1 {
		t.Fatalf("default season should be 1, got %d", got)
	}
	if got := (Tags{Season: intPtr(3)}).SeasonOrDefault(); got != 3 {
		t.Fatalf("unexpected season %d", got)
	}
}
