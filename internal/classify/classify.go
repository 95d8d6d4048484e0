package classify

import (
	"log/slog"
	"strings"

	"mediasort/internal/fstree"
	"mediasort/internal/logging"
	"mediasort/internal/naming"
)

// featuretteNames is the closed set of bonus-content folder names. Matching
// is a case-insensitive substring test after separator normalization.
var featuretteNames = []string{
	"behind the scenes",
	"deleted scenes",
	"featurettes",
	"interviews",
	"scenes",
	"shorts",
	"trailers",
	"other",
}

// Result is the outcome of one classification pass. Tags carries the entry's
// own extracted attributes plus values derived during classification (season
// defaulted to 1, detected episode number), so callers observe them.
type Result struct {
	Type MediaType
	Tags naming.Tags
}

// Classifier decides an entry's semantic category by evaluating ordered
// predicates over the entry and a scan of its children. Classification is a
// pure function of the tree at call time; nothing is memoized across calls.
type Classifier struct {
	extractor *naming.Extractor
	logger    *slog.Logger
}

// New constructs a classifier around the given tag extractor.
func New(extractor *naming.Extractor, logger *slog.Logger) *Classifier {
	return &Classifier{
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "classify"),
	}
}

// Extractor exposes the classifier's tag extractor for callers that need raw
// extraction (destination naming, context merging).
func (c *Classifier) Extractor() *naming.Extractor {
	return c.extractor
}

// Classify evaluates the predicates in fixed priority order, first match
// wins. The order is load-bearing: featurette folder names can contain
// digits that look like episode markers, so the name override runs first;
// episode grouping must run before season counting; movie detection is a
// catch-all once all TV structure signals are exhausted.
func (c *Classifier) Classify(entry *fstree.Entry) (Result, error) {
	res := Result{Tags: c.extractor.Extract(entry.Name())}

	steps := []struct {
		typ   MediaType
		match func(*fstree.Entry, *Result) (bool, error)
	}{
		{Featurette, c.isFeaturette},
		{ShowEpisode, c.isEpisode},
		{ShowSeason, c.isSeason},
		{Show, c.isShow},
		{Movie, c.isMovie},
		{Subtitle, c.isSubtitle},
		{MusicAlbum, c.isAlbum},
		{MusicSong, c.isSong},
	}

	for _, step := range steps {
		ok, err := step.match(entry, &res)
		if err != nil {
			return Result{}, err
		}
		if ok {
			res.Type = step.typ
			c.logger.Debug("classified entry",
				logging.String(logging.FieldPath, entry.Path),
				logging.String(logging.FieldMediaType, res.Type.String()),
			)
			return res, nil
		}
	}

	res.Type = Unclassified
	c.logger.Debug("classified entry",
		logging.String(logging.FieldPath, entry.Path),
		logging.String(logging.FieldMediaType, res.Type.String()),
	)
	return res, nil
}

func (c *Classifier) isFeaturette(entry *fstree.Entry, _ *Result) (bool, error) {
	if !entry.Dir {
		return false, nil
	}
	name := strings.ToLower(entry.Name())
	name = strings.NewReplacer(".", " ", "-", " ", "_", " ").Replace(name)
	for _, marker := range featuretteNames {
		if strings.Contains(name, marker) {
			return true, nil
		}
	}
	return false, nil
}

// isEpisode treats a directory as an episode container when its direct file
// children agree on exactly one episode number; a file is an episode when
// its own name carries one. Either way the season defaults to 1 when absent.
func (c *Classifier) isEpisode(entry *fstree.Entry, res *Result) (bool, error) {
	episodes, err := c.episodeNumbers(entry, false)
	if err != nil {
		return false, err
	}
	if len(episodes) != 1 {
		return false, nil
	}
	for value := range episodes {
		v := value
		res.Tags.Episode = &v
	}
	if res.Tags.Season == nil {
		one := 1
		res.Tags.Season = &one
	}
	return true, nil
}

// isSeason accepts a directory whose descendants agree on exactly one season
// value, or one with no season markers but several distinct episodes
// (ungrouped episodes directly under a show), which is treated as season 1.
func (c *Classifier) isSeason(entry *fstree.Entry, res *Result) (bool, error) {
	if !entry.Dir {
		return false, nil
	}
	seasons, err := c.seasonNumbers(entry)
	if err != nil {
		return false, err
	}
	if len(seasons) == 1 {
		for value := range seasons {
			v := value
			res.Tags.Season = &v
		}
		return true, nil
	}
	if len(seasons) == 0 {
		episodes, err := c.episodeNumbers(entry, true)
		if err != nil {
			return false, err
		}
		if len(episodes) > 1 {
			one := 1
			res.Tags.Season = &one
			return true, nil
		}
	}
	return false, nil
}

func (c *Classifier) isShow(entry *fstree.Entry, _ *Result) (bool, error) {
	if !entry.Dir {
		return false, nil
	}
	seasons, err := c.seasonNumbers(entry)
	if err != nil {
		return false, err
	}
	return len(seasons) > 1, nil
}

// isMovie is the catch-all for video content once every TV-specific signal
// has been exhausted: a file with a video extension, or a directory with any
// video descendant.
func (c *Classifier) isMovie(entry *fstree.Entry, _ *Result) (bool, error) {
	if !entry.Dir {
		return naming.IsVideoExtension(naming.ExtensionOf(entry.Name())), nil
	}
	descendants, err := entry.Descendants()
	if err != nil {
		return false, err
	}
	for _, d := range descendants {
		if !d.Dir && naming.IsVideoExtension(naming.ExtensionOf(d.Name())) {
			return true, nil
		}
	}
	return false, nil
}

func (c *Classifier) isSubtitle(entry *fstree.Entry, _ *Result) (bool, error) {
	return !entry.Dir && naming.IsSubtitleName(entry.Name()), nil
}

func (c *Classifier) isAlbum(entry *fstree.Entry, _ *Result) (bool, error) {
	count, err := c.songCount(entry)
	return count > 1, err
}

func (c *Classifier) isSong(entry *fstree.Entry, _ *Result) (bool, error) {
	count, err := c.songCount(entry)
	return count == 1, err
}

// episodeNumbers collects the distinct episode tags found on file entries:
// the entry itself when it is a file, its direct file children otherwise, or
// every descendant file when recursive is set.
func (c *Classifier) episodeNumbers(entry *fstree.Entry, recursive bool) (map[int]struct{}, error) {
	files, err := c.fileEntries(entry, recursive)
	if err != nil {
		return nil, err
	}
	episodes := make(map[int]struct{})
	for _, f := range files {
		if ep := c.extractor.Extract(f.Name()).Episode; ep != nil {
			episodes[*ep] = struct{}{}
		}
	}
	return episodes, nil
}

// seasonNumbers collects the distinct season tags across every descendant,
// directories included, since season markers usually live on folder names.
func (c *Classifier) seasonNumbers(entry *fstree.Entry) (map[int]struct{}, error) {
	nodes, err := entry.Descendants()
	if err != nil {
		return nil, err
	}
	seasons := make(map[int]struct{})
	for _, n := range nodes {
		if s := c.extractor.Extract(n.Name()).Season; s != nil {
			seasons[*s] = struct{}{}
		}
	}
	return seasons, nil
}

func (c *Classifier) songCount(entry *fstree.Entry) (int, error) {
	files, err := c.fileEntries(entry, false)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, f := range files {
		if naming.IsAudioExtension(naming.ExtensionOf(f.Name())) {
			count++
		}
	}
	return count, nil
}

func (c *Classifier) fileEntries(entry *fstree.Entry, recursive bool) ([]*fstree.Entry, error) {
	if !entry.Dir {
		return []*fstree.Entry{entry}, nil
	}
	var nodes []*fstree.Entry
	var err error
	if recursive {
		nodes, err = entry.Descendants()
	} else {
		nodes, err = entry.Children()
	}
	if err != nil {
		return nil, err
	}
	files := make([]*fstree.Entry, 0, len(nodes))
	for _, n := range nodes {
		if !n.Dir {
			files = append(files, n)
		}
	}
	return files, nil
}
