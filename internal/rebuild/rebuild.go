package rebuild

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"mediasort/internal/classify"
	"mediasort/internal/faults"
	"mediasort/internal/fstree"
	"mediasort/internal/library"
	"mediasort/internal/linker"
	"mediasort/internal/logging"
	"mediasort/internal/naming"
)

// Stats aggregates the outcome of one rebuild invocation.
type Stats struct {
	Visited   int
	Linked    int
	Conflicts int
	Skipped   int
}

func (s *Stats) add(report linker.Report) {
	s.Linked += report.Linked
	s.Conflicts += report.Conflicts
	s.Skipped += report.Skipped
}

// Rebuilder walks one input tree depth-first, classifies every node, and
// places leaf categories into the library through the linker. Tag context
// accumulated from ancestors is threaded through the recursion as an
// explicit value owned by a single invocation, so independent roots can be
// rebuilt concurrently.
type Rebuilder struct {
	layout     library.Layout
	classifier *classify.Classifier
	linker     *linker.Linker
	logger     *slog.Logger
	dryRun     bool
}

// New constructs a rebuilder for one library layout.
func New(layout library.Layout, classifier *classify.Classifier, lnk *linker.Linker, logger *slog.Logger, dryRun bool) *Rebuilder {
	return &Rebuilder{
		layout:     layout,
		classifier: classifier,
		linker:     lnk,
		logger:     logging.NewComponentLogger(logger, "rebuild"),
		dryRun:     dryRun,
	}
}

// Rebuild classifies and places the tree rooted at path. The path must be
// absolute, must exist, and must not be one of the library's control
// folders. Per-node failures are logged and skipped; only a missing or
// reserved input aborts the invocation.
func (r *Rebuilder) Rebuild(ctx context.Context, path string) (Stats, error) {
	var stats Stats

	if !filepath.IsAbs(path) {
		return stats, faults.Wrap(faults.ErrNotFound, "rebuild", "check input",
			"path must be absolute: "+path, nil)
	}
	if err := r.layout.CheckInput(path); err != nil {
		return stats, err
	}
	root, err := fstree.Stat(path)
	if err != nil {
		return stats, faults.Wrap(faults.ErrNotFound, "rebuild", "stat input", "", err)
	}

	if !r.dryRun {
		if err := r.layout.Ensure(); err != nil {
			return stats, err
		}
	}

	global := naming.Tags{}
	if err := r.visit(ctx, root, &global, &stats); err != nil {
		return stats, err
	}

	r.logger.Info("rebuild finished",
		logging.String(logging.FieldPath, path),
		logging.Int("visited", stats.Visited),
		logging.Int("linked", stats.Linked),
		logging.Int("conflicts", stats.Conflicts),
		logging.Int("skipped", stats.Skipped),
		logging.Bool(logging.FieldDryRun, r.dryRun),
	)
	return stats, nil
}

// visit handles one node: classify, merge tags into the inherited context,
// then either recurse (show, season) or hand the node to the linker. The
// context must be merged before any descendant computes a destination,
// which pre-order traversal guarantees.
func (r *Rebuilder) visit(ctx context.Context, entry *fstree.Entry, global *naming.Tags, stats *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stats.Visited++

	res, err := r.classifier.Classify(entry)
	if err != nil {
		r.logger.Error("classification failed, skipping node",
			logging.String(logging.FieldPath, entry.Path),
			logging.Error(err),
		)
		stats.Skipped++
		return nil
	}
	global.Merge(res.Tags)

	r.logger.Debug("visiting entry",
		logging.String(logging.FieldPath, entry.Path),
		logging.String(logging.FieldMediaType, res.Type.String()),
		logging.String("tags", res.Tags.String()),
	)

	if res.Type.Recursive() {
		children, err := entry.Children()
		if err != nil {
			r.logger.Error("cannot scan children, skipping subtree",
				logging.String(logging.FieldPath, entry.Path),
				logging.Error(err),
			)
			stats.Skipped++
			return nil
		}
		for _, child := range children {
			if err := r.visit(ctx, child, global, stats); err != nil {
				return err
			}
		}
		return nil
	}

	if !res.Type.Linked() {
		// Unclassified, bare video, and subtitle nodes stay in place at
		// this level; subtitles nested in a placed directory ride along
		// through the linker's directory flattening.
		r.logger.Debug("leaving entry in place",
			logging.String(logging.FieldPath, entry.Path),
			logging.String(logging.FieldMediaType, res.Type.String()),
		)
		return nil
	}

	// A classified standalone file becomes its own named container in the
	// library, matching per-show and per-movie folder conventions.
	needsSubfolder := !entry.Dir

	switch res.Type {
	case classify.Featurette:
		r.place(entry, r.featuretteFolder(entry, global), needsSubfolder, stats)

	case classify.ShowEpisode:
		folder := r.layout.SeasonFolder(r.contextTitle(entry, global), global.SeasonOrDefault())
		r.place(entry, folder, needsSubfolder, stats)

	case classify.Movie:
		r.place(entry, r.layout.Movies, needsSubfolder, stats)

	default: // MusicAlbum, MusicSong
		r.place(entry, r.layout.Music, needsSubfolder, stats)
	}
	return nil
}

// featuretteFolder picks the bonus-content destination: inside the current
// show when the traversal already knows a season, otherwise a standalone
// folder under Movies (a featurette encountered outside any show context).
func (r *Rebuilder) featuretteFolder(entry *fstree.Entry, global *naming.Tags) string {
	if global.Season != nil {
		return r.layout.ShowFolder(r.contextTitle(entry, global))
	}
	return filepath.Join(r.layout.Movies, entry.Name())
}

// contextTitle returns the accumulated title, falling back to the entry's
// own dotted stem when no ancestor contributed one (a lone marker-only name
// like "S01E02.mkv").
func (r *Rebuilder) contextTitle(entry *fstree.Entry, global *naming.Tags) string {
	if global.Title != "" {
		return global.Title
	}
	title := strings.ReplaceAll(entry.Stem(), " ", ".")
	r.logger.Warn("no title in context, using entry name",
		logging.String(logging.FieldPath, entry.Path),
		logging.String("title", title),
	)
	return title
}

func (r *Rebuilder) place(entry *fstree.Entry, folder string, needsSubfolder bool, stats *Stats) {
	report, err := r.linker.Place(entry, folder, needsSubfolder)
	stats.add(report)
	if err != nil {
		r.logger.Error("placement failed, continuing",
			logging.String(logging.FieldPath, entry.Path),
			logging.String(logging.FieldDestination, folder),
			logging.Error(err),
		)
		stats.Skipped++
	}
}
