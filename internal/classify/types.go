package classify

// MediaType is the closed set of semantic categories a filesystem entry can
// be assigned. Exactly one variant is assigned per classification pass.
type MediaType int

const (
	Unclassified MediaType = iota
	Video
	Movie
	Show
	ShowSeason
	ShowEpisode
	Subtitle
	Featurette
	MusicAlbum
	MusicSong
)

var mediaTypeNames = map[MediaType]string{
	Unclassified: "unclassified",
	Video:        "video",
	Movie:        "movie",
	Show:         "show",
	ShowSeason:   "show-season",
	ShowEpisode:  "show-episode",
	Subtitle:     "subtitle",
	Featurette:   "featurette",
	MusicAlbum:   "music-album",
	MusicSong:    "music-song",
}

func (t MediaType) String() string {
	if name, ok := mediaTypeNames[t]; ok {
		return name
	}
	return "unclassified"
}

// Recursive reports whether the traversal descends into this entry's
// children instead of placing it. Show and ShowSeason are the only
// non-terminal states.
func (t MediaType) Recursive() bool {
	return t == Show || t == ShowSeason
}

// Linked reports whether entries of this type are placed into the library.
func (t MediaType) Linked() bool {
	switch t {
	case Movie, ShowEpisode, Featurette, MusicAlbum, MusicSong:
		return true
	default:
		return false
	}
}
