package naming

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var videoExtensions = map[string]struct{}{
	"mkv": {},
	"mp4": {},
	"avi": {},
	"m4v": {},
}

var audioExtensions = map[string]struct{}{
	"flac": {},
	"mp3":  {},
	"opus": {},
	"wav":  {},
	"ogg":  {},
}

var subtitleExtensions = map[string]struct{}{
	"srt": {},
	"sub": {},
	"ass": {},
	"ssa": {},
	"vtt": {},
}

// extensionPattern matches only the closed set of recognized media suffixes.
var extensionPattern = regexp.MustCompile(
	`(?i)\.(` + strings.Join(recognizedExtensions(), "|") + `)$`,
)

func recognizedExtensions() []string {
	out := make([]string, 0, len(videoExtensions)+len(audioExtensions))
	for _, set := range []map[string]struct{}{videoExtensions, audioExtensions} {
		for ext := range set {
			out = append(out, ext)
		}
	}
	// Stable alternation order keeps the compiled pattern reproducible.
	sort.Strings(out)
	return out
}

// ExtensionOf returns the recognized media suffix of name (lowercased, no
// dot), or "" when the suffix is not in the closed set.
func ExtensionOf(name string) string {
	m := extensionPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// IsVideoExtension reports whether ext (lowercased, no dot) is a recognized
// video container suffix.
func IsVideoExtension(ext string) bool {
	_, ok := videoExtensions[ext]
	return ok
}

// IsAudioExtension reports whether ext (lowercased, no dot) is a recognized
// audio suffix.
func IsAudioExtension(ext string) bool {
	_, ok := audioExtensions[ext]
	return ok
}

// IsSubtitleName reports whether the file name carries a recognized subtitle
// suffix. Subtitles are matched on the raw name, not the extraction rule set,
// because subtitle suffixes are not part of the closed media extension set.
func IsSubtitleName(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := subtitleExtensions[ext]
	return ok
}
