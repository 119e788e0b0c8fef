//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// posterNames lists common artwork filenames in priority order.
var posterNames = []string{
	"poster.jpg", "poster.png", "poster.jpeg",
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
}

// FindPoster looks for artwork next to the movie: a same-named image first,
// then the common names. Returns "" if none exists.
func FindPoster(moviePath string) string {
	if moviePath == "" {
		return ""
	}
	dir := filepath.Dir(moviePath)
	base := strings.TrimSuffix(filepath.Base(moviePath), filepath.Ext(moviePath))

	candidates := []string{base + ".jpg", base + ".png"}
	candidates = append(candidates, posterNames...)
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
