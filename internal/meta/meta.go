// Package meta derives display metadata for a movie file.
package meta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
)

// Info is what the player shows about a file besides stream properties.
type Info struct {
	Path   string
	Title  string
	Artist string
	Size   int64
}

// SizeString returns the file size in human units, or "" if unknown.
func (i Info) SizeString() string {
	if i.Size <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(i.Size)) //nolint:gosec // positive
}

// Read returns tag metadata for path. Missing or unreadable tags fall back
// to the file name; only a failure to stat the file is an error.
func Read(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: path, Size: st.Size()}

	if f, err := os.Open(path); err == nil {
		if m, err := tag.ReadFrom(f); err == nil {
			info.Title = strings.TrimSpace(m.Title())
			info.Artist = strings.TrimSpace(m.Artist())
		}
		f.Close()
	}

	if info.Title == "" {
		info.Title = TitleFromName(path)
	}
	return info, nil
}

// TitleFromName turns "some_movie.name.mpg" into "some movie.name".
func TitleFromName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return base
	}
	return name
}
